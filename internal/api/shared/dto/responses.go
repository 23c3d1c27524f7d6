package dto

import (
	"github.com/feral-file/ff-portfolio/internal/portfolio"
)

const (
	IngestStatusQueued = "queued"
	IngestStatusError  = "error"
	IngestMessage      = "Balances stored. Metadata & prices are refreshing in the background."
)

// IngestCounts reports what an ingest call wrote
type IngestCounts struct {
	Balances int `json:"balances"`
}

// IngestResponse is returned once balances are stored; enrichment continues in the background
type IngestResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Counts  IngestCounts `json:"counts"`
	// JobID identifies the background enrichment; empty when it could not be scheduled
	JobID string `json:"job_id,omitempty"`
}

// IngestErrorResponse is the body of a failed ingest call
type IngestErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// PortfolioResponse lists the valued holdings of an address
type PortfolioResponse struct {
	Items []portfolio.Holding `json:"items"`
}

// IndexResponse describes the API
type IndexResponse struct {
	OK        bool              `json:"ok"`
	Name      string            `json:"name"`
	Endpoints map[string]string `json:"endpoints"`
}
