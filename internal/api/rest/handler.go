package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-portfolio/internal/api/shared/dto"
	"github.com/feral-file/ff-portfolio/internal/api/shared/executor"
)

const SERVICE_NAME = "ff-portfolio"

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// Index lists the available endpoints
	// GET /
	Index(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)

	// Ingest stores the balances of an address and queues their enrichment
	// GET /ingest?address=<address>&limit=<limit>
	Ingest(c *gin.Context)

	// GetPortfolio returns the valued holdings of an address
	// GET /portfolio?address=<address>
	GetPortfolio(c *gin.Context)

	// GetStats returns row counts
	// GET /stats
	GetStats(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

func (h *handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, dto.IndexResponse{
		OK:   true,
		Name: SERVICE_NAME,
		Endpoints: map[string]string{
			"ingest":    "/ingest?address=0x...",
			"portfolio": "/portfolio?address=0x...",
			"stats":     "/stats",
		},
	})
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": SERVICE_NAME,
	})
}

func (h *handler) Ingest(c *gin.Context) {
	address := c.Query("address")

	limit := 0
	if raw, ok := c.GetQuery("limit"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, dto.IngestErrorResponse{
				Status:  dto.IngestStatusError,
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	response, err := h.executor.Ingest(c.Request.Context(), address, limit)
	if err != nil {
		respondIngestError(c, err, zap.String("address", address))
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetPortfolio(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		respondBadRequest(c, "missing address")
		return
	}

	response, err := h.executor.GetPortfolio(c.Request.Context(), address)
	if err != nil {
		respondError(c, err, zap.String("address", address))
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetStats(c *gin.Context) {
	stats, err := h.executor.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
