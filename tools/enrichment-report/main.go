package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"
)

const (
	defaultTemporalHost = "localhost:7233"
	defaultNamespace    = "default"
	workflowType        = "EnrichTokens"
	pollInterval        = 5 * time.Second
)

type Config struct {
	TemporalHost string
	Namespace    string
	Window       time.Duration
	Wait         bool
	Slowest      int
	PageSize     int
	QueryTimeout time.Duration
	OutputFile   string
}

func main() {
	cfg := parseFlags()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHost,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		fmt.Printf("Error creating Temporal client: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	fmt.Printf("Connected to Temporal at %s (namespace: %s)\n", cfg.TemporalHost, cfg.Namespace)
	since := time.Now().Add(-cfg.Window)

	for {
		executions, err := listExecutions(ctx, c, cfg, since)
		if err != nil {
			fmt.Printf("Error listing workflows: %v\n", err)
			os.Exit(1)
		}
		summary := summarize(executions, cfg.Slowest)

		if !cfg.Wait || summary.Running() == 0 {
			printSummary(os.Stdout, summary)
			if cfg.OutputFile != "" {
				if err := writeReport(cfg.OutputFile, summary, cfg.Window); err != nil {
					fmt.Printf("Warning: failed to write markdown file: %v\n", err)
				} else {
					fmt.Printf("Report written to: %s\n", cfg.OutputFile)
				}
			}
			return
		}

		fmt.Printf("\r⏳ Waiting for %d running enrichment(s)...    ", summary.Running())
		timer := time.NewTimer(pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			fmt.Println("\nINTERRUPTED - PARTIAL RESULTS")
			printSummary(os.Stdout, summary)
			return
		case <-timer.C:
		}
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.TemporalHost, "temporal-host", defaultTemporalHost, "Temporal host address")
	flag.StringVar(&cfg.Namespace, "namespace", defaultNamespace, "Temporal namespace")
	flag.DurationVar(&cfg.Window, "window", time.Hour, "Only include runs started within this window")
	flag.BoolVar(&cfg.Wait, "wait", false, "Poll until no run in the window is still open")
	flag.IntVar(&cfg.Slowest, "slowest", 10, "Number of slowest runs to list")
	flag.IntVar(&cfg.PageSize, "page-size", 1000, "Page size for Temporal queries (max: 1000)")
	flag.DurationVar(&cfg.QueryTimeout, "query-timeout", 30*time.Second, "Timeout for each Temporal query")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")
	configFile := flag.String("config", GetDefaultConfigPath(), "Path to config file (optional)")

	flag.Parse()

	if cfg.PageSize <= 0 || cfg.PageSize > 1000 {
		cfg.PageSize = 1000
	}

	if fileCfg, err := LoadConfig(*configFile); err == nil {
		// Flags win over file values
		if cfg.TemporalHost == defaultTemporalHost && fileCfg.TemporalHost != "" {
			cfg.TemporalHost = fileCfg.TemporalHost
		}
		if cfg.Namespace == defaultNamespace && fileCfg.Namespace != "" {
			cfg.Namespace = fileCfg.Namespace
		}
	}

	return cfg
}

func listQuery(since time.Time) string {
	return fmt.Sprintf("WorkflowType = '%s' AND StartTime > '%s'", workflowType, since.UTC().Format(time.RFC3339))
}

func listExecutions(ctx context.Context, c client.Client, cfg *Config, since time.Time) ([]Execution, error) {
	var executions []Execution
	var pageToken []byte

	for {
		queryCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
		resp, err := c.ListWorkflow(queryCtx, &workflowservice.ListWorkflowExecutionsRequest{
			Namespace:     cfg.Namespace,
			Query:         listQuery(since),
			PageSize:      int32(cfg.PageSize),
			NextPageToken: pageToken,
		})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to list workflows: %w", err)
		}

		for _, info := range resp.GetExecutions() {
			executions = append(executions, fromInfo(info))
		}

		pageToken = resp.GetNextPageToken()
		if len(pageToken) == 0 {
			return executions, nil
		}
	}
}

func writeReport(path string, s *Summary, window time.Duration) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	writeMarkdown(file, s, window)
	return nil
}
