package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/clearlakemutual/claimvault-backend/pkg/safe"
	"github.com/clearlakemutual/claimvault-backend/pkg/workerpool"
)

var config struct {
	BaseURL   string `long:"base-url" env:"LOADTEST_BASE_URL" description:"api-gateway base URL" default:"http://localhost:8001"`
	Caller    string `long:"caller" env:"LOADTEST_CALLER" description:"caller identity sent with every request" default:"loadtest"`
	Claims    int    `long:"claims" env:"LOADTEST_CLAIMS" description:"number of claims to submit" default:"1000"`
	Workers   int    `long:"workers" env:"LOADTEST_WORKERS" description:"concurrent submitters" default:"16"`
	Customers int    `long:"customers" env:"LOADTEST_CUSTOMERS" description:"distinct synthetic customers" default:"50"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	total, err := safe.Uint64(config.Claims)
	if err != nil {
		logger.Fatal("Invalid claim count", zap.Error(err))
	}
	if config.Customers <= 0 {
		logger.Fatal("Customer count must be positive")
	}

	jobs := make([]uint64, 0, total)
	for i := uint64(0); i < total; i++ {
		jobs = append(jobs, i)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	started := time.Now()
	err = workerpool.ForEach(ctx, config.Workers, jobs, func(ctx context.Context, job uint64) error {
		customer := fmt.Sprintf("loadtest-customer-%d", job%uint64(config.Customers))
		amount := fmt.Sprintf("%d", (job+1)*1000)
		return submitClaim(ctx, client, customer, amount)
	})
	if err != nil {
		logger.Fatal("Load test failed", zap.Error(err))
	}

	elapsed := time.Since(started)
	logger.Info("Load test finished",
		zap.Uint64("claims", total),
		zap.Duration("elapsed", elapsed),
		zap.Float64("claims_per_second", float64(total)/elapsed.Seconds()),
	)
}

func submitClaim(ctx context.Context, client *http.Client, customerID, amount string) error {
	body, err := json.Marshal(struct {
		CustomerID string `json:"customerId"`
		Amount     string `json:"amount"`
	}{CustomerID: customerID, Amount: amount})
	if err != nil {
		return fmt.Errorf("marshal claim: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.BaseURL+"/v1/claims", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Caller-Id", config.Caller)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("submit claim: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("submit claim: unexpected status %d", resp.StatusCode)
	}
	return nil
}
