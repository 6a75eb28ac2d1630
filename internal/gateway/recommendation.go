package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
)

// Candidate is one ranked outfit suggestion for a day.
type Candidate struct {
	Score   float64  `json:"score"`
	ItemIDs []string `json:"items"`
}

// GenerateRequest is the single batched payload sent to the recommendation
// service: every unlocked target day, the full wardrobe snapshot and the
// exploration bias.
type GenerateRequest struct {
	Location   string                    `json:"location"`
	Targets    []models.GenerationTarget `json:"targets"`
	Wardrobe   []models.WardrobeItem     `json:"wardrobe"`
	Creativity float64                   `json:"creativity"`
}

// GenerateResponse maps dates to ranked candidates and weather snapshots.
// Dates without candidates are simply absent from Recommendations.
type GenerateResponse struct {
	Recommendations map[string][]Candidate    `json:"recommendations"`
	Weather         map[string]models.Weather `json:"weather"`
}

// RecommendationGateway produces outfit candidates for a set of day targets.
type RecommendationGateway interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// HTTPGateway talks JSON to the external recommendation service.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPGateway builds a client for the configured base URL.
func NewHTTPGateway(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPGateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Generate issues the batched recommendation call.
func (g *HTTPGateway) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal recommendation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/recommendations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build recommendation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("recommendation request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("recommendation service returned %d: %s", resp.StatusCode, string(body))
	}

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode recommendation response: %w", err)
	}

	g.logger.Sugar().Debugw("recommendation batch completed",
		"targets", len(req.Targets),
		"recommended", len(result.Recommendations),
		"latency", time.Since(start),
	)
	return &result, nil
}
