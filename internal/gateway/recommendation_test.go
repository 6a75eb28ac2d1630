package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
)

func TestGenerateSendsBatchedPayload(t *testing.T) {
	var received GenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/recommendations", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		resp := GenerateResponse{
			Recommendations: map[string][]Candidate{
				"2026-03-02": {{Score: 0.93, ItemIDs: []string{"tee", "jeans"}}},
			},
			Weather: map[string]models.Weather{
				"2026-03-02": {TempMin: 3, TempMax: 10, Description: "clear"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer server.Close()

	gw := NewHTTPGateway(server.URL, time.Second, nil)
	result, err := gw.Generate(context.Background(), GenerateRequest{
		Location:   "Berlin",
		Targets:    []models.GenerationTarget{{Date: "2026-03-02", Occasion: "casual"}},
		Wardrobe:   []models.WardrobeItem{{ID: "tee", Category: "t-shirt"}},
		Creativity: 0.4,
	})
	require.NoError(t, err)

	assert.Equal(t, "Berlin", received.Location)
	assert.Equal(t, 0.4, received.Creativity)
	require.Len(t, received.Targets, 1)
	assert.Equal(t, "casual", received.Targets[0].Occasion)

	require.Len(t, result.Recommendations["2026-03-02"], 1)
	assert.Equal(t, []string{"tee", "jeans"}, result.Recommendations["2026-03-02"][0].ItemIDs)
	assert.Equal(t, "clear", result.Weather["2026-03-02"].Description)
}

func TestGenerateNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream melted", http.StatusBadGateway)
	}))
	defer server.Close()

	gw := NewHTTPGateway(server.URL, time.Second, nil)
	_, err := gw.Generate(context.Background(), GenerateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestGenerateRespectsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	gw := NewHTTPGateway(server.URL, time.Minute, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := gw.Generate(ctx, GenerateRequest{})
	require.Error(t, err)
}
