package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fedwatch/internal/config"
	"fedwatch/internal/domain"
)

func TestStripCodeFences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, StripCodeFences("Here you go:\n```json\n{\"a\":1}\n```"))
}

func validAnalysis() domain.AnalysisResult {
	var r domain.AnalysisResult
	r.MeetingCycleSynthesis.PolicyRegime.Current = "restrictive hold"
	r.CrossAssetImpact.BaseCase.Scenario = "extended pause"
	r.CrossAssetImpact.BaseCase.AssetDirections.Bonds.Magnitude = domain.GradeMedium
	r.CrossAssetImpact.BaseCase.AssetDirections.Equities.Magnitude = domain.GradeLow
	r.CrossAssetImpact.BaseCase.AssetDirections.Currencies.Magnitude = domain.GradeMedium
	r.CrossAssetImpact.BaseCase.AssetDirections.Commodities.Magnitude = domain.GradeLow
	r.CommunicationClusters.PolicyStance.Consistency = domain.GradeHigh
	r.CommunicationClusters.EconomicAssessment.Consistency = domain.GradeMedium
	r.CommunicationClusters.MarketTransmission.Consistency = domain.GradeHigh
	return r
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *ClaudeClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClaudeClient(config.ClaudeConfig{
		Endpoint:  server.URL,
		Model:     "claude-sonnet-4-20250514",
		APIKey:    "test-key",
		MaxTokens: 4096,
	})
}

func TestAnalyzeParsesTextBlocks(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(validAnalysis())
	require.NoError(t, err)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		resp := map[string]any{
			"content": []map[string]string{
				{"type": "thinking", "text": "working through the cycle"},
				{"type": "text", "text": "```json\n" + string(payload) + "\n```"},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	cycle := domain.AlignedCycle{
		TargetDate: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		Slots: map[domain.DocumentType]domain.Slot{
			domain.DocMinutes: {ReleaseDate: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), Body: "minutes body"},
		},
	}

	result, err := client.Analyze(context.Background(), cycle, nil)
	require.NoError(t, err)
	assert.Equal(t, "restrictive hold", result.MeetingCycleSynthesis.PolicyRegime.Current)
	assert.Equal(t, domain.GradeMedium, result.CrossAssetImpact.BaseCase.AssetDirections.Bonds.Magnitude)
}

func TestAnalyzeRejectsInvalidGrade(t *testing.T) {
	t.Parallel()

	bad := validAnalysis()
	bad.CommunicationClusters.PolicyStance.Consistency = domain.Grade("extreme")
	payload, err := json.Marshal(bad)
	require.NoError(t, err)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"content": []map[string]string{{"type": "text", "text": string(payload)}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	_, err = client.Analyze(context.Background(), domain.AlignedCycle{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid analysis output")
}

func TestAnalyzeSurfacesAPIError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	})

	_, err := client.Analyze(context.Background(), domain.AlignedCycle{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claude error")
}

func TestAnalyzeMisconfigured(t *testing.T) {
	t.Parallel()

	client := NewClaudeClient(config.ClaudeConfig{})
	_, err := client.Analyze(context.Background(), domain.AlignedCycle{}, nil)
	require.Error(t, err)
}
