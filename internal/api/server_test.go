package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"yakugen/app"
	"yakugen/domain/mahjong"
	"yakugen/domain/puzzle"
	"yakugen/internal/rng"
)

type fixedGenerator struct{}

func (fixedGenerator) Generate(ctx context.Context, instruction puzzle.Instruction) (string, error) {
	return "question for: " + instruction.Text, nil
}

type fixedExtractor struct{}

func (fixedExtractor) Extract(ctx context.Context, question string) (*mahjong.Hand, error) {
	return &mahjong.Hand{
		Tiles:   []string{"2m", "3m", "4m", "4m", "5m", "6m", "5p", "6p", "7p", "2s", "3s", "4s", "8s", "8s"},
		WinTile: "4s",
	}, nil
}

type fixedEngine struct{}

func (fixedEngine) Compute(ctx context.Context, hand *mahjong.Hand) (*mahjong.ScoreResult, error) {
	return &mahjong.ScoreResult{Points: 2000, Han: 2, Fu: 30, Yaku: []string{"Pinfu", "Tanyao"}}, nil
}

func newTestServer() *Server {
	pipeline := app.NewCandidatePipeline(fixedGenerator{}, fixedExtractor{}, app.NewClassifier(fixedEngine{}))
	sampler := app.NewSampler(pipeline, rng.NewSeededSource(1), app.SamplerConfig{})
	coordinator := app.NewBatchCoordinator(sampler, nil, nil, app.BatchConfig{MaxParallel: 2})
	return NewServer(sampler, coordinator, nil, Config{DefaultCandidateCount: 3})
}

func TestHealthz(t *testing.T) {
	server := newTestServer()
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestSampleEndpoint(t *testing.T) {
	server := newTestServer()
	body := `{"instruction": "make a tanyao hand", "candidate_count": 2}`
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sample", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result puzzle.SamplingResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not a sampling result: %v", err)
	}
	if result.SuccessCount != 2 || result.SelectedIndex() == 0 {
		t.Errorf("unexpected result: %d successes, selected #%d", result.SuccessCount, result.SelectedIndex())
	}
}

func TestSampleEndpointRejectsNegativeCount(t *testing.T) {
	server := newTestServer()
	body := `{"instruction": "x", "candidate_count": -1}`
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sample", strings.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSampleEndpointRequiresInstruction(t *testing.T) {
	server := newTestServer()
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sample", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBatchEndpoint(t *testing.T) {
	server := newTestServer()
	body := `{"instructions": ["a", "b"], "candidate_count": 2}`
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/batch", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result puzzle.BatchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not a batch result: %v", err)
	}
	if result.TotalInstructions != 2 || result.TotalCandidates != 4 {
		t.Errorf("unexpected totals: %+v", result)
	}
}

func TestBatchesUnavailableWithoutRepo(t *testing.T) {
	server := newTestServer()
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/batches", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
