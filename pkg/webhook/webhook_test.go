package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ccollicutt/xmllog2json/pkg/config"
	"github.com/ccollicutt/xmllog2json/pkg/output"
	"github.com/ccollicutt/xmllog2json/pkg/severity"
)

func newTestReport(failed int) *output.Report {
	return &output.Report{
		Summary: output.Summary{
			FilesProcessed:  2,
			FilesFailed:     failed,
			RecordsAccepted: 10,
			RecordsRejected: 1,
			Counts:          map[severity.Severity]int{severity.Warning: 3, severity.Info: 5, severity.Error: 2},
		},
		Files: []output.FileReport{
			{Source: "input/a.xml", Records: 11, Accepted: 10, Rejected: 1},
		},
		Metadata: output.Metadata{
			RunID:     "run-42",
			OutputDir: "output",
			StartedAt: time.Now(),
			Duration:  time.Second,
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Send_Success(t *testing.T) {
	var receivedBody []byte
	var receivedContentType, receivedAuth, receivedRunID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
		receivedAuth = r.Header.Get("Authorization")
		receivedRunID = r.Header.Get("X-Run-ID")
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), newTestReport(0), SendOptions{URL: server.URL})

	if !resp.Success() {
		t.Errorf("expected success, got error: %v", resp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if resp.Body != `{"status":"ok"}` {
		t.Errorf("unexpected body: %s", resp.Body)
	}
	if receivedContentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", receivedContentType)
	}
	if receivedAuth != "" {
		t.Errorf("expected no auth header, got %s", receivedAuth)
	}
	if receivedRunID != "run-42" {
		t.Errorf("expected X-Run-ID run-42, got %q", receivedRunID)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(receivedBody, &payload); err != nil {
		t.Fatalf("failed to parse received payload: %v", err)
	}
	if _, ok := payload["Summary"]; !ok {
		t.Error("payload missing Summary field")
	}
	if _, ok := payload["Files"]; !ok {
		t.Error("payload missing Files field")
	}
}

func TestClient_Send_WithBearerToken(t *testing.T) {
	var receivedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	resp := NewClient().Send(context.Background(), newTestReport(0), SendOptions{
		URL:   server.URL,
		Token: "secret-token-123",
	})

	if !resp.Success() {
		t.Errorf("expected success, got error: %v", resp.Error)
	}
	if receivedAuth != "Bearer secret-token-123" {
		t.Errorf("expected Bearer token, got %s", receivedAuth)
	}
}

func TestClient_Send_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resp := NewClient().Send(context.Background(), newTestReport(0), SendOptions{URL: server.URL})

	if resp.Success() {
		t.Error("expected failure, got success")
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", resp.StatusCode)
	}
	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestClient_Send_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp := NewClient().Send(context.Background(), newTestReport(0), SendOptions{
		URL:     server.URL,
		Timeout: 50 * time.Millisecond,
	})

	if resp.Success() || resp.Error == nil {
		t.Errorf("expected timeout failure, got %+v", resp)
	}
	if resp.Duration <= 0 {
		t.Error("Duration should be recorded on failure")
	}
}

func TestClient_Send_InvalidURL(t *testing.T) {
	resp := NewClient().Send(context.Background(), newTestReport(0), SendOptions{URL: "://invalid-url"})
	if resp.Success() || resp.Error == nil {
		t.Errorf("expected failure for invalid URL, got %+v", resp)
	}
}

func TestResponse_Success(t *testing.T) {
	tests := []struct {
		name        string
		resp        Response
		wantSuccess bool
	}{
		{"200 OK", Response{StatusCode: 200}, true},
		{"204 No Content", Response{StatusCode: 204}, true},
		{"302 Found", Response{StatusCode: 302}, false},
		{"400 Bad Request", Response{StatusCode: 400}, false},
		{"With Error", Response{StatusCode: 200, Error: io.EOF}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.Success(); got != tt.wantSuccess {
				t.Errorf("Success() = %v, want %v", got, tt.wantSuccess)
			}
		})
	}
}

func TestClient_Notify_Triggers(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	hooks := []config.WebhookConfig{
		{Name: "always", URL: server.URL, Trigger: config.WebhookTriggerAlways},
		{Name: "failure", URL: server.URL, Trigger: config.WebhookTriggerOnFailure},
		{Name: "never", URL: server.URL, Trigger: config.WebhookTriggerNever},
	}

	client := NewClient()

	sent := client.Notify(context.Background(), hooks, newTestReport(0), quietLogger())
	if sent != 1 || hits.Load() != 1 {
		t.Errorf("clean run: sent=%d hits=%d, want 1/1", sent, hits.Load())
	}

	hits.Store(0)
	sent = client.Notify(context.Background(), hooks, newTestReport(1), quietLogger())
	if sent != 2 || hits.Load() != 2 {
		t.Errorf("failed run: sent=%d hits=%d, want 2/2", sent, hits.Load())
	}
}

func TestClient_Notify_ContinuesAfterFailure(t *testing.T) {
	var hits atomic.Int32
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()

	hooks := []config.WebhookConfig{
		{URL: bad.URL, Trigger: config.WebhookTriggerAlways},
		{URL: good.URL, Trigger: config.WebhookTriggerAlways},
	}

	sent := NewClient().Notify(context.Background(), hooks, newTestReport(0), nil)
	if sent != 1 || hits.Load() != 1 {
		t.Errorf("sent=%d hits=%d, want 1/1", sent, hits.Load())
	}
}
