package testutil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func postChat(t *testing.T, url, body string) (int, string) {
	t.Helper()
	resp, err := http.Post(url+"/chat/completions", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return resp.StatusCode, string(data)
}

func TestOracleStreamsChunksAndRecordsRequests(t *testing.T) {
	server := StartOracle(t, func(req OracleRequest) OracleReply {
		return OracleReply{Chunks: []string{"he", "llo"}}
	})
	status, body := postChat(t, server.BaseURL, `{"model":"m","max_tokens":64,"messages":[{"role":"user","content":[`+
		`{"type":"image_url","image_url":{"url":"data:image/png;base64,AA=="}},{"type":"text","text":"read it"}]}]}`)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", status, body)
	}
	want := "data: {\"choices\":[{\"delta\":{\"content\":\"he\"}}]}\n\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"llo\"}}]}\n\n" +
		"data: [DONE]\n\n"
	if body != want {
		t.Fatalf("unexpected stream:\n%s", body)
	}
	requests := server.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected one request, got %d", len(requests))
	}
	got := requests[0]
	if got.Model != "m" || got.MaxTokens != 64 || got.Text != "read it" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if len(got.MediaTypes) != 1 || got.MediaTypes[0] != "image_url" {
		t.Fatalf("unexpected media types: %v", got.MediaTypes)
	}
}

func TestOracleReturnsScriptedErrors(t *testing.T) {
	server := StartOracle(t, func(OracleRequest) OracleReply {
		return OracleReply{Status: http.StatusTooManyRequests, Body: "slow down"}
	})
	status, body := postChat(t, server.BaseURL, `{"model":"m","messages":[]}`)
	if status != http.StatusTooManyRequests || strings.TrimSpace(body) != "slow down" {
		t.Fatalf("unexpected reply %d: %q", status, body)
	}

	status, _ = postChat(t, server.BaseURL, `not json`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", status)
	}
}

func TestWaitForReportsLastProbeError(t *testing.T) {
	calls := 0
	WaitFor(t, time.Second, func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("attempt %d", calls)
		}
		return nil
	})
	if calls != 3 {
		t.Fatalf("expected three probes, got %d", calls)
	}
}

// tbOnly hides the Deadline method of *testing.T.
type tbOnly struct{ testing.TB }

func TestContextAcceptsAnyTB(t *testing.T) {
	for name, tb := range map[string]testing.TB{"T": t, "TB": tbOnly{t}} {
		start := time.Now()
		ctx := Context(tb, 200*time.Millisecond)
		deadline, ok := ctx.Deadline()
		if !ok {
			t.Fatalf("%s: context has no deadline", name)
		}
		if limit := start.Add(200 * time.Millisecond); deadline.After(limit.Add(10 * time.Millisecond)) {
			t.Fatalf("%s: deadline %s exceeds timeout", name, deadline.Sub(start))
		}
	}
}
