package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// OracleRequest is the part of a chat completion request fake oracles see.
type OracleRequest struct {
	Model     string
	MaxTokens int
	// Text joins every text part of the user message.
	Text       string
	MediaTypes []string
}

// OracleReply scripts one streamed response. A non-zero Status returns a
// plain error body instead of a stream.
type OracleReply struct {
	Chunks []string
	Status int
	Body   string
}

// OracleServer is a fake OpenAI-compatible streaming endpoint.
type OracleServer struct {
	BaseURL string
	Close   func()

	mu       sync.Mutex
	requests []OracleRequest
}

// Requests returns a copy of the requests received so far.
func (s *OracleServer) Requests() []OracleRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]OracleRequest(nil), s.requests...)
}

// StartOracle serves /chat/completions, answering each request with reply.
// The server is closed when the test ends.
func StartOracle(t testing.TB, reply func(OracleRequest) OracleReply) *OracleServer {
	t.Helper()
	server := NewOracle(reply)
	t.Cleanup(server.Close)
	return server
}

// NewOracle starts a fake oracle the caller must Close.
func NewOracle(reply func(OracleRequest) OracleReply) *OracleServer {
	server := &OracleServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/completions", func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeOracleRequest(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		server.mu.Lock()
		server.requests = append(server.requests, req)
		server.mu.Unlock()

		out := reply(req)
		if out.Status != 0 {
			http.Error(w, out.Body, out.Status)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range out.Chunks {
			payload, _ := json.Marshal(map[string]any{
				"choices": []any{map[string]any{"delta": map[string]any{"content": chunk}}},
			})
			fmt.Fprintf(w, "data: %s\n\n", payload)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	})
	httpServer := httptest.NewServer(mux)
	server.BaseURL = httpServer.URL
	server.Close = httpServer.Close
	return server
}

// EchoAnswer replies with text for every request.
func EchoAnswer(text string) func(OracleRequest) OracleReply {
	return func(OracleRequest) OracleReply {
		return OracleReply{Chunks: []string{text}}
	}
}

func decodeOracleRequest(body io.Reader) (OracleRequest, error) {
	var payload struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return OracleRequest{}, fmt.Errorf("decode request: %w", err)
	}
	req := OracleRequest{Model: payload.Model, MaxTokens: payload.MaxTokens}
	var texts []string
	for _, message := range payload.Messages {
		for _, part := range message.Content {
			if part.Type == "text" {
				texts = append(texts, part.Text)
				continue
			}
			req.MediaTypes = append(req.MediaTypes, part.Type)
		}
	}
	req.Text = strings.Join(texts, "\n")
	return req, nil
}
