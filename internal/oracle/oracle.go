// Package oracle calls the hosted multimodal model under benchmark.
package oracle

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrEmptyResponse is returned when the stream carries no completion chunks.
	ErrEmptyResponse = errors.New("oracle returned no completion")
	// ErrMissingAPIKey is returned when no API key is configured or exported.
	ErrMissingAPIKey = errors.New("oracle api key is not set")
)

// MediaKind distinguishes image and audio attachments.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
)

// Media is one attachment sent with an instruction.
type Media struct {
	Kind   MediaKind
	Format string
	Data   []byte
}

// Request is a single oracle invocation.
type Request struct {
	Instruction string
	Media       []Media
	// MaxTokens and Temperature override the client defaults when set.
	MaxTokens   int
	Temperature *float64
}

// Response carries the generated text and its timing.
type Response struct {
	Text string
	// TTFT is the time to the first content chunk. It equals EndToEnd when
	// the stream produced no content.
	TTFT     time.Duration
	EndToEnd time.Duration
}

// Oracle produces text for an instruction plus media.
type Oracle interface {
	Call(ctx context.Context, req Request) (Response, error)
}

// Func adapts a function to the Oracle interface.
type Func func(ctx context.Context, req Request) (Response, error)

// Call invokes f.
func (f Func) Call(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
