package generation

import (
	"context"
	"errors"
)

// Request carries a prompt and the sampling parameters for one generation.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

var (
	ErrMissingAPIKey = errors.New("text generation API key not set")
	ErrNoGenerations = errors.New("text generation returned no generations")
)
