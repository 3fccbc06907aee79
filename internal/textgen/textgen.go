// Package textgen provides text completion behind a common interface,
// with providers for a local Ollama server, the Anthropic API, and the
// HuggingFace Inference API. A Chain tries providers in order and always
// returns something usable for chat.
package textgen

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// CannedFallback is returned by Chain when every provider is unavailable.
const CannedFallback = "I'm an open-source AI assistant. For advanced answers, connect me to a local model or HuggingFace Inference API!"

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Chain tries each generator in order and returns the first non-empty
// completion. Provider failures are logged and absorbed; Generate never
// returns an error.
type Chain struct {
	providers []Generator
	log       zerolog.Logger
}

func NewChain(log zerolog.Logger, providers ...Generator) *Chain {
	return &Chain{providers: providers, log: log}
}

func (c *Chain) Generate(ctx context.Context, prompt string) (string, error) {
	for _, p := range c.providers {
		if p == nil {
			continue
		}
		out, err := p.Generate(ctx, prompt)
		if err != nil {
			c.log.Debug().Err(err).Msg("text provider failed, trying next")
			continue
		}
		if s := strings.TrimSpace(out); s != "" {
			return s, nil
		}
	}
	return CannedFallback, nil
}
