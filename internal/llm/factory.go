package llm

import (
	"fmt"

	"github.com/chaman2003/epsilora-api/internal/audit"
)

// NewProvider builds the configured provider wrapped with retry and audit
// middleware: caller → retry → audit → base.
func NewProvider(cfg Config, recorder audit.Recorder) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if recorder == nil {
		recorder = audit.Discard{}
	}
	return WithRetry(WithAudit(base, recorder), cfg.Retry), nil
}
