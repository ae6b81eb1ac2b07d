package llm

import (
	"fmt"
	"strings"
)

// Config selects and configures the provider variants. A variant without an
// API key is left out of the registry.
type Config struct {
	DefaultProvider string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	AnthropicKey     string
	AnthropicModel   string
	AnthropicBaseURL string
}

// Registry resolves a provider name to its configured Extractor.
type Registry struct {
	def       Provider
	extractor map[Provider]Extractor
}

// NewRegistry returns an empty registry falling back to def.
func NewRegistry(def Provider, extractors ...Extractor) (*Registry, error) {
	if !def.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, def)
	}

	r := &Registry{def: def, extractor: make(map[Provider]Extractor, len(extractors))}
	for _, e := range extractors {
		r.extractor[e.Provider()] = e
	}
	return r, nil
}

// FromConfig builds a registry holding every variant with credentials.
func FromConfig(cfg Config) (*Registry, error) {
	def := Provider(strings.ToLower(strings.TrimSpace(cfg.DefaultProvider)))
	if def == "" {
		def = ProviderOpenAI
	}

	var extractors []Extractor
	if cfg.OpenAIKey != "" {
		extractors = append(extractors, NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL))
	}
	if cfg.AnthropicKey != "" {
		extractors = append(extractors, NewAnthropic(cfg.AnthropicKey, cfg.AnthropicModel, cfg.AnthropicBaseURL))
	}
	return NewRegistry(def, extractors...)
}

// Default reports the provider used when a request names none.
func (r *Registry) Default() Provider { return r.def }

// Get resolves name, or the default provider when name is empty.
func (r *Registry) Get(name string) (Extractor, error) {
	p := r.def
	if s := strings.ToLower(strings.TrimSpace(name)); s != "" {
		p = Provider(s)
	}
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}

	e, ok := r.extractor[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, p)
	}
	return e, nil
}
