package llm

import (
	"fmt"
	"sort"
	"sync"
)

// maps providers to configured backends
type Registry struct {
	mu       sync.RWMutex
	backends map[Provider]Backend
}

func NewRegistry(backends ...Backend) *Registry {
	r := &Registry{backends: make(map[Provider]Backend, len(backends))}
	for _, b := range backends {
		r.Register(b)
	}

	return r
}

func (r *Registry) Register(b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backends[b.Provider()] = b
}

func (r *Registry) Get(p Provider) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.backends[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, p)
	}

	return b, nil
}

// lists registered providers in stable order
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, 0, len(r.backends))
	for p := range r.backends {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// builds a registry from whichever keys are configured
func NewRegistryFromKeys(openai, gemini ClientConfig) (*Registry, error) {
	r := NewRegistry()

	if openai.APIKey != "" {
		r.Register(NewOpenAIClient(openai))
	}

	if gemini.APIKey != "" {
		r.Register(NewGeminiClient(gemini))
	}

	if len(r.backends) == 0 {
		return nil, fmt.Errorf("at least one of OPENAI_API_KEY or GEMINI_API_KEY is required")
	}

	return r, nil
}
