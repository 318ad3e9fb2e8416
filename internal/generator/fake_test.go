package generator_test

import (
	"context"
	"errors"
	"sync"

	"github.com/brainboyai/tiny-tutor-api/internal/generator"
)

// scriptedProvider replays canned responses in order and records requests.
type scriptedProvider struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	requests  []generator.Request
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Generate(_ context.Context, req generator.Request) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := len(p.requests)
	p.requests = append(p.requests, req)
	if i < len(p.errs) && p.errs[i] != nil {
		return "", p.errs[i]
	}
	if i >= len(p.responses) {
		return "", errors.New("no scripted response left")
	}
	return p.responses[i], nil
}

func (p *scriptedProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}
