package extractor

import (
	"context"
	"sync"
)

// generatorMock is a moq-style mock of Generator.
type generatorMock struct {
	GenerateFunc func(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	mu    sync.Mutex
	calls []generateCall
}

type generateCall struct {
	Prompt string
	Opts   GenerateOptions
}

func (m *generatorMock) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, generateCall{Prompt: prompt, Opts: opts})
	m.mu.Unlock()

	if m.GenerateFunc == nil {
		panic("generatorMock.GenerateFunc: method is nil but Generator.Generate was just called")
	}
	return m.GenerateFunc(ctx, prompt, opts)
}

// GenerateCalls returns the recorded calls.
func (m *generatorMock) GenerateCalls() []generateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generateCall(nil), m.calls...)
}

func replyWith(out string, err error) *generatorMock {
	return &generatorMock{
		GenerateFunc: func(context.Context, string, GenerateOptions) (string, error) {
			return out, err
		},
	}
}
