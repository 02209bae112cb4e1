package jobs

import (
	"context"
	"errors"
	"sync"
)

// ErrMockNotImplemented is returned when a MockClient method lacks an override.
var ErrMockNotImplemented = errors.New("jobs.MockClient: method not implemented")

// MockClient is a test double for Client.
type MockClient struct {
	FetchCatalogsFn func(context.Context) (Catalogs, error)
	SubmitProfileFn func(context.Context, Profile) (MatchResult, error)
	HealthFn        func(context.Context) error

	mu                   sync.Mutex
	FetchCatalogsCalls   int
	SubmitProfileCalls   int
	HealthCalls          int
	LastSubmittedProfile *Profile
}

// Compile-time check that MockClient implements Client.
var _ Client = (*MockClient)(nil)

// NewMockClient returns a MockClient with no overrides.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) FetchCatalogs(ctx context.Context) (Catalogs, error) {
	m.mu.Lock()
	m.FetchCatalogsCalls++
	fn := m.FetchCatalogsFn
	m.mu.Unlock()
	if fn == nil {
		return Catalogs{}, ErrMockNotImplemented
	}
	return fn(ctx)
}

func (m *MockClient) SubmitProfile(ctx context.Context, profile Profile) (MatchResult, error) {
	m.mu.Lock()
	m.SubmitProfileCalls++
	p := profile
	m.LastSubmittedProfile = &p
	fn := m.SubmitProfileFn
	m.mu.Unlock()
	if fn == nil {
		return MatchResult{}, ErrMockNotImplemented
	}
	return fn(ctx, profile)
}

func (m *MockClient) Health(ctx context.Context) error {
	m.mu.Lock()
	m.HealthCalls++
	fn := m.HealthFn
	m.mu.Unlock()
	if fn == nil {
		return ErrMockNotImplemented
	}
	return fn(ctx)
}
