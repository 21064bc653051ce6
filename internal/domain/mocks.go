package domain

import (
	"context"
	"sync"
)

type MockTopology struct {
	Branches []BranchRef
	StackErr error
	Current  string
	HeadErr  error
	Called   int
}

func (m *MockTopology) Stack(ctx context.Context) ([]BranchRef, error) {
	m.Called++
	if m.StackErr != nil {
		return nil, m.StackErr
	}
	return m.Branches, nil
}

func (m *MockTopology) CurrentBranch(ctx context.Context) (string, error) {
	if m.HeadErr != nil {
		return "", m.HeadErr
	}
	return m.Current, nil
}

type MockPRResolver struct {
	PRs map[string]int64
}

func (m *MockPRResolver) ResolvePR(ctx context.Context, branch string) (int64, bool) {
	pr, ok := m.PRs[branch]
	return pr, ok
}

type MockCheckProvider struct {
	mu       sync.Mutex
	ByBranch map[string][]Check
	Err      error
	Called   []string
}

func (m *MockCheckProvider) Checks(ctx context.Context, branch string) ([]Check, error) {
	m.mu.Lock()
	m.Called = append(m.Called, branch)
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ByBranch[branch], nil
}

type MockKeys struct {
	Keys []byte
}

func (m *MockKeys) Poll() (byte, bool) {
	if len(m.Keys) == 0 {
		return 0, false
	}
	k := m.Keys[0]
	m.Keys = m.Keys[1:]
	return k, true
}

type MockRenderer struct {
	Rendered  []StackStatus
	Helps     int
	Completes int
}

func (m *MockRenderer) Render(st StackStatus, details bool) { m.Rendered = append(m.Rendered, st) }
func (m *MockRenderer) RenderHelp()                         { m.Helps++ }
func (m *MockRenderer) RenderComplete()                     { m.Completes++ }

type MockNotifier struct {
	Messages []string
	Err      error
}

func (n *MockNotifier) Notify(ctx context.Context, title, body, url string) error {
	n.Messages = append(n.Messages, title+"|"+body+"|"+url)
	return n.Err
}

type MockSink struct {
	Snapshots []StackStatus
	Err       error
}

func (c *MockSink) Write(ctx context.Context, st StackStatus) error {
	if c.Err != nil {
		return c.Err
	}
	c.Snapshots = append(c.Snapshots, st)
	return nil
}
