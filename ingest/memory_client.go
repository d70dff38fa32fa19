// SPDX-License-Identifier: MIT

package ingest

import (
	"context"
	"sync"
)

// MemoryClient is an in-process GraphClient that replays canned results.
type MemoryClient struct {
	mu      sync.Mutex
	results []Result
	calls   []ExecutedQuery
	err     error
	closed  bool
}

// ExecutedQuery records one ExecuteRead call.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
}

// NewMemoryClient returns a client with no queued results.
func NewMemoryClient() *MemoryClient { return &MemoryClient{} }

// WithError makes every later call fail with err.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// PushEdges queues a result holding one record per pair.
func (m *MemoryClient) PushEdges(pairs ...[2]string) {
	res := Result{Records: make([]Record, len(pairs))}
	for i, p := range pairs {
		res.Records[i] = Record{"a": p[0], "b": p[1]}
	}
	m.PushResult(res)
}

// PushResult queues res for the next ExecuteRead.
func (m *MemoryClient) PushResult(res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, res)
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return Result{}, m.err
	}
	cp := make(map[string]any, len(params))
	for k, v := range params {
		cp[k] = v
	}
	m.calls = append(m.calls, ExecutedQuery{Query: cypher, Params: cp})
	if len(m.results) == 0 {
		return Result{}, nil
	}
	res := m.results[0]
	m.results = m.results[1:]

	return res, nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *MemoryClient) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Calls returns a snapshot of the executed queries.
func (m *MemoryClient) Calls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.calls...)
}

// Closed reports whether Close was called.
func (m *MemoryClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
