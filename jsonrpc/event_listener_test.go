package jsonrpc_test

import (
	"sync"
	"time"
)

type handledCall struct {
	method string
	took   time.Duration
}

type failedCall struct {
	method string
	data   any
}

// CountingEventListener records every callback. Batches fire callbacks from
// pool goroutines so access is serialised.
type CountingEventListener struct {
	mu                    sync.Mutex
	OnNewRequestLogs      []string
	OnRequestHandledCalls []handledCall
	OnRequestFailedCalls  []failedCall
}

func (l *CountingEventListener) OnNewRequest(method string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.OnNewRequestLogs = append(l.OnNewRequestLogs, method)
}

func (l *CountingEventListener) OnRequestHandled(method string, took time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.OnRequestHandledCalls = append(l.OnRequestHandledCalls, handledCall{method: method, took: took})
}

func (l *CountingEventListener) OnRequestFailed(method string, data any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.OnRequestFailedCalls = append(l.OnRequestFailedCalls, failedCall{method: method, data: data})
}
