package service

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"clinicapi/internal/realtime"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, event realtime.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	event.Channel = channel
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) published() []realtime.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]realtime.Event(nil), p.events...)
}

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) Create(patientID int64) (string, error) {
	args := m.Called(patientID)
	return args.String(0), args.Error(1)
}

func (m *mockSessions) Resolve(token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessions) Consume(token string) {
	m.Called(token)
}

type countingRecorder struct {
	mu      sync.Mutex
	stored  int
	reasons []string
}

func (r *countingRecorder) BatchStored(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored += n
}

func (r *countingRecorder) BatchFailed(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons = append(r.reasons, reason)
}

var errBoom = errors.New("boom")
