// Package session keeps the short-lived mobile upload sessions that hand a
// patient's document upload off to another device.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTTL is how long an unused session stays valid.
const DefaultTTL = 5 * time.Minute

var (
	// ErrSessionNotFound covers unknown, expired and already consumed tokens alike.
	ErrSessionNotFound = errors.New("upload session not found or expired")
	// ErrTokenCollision means a freshly generated token was already live.
	ErrTokenCollision = errors.New("upload session token collision")
	ErrClosed         = errors.New("session registry closed")
)

type entry struct {
	patientID int64
	createdAt time.Time
	timer     *time.Timer
}

// Registry maps live tokens to patient ids. Each session owns an expiry timer
// that is stopped when the session is consumed. It is safe for concurrent use.
type Registry struct {
	ttl      time.Duration
	log      zerolog.Logger
	newToken func() string
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
	closed   bool
}

// NewRegistry returns an empty registry. A non-positive ttl selects DefaultTTL.
func NewRegistry(ttl time.Duration, log zerolog.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		ttl:      ttl,
		log:      log.With().Str("component", "upload_session").Logger(),
		newToken: uuid.NewString,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// TTL returns the session lifetime.
func (r *Registry) TTL() time.Duration { return r.ttl }

// Create issues a new token bound to patientID and schedules its expiry.
func (r *Registry) Create(patientID int64) (string, error) {
	token := r.newToken()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return "", ErrClosed
	}
	if _, exists := r.sessions[token]; exists {
		return "", ErrTokenCollision
	}

	e := &entry{patientID: patientID, createdAt: r.now()}
	// expire needs r.mu, so it cannot observe the entry before it is stored.
	e.timer = time.AfterFunc(r.ttl, func() { r.expire(token, e) })
	r.sessions[token] = e

	r.log.Debug().Str("session_id", token).Int64("patient_id", patientID).Msg("upload session created")
	return token, nil
}

// Resolve returns the patient bound to token without consuming it.
func (r *Registry) Resolve(token string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[token]
	if !ok || r.now().Sub(e.createdAt) >= r.ttl {
		return 0, ErrSessionNotFound
	}
	return e.patientID, nil
}

// Consume removes the session and cancels its expiry. Unknown tokens are ignored.
func (r *Registry) Consume(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[token]; ok {
		e.timer.Stop()
		delete(r.sessions, token)
		r.log.Debug().Str("session_id", token).Msg("upload session consumed")
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close stops every pending timer and rejects further Create calls.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, e := range r.sessions {
		e.timer.Stop()
		delete(r.sessions, token)
	}
	r.closed = true
}

// expire only removes the entry it was scheduled for.
func (r *Registry) expire(token string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.sessions[token]; ok && cur == e {
		delete(r.sessions, token)
		r.log.Debug().Str("session_id", token).Msg("upload session expired")
	}
}
