// Package snapshot persists the rendered state of live sessions.
//
// A snapshot is the serialized markup of a session's tree plus the
// patch sequence it corresponds to. Servers write one when a session
// ends; the stored page can seed diagnostics or a warm first paint for
// a returning client.
package snapshot

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no snapshot exists for a session.
var ErrNotFound = errors.New("snapshot: not found")

// Snapshot is one session's rendered state at a point in time.
type Snapshot struct {
	SessionID string
	Seq       uint64
	HTML      string
	TakenAt   time.Time
}

// Store persists snapshots keyed by session ID. Saving over an
// existing session ID replaces the previous snapshot.
type Store interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context, sessionID string) (*Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
}
