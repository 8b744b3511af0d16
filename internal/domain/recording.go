package domain

import (
	"sync/atomic"
	"time"
)

// RecordingKind distinguishes the two capture flows
type RecordingKind string

const (
	RecordingVoice RecordingKind = "voice"
	RecordingVideo RecordingKind = "video"
)

// ValidRecordingKind reports whether v names a known recording kind
func ValidRecordingKind(v string) bool {
	return RecordingKind(v) == RecordingVoice || RecordingKind(v) == RecordingVideo
}

// RecordingState is the explicit session state. Stopped is terminal: a new
// session must be constructed to record again.
type RecordingState string

const (
	RecordingIdle    RecordingState = "idle"
	RecordingActive  RecordingState = "recording"
	RecordingStopped RecordingState = "stopped"
)

// RecordingSession governs one audio or video capture interaction. The
// capture stream is the inbound chunk sink: chunks may only be appended
// while State is RecordingActive. A 1 Hz ticker increments the elapsed
// counter for display; it is guaranteed to stop on every exit path (explicit
// stop or draft reaping) by closing Done exactly once.
type RecordingSession struct {
	Kind      RecordingKind
	State     RecordingState
	StartedAt time.Time
	Data      []byte
	Done      chan struct{}

	elapsed int64 // seconds, accessed atomically (ticker goroutine vs. handlers)
}

// NewRecordingSession constructs a session already in the recording state
func NewRecordingSession(kind RecordingKind) *RecordingSession {
	return &RecordingSession{
		Kind:      kind,
		State:     RecordingActive,
		StartedAt: time.Now(),
		Done:      make(chan struct{}),
	}
}

// Elapsed returns the recorded duration in whole seconds
func (s *RecordingSession) Elapsed() int64 {
	return atomic.LoadInt64(&s.elapsed)
}

// Tick advances the elapsed counter by one second
func (s *RecordingSession) Tick() {
	atomic.AddInt64(&s.elapsed, 1)
}

// RecorderSnapshot is the read-only view of a session exposed over the API
type RecorderSnapshot struct {
	Kind    RecordingKind  `json:"kind"`
	State   RecordingState `json:"state"`
	Elapsed int64          `json:"elapsed_seconds"`
	Size    int64          `json:"size"`
}
