package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind labels which operation produced an outcome.
type Kind string

const (
	KindSingle Kind = "single"
	KindBulk   Kind = "bulk"
	KindOTP    Kind = "otp"
)

// Status is the terminal state of a dispatch attempt.
type Status string

const (
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

// Outcome is one recorded dispatch attempt.
type Outcome struct {
	ID              uuid.UUID
	Kind            Kind
	Status          Status
	SenderID        string
	Recipients      []string
	Message         string
	Code            int
	ProviderMessage string
	Error           string
	Parts           int
	EstimatedCost   float64
	CreatedAt       time.Time
}

// Fill assigns an ID and timestamp if the caller left them zero.
func (o *Outcome) Fill() {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
}

// Recorder persists dispatch outcomes. Implementations must be safe
// for concurrent use; Record is called from background goroutines.
type Recorder interface {
	Record(ctx context.Context, outcome *Outcome) error
}

// Nop discards every outcome.
type Nop struct{}

func (Nop) Record(context.Context, *Outcome) error { return nil }

// Memory keeps outcomes in process memory, newest last.
type Memory struct {
	mu       sync.Mutex
	outcomes []Outcome
}

// NewMemory creates an empty in-memory recorder.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Record(_ context.Context, outcome *Outcome) error {
	outcome.Fill()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, *outcome)
	return nil
}

// Outcomes returns a copy of everything recorded so far.
func (m *Memory) Outcomes() []Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Outcome{}, m.outcomes...)
}

// Len returns the number of recorded outcomes.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.outcomes)
}

var (
	_ Recorder = Nop{}
	_ Recorder = (*Memory)(nil)
)
