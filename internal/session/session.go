// Package session tracks per-user wizard state for guided transaction entry.
//
// A Session is ephemeral: it lives in memory, is created on first
// interaction or /nuevo, and is reset on cancel, completion, or error. The
// transition logic itself is a pure function in machine.go; the Manager only
// owns the lifecycle.
package session

import (
	"sync"

	"github.com/shopspring/decimal"

	"finanzas/internal/core"
)

// Step is a stage of the entry wizard.
type Step int

const (
	StepIdle Step = iota
	StepChooseType
	StepChooseDate
	StepEnterDate
	StepChooseSource
	StepChooseCategory
	StepEnterAmount
	StepChooseMethod
	StepChooseBank
	StepChooseFrom
	StepChooseTo
	StepEnterDestAmount
	StepEnterNote
	StepConfirm
)

var stepNames = map[Step]string{
	StepIdle:            "idle",
	StepChooseType:      "choose_type",
	StepChooseDate:      "choose_date",
	StepEnterDate:       "enter_date",
	StepChooseSource:    "choose_source",
	StepChooseCategory:  "choose_category",
	StepEnterAmount:     "enter_amount",
	StepChooseMethod:    "choose_method",
	StepChooseBank:      "choose_bank",
	StepChooseFrom:      "choose_from_account",
	StepChooseTo:        "choose_to_account",
	StepEnterDestAmount: "enter_destination_amount",
	StepEnterNote:       "enter_note",
	StepConfirm:         "confirm",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Draft is the partially-built transaction a session accumulates.
type Draft struct {
	Kind     core.Kind
	Date     core.Date
	Source   string
	Category string
	Amount   decimal.Decimal
	Method   string
	Bank     string
	From     string
	To       string
	AmountIn decimal.Decimal
	Note     string
}

// Session is one user's wizard state.
type Session struct {
	UserID int64
	Step   Step
	Draft  Draft
}

// Manager owns session lifecycle keyed by user identifier. Events for a
// given user arrive in order, so access is effectively serial; the mutex
// only guards the map itself.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func NewManager() *Manager {
	return &Manager{sessions: map[int64]Session{}}
}

// Get returns the user's session, creating an idle one if absent.
func (m *Manager) Get(userID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = Session{UserID: userID, Step: StepIdle}
		m.sessions[userID] = s
	}
	return s
}

// Put stores the session returned by a transition.
func (m *Manager) Put(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.UserID] = s
}

// Reset replaces the user's session with an empty idle one.
func (m *Manager) Reset(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = Session{UserID: userID, Step: StepIdle}
}

// Destroy removes the session entirely.
func (m *Manager) Destroy(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
