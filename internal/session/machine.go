// Package session holds the per-chat draft state machine that walks a user
// through description+amount, category, payment method and card before
// committing one row to the store.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"

	"gastos/internal/core"
	"gastos/internal/rowstore"
)

var (
	// ErrInvalidEntryFormat means the free-text message did not split into
	// description + amount.
	ErrInvalidEntryFormat = errors.New("invalid entry format")
	// ErrNoActiveDraft means a step arrived with nothing in progress.
	ErrNoActiveDraft = errors.New("no active draft")
	// ErrWrongState means a step arrived out of sequence for the draft.
	ErrWrongState = errors.New("wrong draft state")
)

type State int

const (
	StateAwaitingCategory State = iota
	StateAwaitingPayment
	StateAwaitingCard
)

// Draft is the in-progress entry for one chat. It lives only in memory and
// is destroyed on commit.
type Draft struct {
	Description string
	Amount      core.Money
	Category    string
	Method      core.PaymentMethod
	Card        string
	State       State
}

// StepResult is the outcome of the payment-method step: either the card
// step comes next, or the draft committed.
type StepResult struct {
	NeedsCard bool
	Entry     *core.Entry
}

// Manager owns all drafts. Each session has its own lock so concurrent
// updates for one chat serialize while different chats proceed in parallel.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*chatSession
	store    rowstore.RowAppender
	now      func() time.Time
}

type chatSession struct {
	mu    sync.Mutex
	draft *Draft
}

func NewManager(store rowstore.RowAppender) *Manager {
	return &Manager{
		sessions: make(map[int64]*chatSession),
		store:    store,
		now:      time.Now,
	}
}

func (m *Manager) session(id int64) *chatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		s = &chatSession{}
		m.sessions[id] = s
	}
	return s
}

// StartEntry parses "description amount" free text, splitting at the last
// whitespace run and reading the trailing token as a comma-decimal amount.
// A parse failure leaves any existing draft untouched; success overwrites
// it and moves to the category step.
func (m *Manager) StartEntry(id int64, text string) (Draft, error) {
	trimmed := strings.TrimSpace(text)
	cut := strings.LastIndexFunc(trimmed, unicode.IsSpace)
	if cut < 0 {
		return Draft{}, ErrInvalidEntryFormat
	}
	desc := strings.TrimSpace(trimmed[:cut])
	cents, err := core.ParseDecimalToCents(trimmed[cut+1:])
	if err != nil || desc == "" {
		return Draft{}, ErrInvalidEntryFormat
	}

	s := m.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = &Draft{
		Description: desc,
		Amount:      core.Money{Cents: cents},
		State:       StateAwaitingCategory,
	}
	return *s.draft, nil
}

// SetCategory records the chosen category. The value is taken as echoed by
// the transport without membership validation, trusting the button payload.
func (m *Manager) SetCategory(id int64, category string) (Draft, error) {
	s := m.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return Draft{}, ErrNoActiveDraft
	}
	if s.draft.State != StateAwaitingCategory {
		return Draft{}, ErrWrongState
	}
	s.draft.Category = category
	s.draft.State = StateAwaitingPayment
	return *s.draft, nil
}

// SetPaymentMethod records the payment method. Credit and debit advance to
// the card step; anything else commits immediately with the "none" card.
func (m *Manager) SetPaymentMethod(ctx context.Context, id int64, method core.PaymentMethod) (StepResult, error) {
	s := m.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return StepResult{}, ErrNoActiveDraft
	}
	if s.draft.State != StateAwaitingPayment {
		return StepResult{}, ErrWrongState
	}
	s.draft.Method = method
	if method.NeedsCard() {
		s.draft.State = StateAwaitingCard
		return StepResult{NeedsCard: true}, nil
	}
	s.draft.Card = core.CardNone
	entry, err := m.commitLocked(ctx, s)
	if err != nil {
		return StepResult{}, err
	}
	return StepResult{Entry: &entry}, nil
}

// SetCard records the card and commits.
func (m *Manager) SetCard(ctx context.Context, id int64, card string) (core.Entry, error) {
	s := m.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return core.Entry{}, ErrNoActiveDraft
	}
	if s.draft.State != StateAwaitingCard {
		return core.Entry{}, ErrWrongState
	}
	s.draft.Card = card
	return m.commitLocked(ctx, s)
}

// Draft returns a snapshot of the chat's in-progress draft, if any.
func (m *Manager) Draft(id int64) (Draft, bool) {
	s := m.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return Draft{}, false
	}
	return *s.draft, true
}

// commitLocked appends exactly one row for the draft. On a store failure the
// draft stays in place so the user's data survives for a retry; on success
// the draft is cleared. Caller holds s.mu.
func (m *Manager) commitLocked(ctx context.Context, s *chatSession) (core.Entry, error) {
	entry := core.Entry{
		RecordedAt:  m.now(),
		Description: s.draft.Description,
		Amount:      s.draft.Amount,
		Category:    s.draft.Category,
		Method:      s.draft.Method,
		Card:        s.draft.Card,
	}
	if err := entry.Validate(); err != nil {
		return core.Entry{}, fmt.Errorf("validate entry: %w", err)
	}
	if err := m.store.AppendRow(ctx, entry.Row()); err != nil {
		slog.ErrorContext(ctx, "Failed to commit entry, draft preserved",
			"description", entry.Description, "error", err)
		return core.Entry{}, fmt.Errorf("append entry: %w", err)
	}
	s.draft = nil
	return entry, nil
}
