// Package wizard tracks the per-user habit creation dialog: the user is
// asked for a name, then a frequency, and the habit is committed to the
// store on the final step.
package wizard

import (
	"context"
	"log"
	"strings"
	"sync"

	errorvalues "github.com/Sofya-Khabibulina/HabitTracker/internal/error_values"
	"github.com/Sofya-Khabibulina/HabitTracker/internal/service"
)

type Step int

const (
	StepIdle Step = iota
	StepAwaitingName
	StepAwaitingFrequency
)

type session struct {
	step      Step
	habitName string
}

// Wizard holds the ephemeral dialog state for every user. State never
// survives a restart; an interrupted dialog just starts over.
type Wizard struct {
	store service.HabitCreator

	mu       sync.Mutex
	sessions map[int64]*session
}

func New(store service.HabitCreator) *Wizard {
	if store == nil {
		log.Fatal("provided nil habit store")
	}
	return &Wizard{
		store:    store,
		sessions: make(map[int64]*session),
	}
}

// Start begins a new creation dialog. An in-flight dialog for the same
// user is discarded without error; the newest start wins.
func (w *Wizard) Start(userID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sessions[userID] = &session{step: StepAwaitingName}
}

// SubmitName stores the habit name and advances to the frequency step.
// A name outside the allowed length keeps the user on the name step.
func (w *Wizard) SubmitName(userID int64, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	sess, ok := w.sessions[userID]
	if !ok {
		return errorvalues.ErrNoActiveWizard
	}
	if sess.step != StepAwaitingName {
		return errorvalues.ErrUnexpectedMessage
	}
	name := strings.TrimSpace(text)
	if err := service.ValidateHabitName(name); err != nil {
		return err
	}
	sess.habitName = name
	sess.step = StepAwaitingFrequency
	return nil
}

// SubmitFrequency resolves the typed frequency and commits the habit.
// Unrecognized input keeps the user on the frequency step; once the store
// call is made the dialog ends either way.
func (w *Wizard) SubmitFrequency(ctx context.Context, userID int64, text string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	sess, ok := w.sessions[userID]
	if !ok {
		return "", errorvalues.ErrNoActiveWizard
	}
	if sess.step != StepAwaitingFrequency {
		return "", errorvalues.ErrUnexpectedMessage
	}
	freq, matched := ParseFrequency(text)
	if !matched {
		return "", errorvalues.ErrUnknownFrequency
	}
	habitID, err := w.store.CreateHabit(ctx, userID, sess.habitName, string(freq))
	delete(w.sessions, userID)
	return habitID, err
}

// Cancel forces the user back to idle from any step.
func (w *Wizard) Cancel(userID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sessions, userID)
}

// CurrentStep reports the user's dialog position, StepIdle if none.
func (w *Wizard) CurrentStep(userID int64) Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	sess, ok := w.sessions[userID]
	if !ok {
		return StepIdle
	}
	return sess.step
}
