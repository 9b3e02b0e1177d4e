package wizard_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errorvalues "github.com/Sofya-Khabibulina/HabitTracker/internal/error_values"
	"github.com/Sofya-Khabibulina/HabitTracker/internal/service"
	"github.com/Sofya-Khabibulina/HabitTracker/internal/wizard"
	"github.com/Sofya-Khabibulina/HabitTracker/pkg/entity"
)

func init() {
	service.InitValidator()
}

type createCall struct {
	userID    int64
	name      string
	frequency string
}

type fakeCreator struct {
	calls []createCall
	err   error
}

func (f *fakeCreator) CreateHabit(ctx context.Context, userID int64, name, frequency string) (string, error) {
	f.calls = append(f.calls, createCall{userID: userID, name: name, frequency: frequency})
	if f.err != nil {
		return "", f.err
	}
	return "habit-1", nil
}

func TestWizardHappyPath(t *testing.T) {
	t.Parallel()
	creator := &fakeCreator{}
	w := wizard.New(creator)
	ctx := context.Background()

	w.Start(42)
	assert.Equal(t, wizard.StepAwaitingName, w.CurrentStep(42))

	require.NoError(t, w.SubmitName(42, "ab"))
	assert.Equal(t, wizard.StepAwaitingFrequency, w.CurrentStep(42))

	_, err := w.SubmitFrequency(ctx, 42, "unknown")
	assert.ErrorIs(t, err, errorvalues.ErrUnknownFrequency)
	assert.Equal(t, wizard.StepAwaitingFrequency, w.CurrentStep(42))

	habitID, err := w.SubmitFrequency(ctx, 42, "daily")
	require.NoError(t, err)
	assert.Equal(t, "habit-1", habitID)
	assert.Equal(t, wizard.StepIdle, w.CurrentStep(42))

	require.Len(t, creator.calls, 1)
	assert.Equal(t, createCall{userID: 42, name: "ab", frequency: string(entity.FrequencyDaily)}, creator.calls[0])
}

func TestSubmitNameValidation(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		Desc  string
		Name  string
		Error error
	}{
		{Desc: "too short", Name: "a", Error: errorvalues.ErrInvalidHabitName},
		{Desc: "only spaces", Name: "   ", Error: errorvalues.ErrInvalidHabitName},
		{Desc: "too long", Name: strings.Repeat("x", 51), Error: errorvalues.ErrInvalidHabitName},
		{Desc: "padded but fine", Name: "  morning run  ", Error: nil},
		{Desc: "max length", Name: strings.Repeat("x", 50), Error: nil},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			w := wizard.New(&fakeCreator{})
			w.Start(1)
			err := w.SubmitName(1, tc.Name)
			assert.ErrorIs(t, err, tc.Error)
			if tc.Error != nil {
				assert.Equal(t, wizard.StepAwaitingName, w.CurrentStep(1))
			} else {
				assert.Equal(t, wizard.StepAwaitingFrequency, w.CurrentStep(1))
			}
		})
	}
}

func TestRussianFrequencyTerms(t *testing.T) {
	t.Parallel()
	creator := &fakeCreator{}
	w := wizard.New(creator)
	ctx := context.Background()

	w.Start(5)
	require.NoError(t, w.SubmitName(5, "зарядка"))
	_, err := w.SubmitFrequency(ctx, 5, "Каждый День")
	require.NoError(t, err)
	require.Len(t, creator.calls, 1)
	assert.Equal(t, string(entity.FrequencyDaily), creator.calls[0].frequency)
}

func TestStartSupersedesInFlightDialog(t *testing.T) {
	t.Parallel()
	w := wizard.New(&fakeCreator{})

	w.Start(8)
	require.NoError(t, w.SubmitName(8, "reading"))
	assert.Equal(t, wizard.StepAwaitingFrequency, w.CurrentStep(8))

	// A second start throws the half-finished dialog away.
	w.Start(8)
	assert.Equal(t, wizard.StepAwaitingName, w.CurrentStep(8))
	_, err := w.SubmitFrequency(context.Background(), 8, "daily")
	assert.ErrorIs(t, err, errorvalues.ErrUnexpectedMessage)
}

func TestOutOfStepSubmissions(t *testing.T) {
	t.Parallel()
	w := wizard.New(&fakeCreator{})
	ctx := context.Background()

	// Frequency before the name was given.
	w.Start(9)
	_, err := w.SubmitFrequency(ctx, 9, "daily")
	assert.ErrorIs(t, err, errorvalues.ErrUnexpectedMessage)
	assert.Equal(t, wizard.StepAwaitingName, w.CurrentStep(9))

	// A second name once the dialog moved on.
	require.NoError(t, w.SubmitName(9, "reading"))
	err = w.SubmitName(9, "another name")
	assert.ErrorIs(t, err, errorvalues.ErrUnexpectedMessage)
	assert.Equal(t, wizard.StepAwaitingFrequency, w.CurrentStep(9))
}

func TestCancelFromAnyStep(t *testing.T) {
	t.Parallel()
	w := wizard.New(&fakeCreator{})

	w.Cancel(3)
	assert.Equal(t, wizard.StepIdle, w.CurrentStep(3))

	w.Start(3)
	w.Cancel(3)
	assert.Equal(t, wizard.StepIdle, w.CurrentStep(3))

	w.Start(3)
	require.NoError(t, w.SubmitName(3, "yoga"))
	w.Cancel(3)
	assert.Equal(t, wizard.StepIdle, w.CurrentStep(3))
}

func TestSubmitWithoutStart(t *testing.T) {
	t.Parallel()
	w := wizard.New(&fakeCreator{})

	err := w.SubmitName(2, "reading")
	assert.ErrorIs(t, err, errorvalues.ErrNoActiveWizard)
	_, err = w.SubmitFrequency(context.Background(), 2, "daily")
	assert.ErrorIs(t, err, errorvalues.ErrNoActiveWizard)
}

func TestStoreFailureStillEndsDialog(t *testing.T) {
	t.Parallel()
	creator := &fakeCreator{err: errors.New("disk full")}
	w := wizard.New(creator)

	w.Start(4)
	require.NoError(t, w.SubmitName(4, "meditation"))
	_, err := w.SubmitFrequency(context.Background(), 4, "weekly")
	assert.Error(t, err)
	assert.Equal(t, wizard.StepIdle, w.CurrentStep(4))
}
