package contact

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var validFields = Fields{
	Name:    "Ada Lovelace",
	Email:   "ada@example.com",
	Message: "I would like to talk about a project.",
}

type recorder struct {
	calls atomic.Int32
	err   error
	last  Submission
	mu    sync.Mutex
}

func (r *recorder) Submit(_ context.Context, s Submission) error {
	r.calls.Add(1)
	r.mu.Lock()
	r.last = s
	r.mu.Unlock()
	return r.err
}

func TestSubmitInvalidMakesNoCall(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec)
	defer c.Close()

	err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalid)

	st := c.State()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Equal(t, Errors{
		FieldName:    "Name is required",
		FieldEmail:   "Email is required",
		FieldMessage: "Message is required",
	}, st.Errors)
	assert.Zero(t, rec.calls.Load())
}

func TestSetFieldClearsCorrectedError(t *testing.T) {
	c := NewController(&recorder{})
	defer c.Close()
	c.SetFields(Fields{Name: "A", Email: "nope", Message: "short"})
	require.ErrorIs(t, c.Submit(context.Background()), ErrInvalid)
	require.Len(t, c.State().Errors, 3)

	require.NoError(t, c.SetField(FieldEmail, "ada@example.com"))
	errs := c.State().Errors
	assert.NotContains(t, errs, FieldEmail)
	assert.Equal(t, "Name must be at least 2 characters", errs[FieldName])

	// Still invalid: message updates but stays marked.
	require.NoError(t, c.SetField(FieldMessage, "too short"))
	assert.Equal(t, "Message must be at least 10 characters", c.State().Errors[FieldMessage])

	// Untouched fields do not gain errors while typing.
	c2 := NewController(&recorder{})
	defer c2.Close()
	require.NoError(t, c2.SetField(FieldName, "x"))
	assert.Empty(t, c2.State().Errors)

	assert.ErrorIs(t, c.SetField("phone", "1"), ErrUnknownField)
}

func TestHoneypotSilentlyDrops(t *testing.T) {
	rec := &recorder{}
	var transitions int
	c := NewController(rec, WithObserver(func(_, _ Status) { transitions++ }))
	defer c.Close()
	c.SetFields(validFields)
	c.SetHoneypot("http://spam.example")

	require.NoError(t, c.Submit(context.Background()))
	assert.Zero(t, rec.calls.Load())
	assert.Zero(t, transitions)
	assert.Equal(t, StatusIdle, c.Status())
	assert.Equal(t, validFields, c.State().Fields)
}

func TestSubmitSuccessClearsAndResets(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &recorder{}
	var mu sync.Mutex
	var seen []Status
	c := NewController(rec,
		WithSuccessWindow(20*time.Millisecond),
		WithObserver(func(_, to Status) {
			mu.Lock()
			seen = append(seen, to)
			mu.Unlock()
		}),
	)
	defer c.Close()
	c.SetFields(validFields)

	require.NoError(t, c.Submit(context.Background()))
	st := c.State()
	assert.Equal(t, StatusSuccess, st.Status)
	assert.Equal(t, SuccessMessage, st.Message)
	assert.Equal(t, Fields{}, st.Fields)
	assert.EqualValues(t, 1, rec.calls.Load())
	assert.Equal(t, validFields, rec.last.Fields)
	assert.NotEmpty(t, rec.last.ID)

	assert.Eventually(t, func() bool { return c.Status() == StatusIdle }, time.Second, 5*time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Status{StatusSubmitting, StatusSuccess, StatusIdle}, seen)
}

func TestSubmitFailureRetainsFields(t *testing.T) {
	rec := &recorder{err: errors.New("boom")}
	c := NewController(rec, WithSuccessWindow(time.Hour))
	defer c.Close()
	c.SetFields(validFields)

	err := c.Submit(context.Background())
	require.Error(t, err)
	st := c.State()
	assert.Equal(t, StatusError, st.Status)
	assert.Equal(t, FailureMessage, st.Message)
	assert.Equal(t, validFields, st.Fields)

	// Resubmitting from error starts a new cycle immediately.
	rec.err = nil
	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, StatusSuccess, c.Status())
	assert.EqualValues(t, 2, rec.calls.Load())
}

func TestSubmitWhileSubmittingIsBusy(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	c := NewController(SubmitterFunc(func(ctx context.Context, _ Submission) error {
		calls.Add(1)
		close(started)
		<-release
		return nil
	}), WithSuccessWindow(time.Hour))
	defer c.Close()
	c.SetFields(validFields)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()
	<-started

	assert.Equal(t, StatusSubmitting, c.Status())
	assert.ErrorIs(t, c.Submit(context.Background()), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.EqualValues(t, 1, calls.Load())
}

func TestSubmitTimeout(t *testing.T) {
	c := NewController(SubmitterFunc(func(ctx context.Context, _ Submission) error {
		<-ctx.Done()
		return ctx.Err()
	}), WithTimeout(10*time.Millisecond), WithSuccessWindow(time.Hour))
	defer c.Close()
	c.SetFields(validFields)

	err := c.Submit(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StatusError, c.Status())
}

func TestCloseCancelsReset(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewController(&recorder{}, WithSuccessWindow(10*time.Millisecond))
	c.SetFields(validFields)
	require.NoError(t, c.Submit(context.Background()))
	c.Close()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, StatusSuccess, c.Status())
	assert.ErrorIs(t, c.Submit(context.Background()), ErrClosed)
}

func TestTransitions(t *testing.T) {
	assert.True(t, canTransition(StatusIdle, StatusSubmitting))
	assert.True(t, canTransition(StatusSubmitting, StatusError))
	assert.True(t, canTransition(StatusError, StatusIdle))
	assert.False(t, canTransition(StatusIdle, StatusSuccess))
	assert.False(t, canTransition(StatusSuccess, StatusSubmitting))
	assert.False(t, canTransition(StatusSubmitting, StatusIdle))
}
