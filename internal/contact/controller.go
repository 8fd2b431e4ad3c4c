package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Status is the submission state of the form.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Banner messages shown for terminal states.
const (
	SuccessMessage = "Thank you! Your message has been sent successfully."
	FailureMessage = "Something went wrong. Please try again later."
)

const (
	DefaultSuccessWindow = 5 * time.Second
	DefaultSubmitTimeout = 15 * time.Second
)

var (
	// ErrBusy is returned when Submit is called while a submission is in flight.
	ErrBusy = errors.New("submission already in progress")
	// ErrInvalid is returned when the form fails validation; see State().Errors.
	ErrInvalid = errors.New("form has invalid fields")
	// ErrUnknownField is returned by SetField for names other than name, email, message.
	ErrUnknownField = errors.New("unknown field")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("form closed")
)

// transitions lists the valid status edges.
var transitions = map[Status][]Status{
	StatusIdle:       {StatusSubmitting},
	StatusSubmitting: {StatusSuccess, StatusError},
	StatusSuccess:    {StatusIdle},
	StatusError:      {StatusIdle},
}

func canTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Submission is one outbound contact request.
type Submission struct {
	ID string `json:"-"`
	Fields
}

// Submitter delivers a submission.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

// Submit implements Submitter.
func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error { return f(ctx, s) }

// State is a snapshot of the form.
type State struct {
	Fields  Fields `json:"fields"`
	Errors  Errors `json:"errors,omitempty"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithSuccessWindow sets how long the success or error banner stays before
// the form returns to idle.
func WithSuccessWindow(d time.Duration) Option {
	return func(c *Controller) { c.window = d }
}

// WithTimeout bounds each outbound submission.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithLogger sets the logger used for submission failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithObserver registers a callback for every status change. It runs with
// the controller locked and must not call back into it.
func WithObserver(fn func(from, to Status)) Option {
	return func(c *Controller) { c.observer = fn }
}

// Controller is the contact form state machine for one mounted form.
type Controller struct {
	submitter Submitter
	window    time.Duration
	timeout   time.Duration
	logger    *zap.Logger
	observer  func(from, to Status)

	mu         sync.Mutex
	fields     Fields
	honeypot   string
	errs       Errors
	status     Status
	message    string
	resetTimer *time.Timer
	closed     bool
}

// NewController creates an idle, empty form.
func NewController(s Submitter, opts ...Option) *Controller {
	c := &Controller{
		submitter: s,
		window:    DefaultSuccessWindow,
		timeout:   DefaultSubmitTimeout,
		logger:    zap.NewNop(),
		errs:      Errors{},
		status:    StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the form.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := make(Errors, len(c.errs))
	for k, v := range c.errs {
		errs[k] = v
	}
	return State{Fields: c.fields, Errors: errs, Status: c.status, Message: c.message}
}

// Status returns the current status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SetField updates one field. A field already marked invalid is
// re-validated so its error clears as soon as the input is fixed.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch field {
	case FieldName:
		c.fields.Name = value
	case FieldEmail:
		c.fields.Email = value
	case FieldMessage:
		c.fields.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if _, marked := c.errs[field]; marked {
		if msg := validateField(field, value); msg != "" {
			c.errs[field] = msg
		} else {
			delete(c.errs, field)
		}
	}
	return nil
}

// SetFields replaces all fields at once.
func (c *Controller) SetFields(f Fields) {
	for _, kv := range [][2]string{{FieldName, f.Name}, {FieldEmail, f.Email}, {FieldMessage, f.Message}} {
		_ = c.SetField(kv[0], kv[1])
	}
}

// SetHoneypot records the hidden field's value. Humans never fill it.
func (c *Controller) SetHoneypot(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.honeypot = v
}

// Submit validates the form and, if valid, sends it. A populated honeypot
// returns nil without any transition or outbound call. Submitting from the
// error or success state starts a new cycle immediately.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.honeypot != "" {
		c.mu.Unlock()
		c.logger.Info("contact form: honeypot filled, dropping submission")
		return nil
	}
	if c.status == StatusSubmitting {
		c.mu.Unlock()
		return ErrBusy
	}
	if errs := Validate(c.fields); len(errs) > 0 {
		c.errs = errs
		c.mu.Unlock()
		return ErrInvalid
	}
	c.errs = Errors{}
	if c.status == StatusSuccess || c.status == StatusError {
		c.stopResetLocked()
		c.setStatusLocked(StatusIdle, "")
	}
	c.setStatusLocked(StatusSubmitting, "")
	sub := Submission{ID: uuid.NewString(), Fields: c.fields}
	c.mu.Unlock()

	sendCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	err := c.submitter.Submit(sendCtx, sub)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("contact form submission failed", zap.String("submission_id", sub.ID), zap.Error(err))
		c.setStatusLocked(StatusError, FailureMessage)
	} else {
		c.fields = Fields{}
		c.setStatusLocked(StatusSuccess, SuccessMessage)
	}
	if !c.closed {
		c.scheduleResetLocked()
	}
	return err
}

// Close stops the display timer; called when the user navigates away.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopResetLocked()
}

func (c *Controller) setStatusLocked(to Status, msg string) {
	from := c.status
	if !canTransition(from, to) {
		// Unreachable through the public API.
		panic(fmt.Sprintf("contact: invalid status transition %s -> %s", from, to))
	}
	c.status = to
	c.message = msg
	if c.observer != nil {
		c.observer(from, to)
	}
}

func (c *Controller) scheduleResetLocked() {
	c.stopResetLocked()
	var timer *time.Timer
	timer = time.AfterFunc(c.window, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.resetTimer != timer {
			return
		}
		c.resetTimer = nil
		c.setStatusLocked(StatusIdle, "")
	})
	c.resetTimer = timer
}

func (c *Controller) stopResetLocked() {
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}
