package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/folio/backend/pkg/contactform"
)

// Status is a step of the form lifecycle.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const (
	// ResetDelay is how long success and error stay visible before idle.
	ResetDelay = 5 * time.Second

	MsgSentFallback   = "Message sent successfully!"
	MsgFailedFallback = "Failed to send message. Please try again."
)

var (
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrControllerClosed = errors.New("controller is closed")
)

// State is what the form displays.
type State struct {
	Status  Status
	Message string
}

// Submitter sends one candidate. *Client implements it.
type Submitter interface {
	Submit(ctx context.Context, c contactform.Candidate) (*SubmitResponse, error)
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Controller owns the transient form fields and the idle → sending →
// success/error → idle loop. Safe for concurrent use.
type Controller struct {
	api       Submitter
	scheduler Scheduler
	delay     time.Duration
	precheck  *contactform.Validator
	onChange  func(State)

	mu     sync.Mutex
	fields contactform.Candidate
	state  State
	gen    uint64
	timer  Timer
	closed bool
}

type ControllerOption func(*Controller)

// WithScheduler replaces the timer source used for the auto reset.
func WithScheduler(s Scheduler) ControllerOption {
	return func(c *Controller) { c.scheduler = s }
}

// WithResetDelay overrides ResetDelay.
func WithResetDelay(d time.Duration) ControllerOption {
	return func(c *Controller) { c.delay = d }
}

// WithPreCheck sets the validator run before a submission leaves idle.
// A nil validator disables the pre-check.
func WithPreCheck(v *contactform.Validator) ControllerOption {
	return func(c *Controller) { c.precheck = v }
}

// WithOnChange registers an observer called after every state change.
func WithOnChange(fn func(State)) ControllerOption {
	return func(c *Controller) { c.onChange = fn }
}

func NewController(api Submitter, opts ...ControllerOption) *Controller {
	c := &Controller{
		api:       api,
		scheduler: realScheduler{},
		delay:     ResetDelay,
		precheck:  contactform.Client,
		state:     State{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetField updates one form field.
func (c *Controller) SetField(f contactform.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch f {
	case contactform.FieldName:
		c.fields.Name = value
	case contactform.FieldEmail:
		c.fields.Email = value
	case contactform.FieldMessage:
		c.fields.Message = value
	default:
		return fmt.Errorf("unknown field %q", f)
	}
	return nil
}

func (c *Controller) Fields() contactform.Candidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit sends the current fields and blocks until the terminal state is
// reached. A failing pre-check returns a *contactform.InvalidError and
// leaves the state untouched. The returned error is the request error, if
// any; the displayed message is always available via State.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if c.state.Status == StatusSending {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}
	if c.precheck != nil {
		if err := c.precheck.Validate(c.fields).Err(); err != nil {
			c.mu.Unlock()
			return err
		}
	}
	c.stopTimerLocked()
	c.gen++
	c.state = State{Status: StatusSending}
	cand := c.fields
	sending := c.state
	c.mu.Unlock()
	c.notify(sending)

	resp, err := c.api.Submit(ctx, cand)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return err
	}
	if err == nil {
		c.fields = contactform.Candidate{}
		c.state = State{Status: StatusSuccess, Message: MsgSentFallback}
		if resp != nil && resp.Message != "" {
			c.state.Message = resp.Message
		}
	} else {
		c.state = State{Status: StatusError, Message: MsgFailedFallback}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			c.state.Message = apiErr.Message
		}
	}
	c.gen++
	gen := c.gen
	c.timer = c.scheduler.AfterFunc(c.delay, func() { c.reset(gen) })
	terminal := c.state
	c.mu.Unlock()
	c.notify(terminal)
	return err
}

// Close cancels a pending reset. Later submissions fail with
// ErrControllerClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.gen++
	c.stopTimerLocked()
}

func (c *Controller) reset(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.state = State{Status: StatusIdle}
	idle := c.state
	c.mu.Unlock()
	c.notify(idle)
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}
