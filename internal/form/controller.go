package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/denischpt/portfolio/internal/api/validation"
	"github.com/denischpt/portfolio/internal/i18n"
	"github.com/denischpt/portfolio/internal/models"

	"golang.org/x/text/language"
)

// DefaultResetDelay is how long the success state is shown
const DefaultResetDelay = 3 * time.Second

var (
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrClosed           = errors.New("form controller closed")
)

// Sender delivers one submission. The transport client implements it.
type Sender interface {
	Send(ctx context.Context, sub models.ContactSubmission) error
}

// Options configures a Controller
type Options struct {
	// ResetDelay applies to both the field reset and the success flag
	ResetDelay time.Duration
	// KeepFieldsAfterSuccess leaves the submitted values in place
	KeepFieldsAfterSuccess bool
	// Language of validation messages stored in LastError
	Language  language.Tag
	OnSuccess func()
	OnError   func(err error)
}

// State is a snapshot of one form session
type State struct {
	Fields       models.ContactSubmission
	IsSubmitting bool
	IsSuccess    bool
	LastError    string
}

// Controller owns the state of a single contact form. Methods are safe to
// call from several goroutines, but the state belongs to one form view.
type Controller struct {
	mu      sync.Mutex
	sender  Sender
	initial models.ContactSubmission
	opts    Options
	state   State
	timer   *time.Timer
	gen     uint64
	closed  bool
}

// NewController creates the session for one mounted form
func NewController(sender Sender, initial models.ContactSubmission, opts Options) *Controller {
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultResetDelay
	}
	if opts.Language == language.Und {
		opts.Language = i18n.DefaultTag
	}
	return &Controller{
		sender:  sender,
		initial: initial,
		opts:    opts,
		state:   State{Fields: initial},
	}
}

// Set updates one draft field. It reports false for unknown fields.
func (c *Controller) Set(field models.Field, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Fields.Set(field, value)
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit validates the current fields and hands them to the sender, once.
// On failure the fields are left untouched and the user-facing message is
// stored in LastError. IsSubmitting is cleared on every path.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state.IsSubmitting {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}
	c.stopTimerLocked()
	c.state.IsSubmitting = true
	c.state.IsSuccess = false
	c.state.LastError = ""
	values := c.state.Fields
	c.mu.Unlock()

	err := c.send(ctx, values)

	c.mu.Lock()
	c.state.IsSubmitting = false
	if err != nil {
		c.state.LastError = c.message(err)
		c.mu.Unlock()
		if c.opts.OnError != nil {
			c.opts.OnError(err)
		}
		return err
	}

	c.state.IsSuccess = true
	if !c.closed {
		c.scheduleResetLocked()
	}
	c.mu.Unlock()

	if c.opts.OnSuccess != nil {
		c.opts.OnSuccess()
	}
	return nil
}

func (c *Controller) send(ctx context.Context, values models.ContactSubmission) error {
	if verr := validation.Validate(values); verr != nil {
		return verr
	}
	return c.sender.Send(ctx, values)
}

func (c *Controller) message(err error) string {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return i18n.Text(c.opts.Language, verr.Key)
	}
	return err.Error()
}

// Reset restores the initial values and clears success and error state
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
	c.state.Fields = c.initial
	c.state.IsSuccess = false
	c.state.LastError = ""
}

// Close cancels any pending reset. The form must not be submitted again.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
	c.closed = true
}

func (c *Controller) scheduleResetLocked() {
	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(c.opts.ResetDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// A later submit, reset or close supersedes this timer
		if gen != c.gen || c.closed {
			return
		}
		if !c.opts.KeepFieldsAfterSuccess {
			c.state.Fields = c.initial
		}
		c.state.IsSuccess = false
		c.timer = nil
	})
}

func (c *Controller) stopTimerLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
