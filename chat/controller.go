package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// GenericErrorMessage is shown when a question fails for a reason other than
// an error reported by the backend.
const GenericErrorMessage = "Oops! Something went wrong. Please try again."

var (
	// ErrEmptyQuestion is returned by Controller.Submit when the input is
	// empty or contains only whitespace.
	ErrEmptyQuestion = errors.New("the question is empty")

	// ErrBusy is returned by Controller.Submit when a previous question has not
	// been answered yet.
	ErrBusy = errors.New("a question is already being answered")
)

// State is the state of a Controller.
type State int

const (
	// Idle means the controller is ready to accept a question.
	Idle State = iota

	// Sending means a question has been sent and the controller is waiting
	// for the answer.
	Sending
)

func (s State) String() string {
	if s == Sending {
		return "sending"
	}
	return "idle"
}

// Controller implements the chat behavior on top of an Asker and a View. It
// owns the conversation log.
type Controller struct {
	Asker  Asker
	View   View
	Logger *log.Logger

	log Log

	m        sync.Mutex
	inFlight uuid.UUID
}

// Log returns the conversation log.
func (c *Controller) Log() *Log {
	return &c.log
}

// State returns the current state of the controller.
func (c *Controller) State() State {
	c.m.Lock()
	defer c.m.Unlock()

	if c.inFlight == uuid.Nil {
		return Idle
	}
	return Sending
}

// Submit asks the question in input.
//
// Empty input is ignored and ErrEmptyQuestion is returned. If a question is
// already in flight, the input is ignored and ErrBusy is returned. Otherwise
// the question is appended to the log and sent, and the answer is appended
// when it arrives. If the question fails the view shows an error and the error
// is returned.
func (c *Controller) Submit(ctx context.Context, input string) error {
	question := strings.TrimSpace(input)
	if question == "" {
		return ErrEmptyQuestion
	}

	token, ok := c.begin()
	if !ok {
		return ErrBusy
	}
	defer c.end(token)

	view := c.view()

	view.TurnAppended(c.log.AppendTurn(User, question))
	view.ClearInput()
	view.SetBusy(true)
	view.ClearError()

	answer, err := c.Asker.Ask(ctx, question)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Printf("chat: can not answer %q: %s", question, err)
		}
		view.ShowError(errorMessage(err))
	} else {
		view.TurnAppended(c.log.AppendTurn(Bot, answer))
		view.ClearError()
	}

	view.SetBusy(false)
	view.Focus()

	return err
}

func (c *Controller) begin() (uuid.UUID, bool) {
	c.m.Lock()
	defer c.m.Unlock()

	if c.inFlight != uuid.Nil {
		return uuid.Nil, false
	}

	c.inFlight = uuid.New()
	return c.inFlight, true
}

func (c *Controller) end(token uuid.UUID) {
	c.m.Lock()
	defer c.m.Unlock()

	if c.inFlight == token {
		c.inFlight = uuid.Nil
	}
}

func (c *Controller) view() View {
	if c.View == nil {
		return nopView{}
	}
	return c.View
}

// errorMessage returns the message shown to the user when err prevents a
// question from being answered.
func errorMessage(err error) string {
	var backendErr *BackendError
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message
	}
	return GenericErrorMessage
}
