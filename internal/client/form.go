package client

import (
	"context"
	"errors"
	"sync"
	"time"
)

type FormState string

const (
	FormIdle       FormState = "idle"
	FormSubmitting FormState = "submitting"
	FormSuccess    FormState = "success"
	FormError      FormState = "error"
)

// DefaultResetDelay is how long the success confirmation stays up.
const DefaultResetDelay = 3 * time.Second

var ErrSubmitInFlight = errors.New("client: a submission is already in flight")

type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// ContactForm is the public contact form. Only one submission can be in flight;
// a failed submission keeps the entered values so the visitor can retry.
type ContactForm struct {
	api        Submitter
	notify     Notifier
	resetDelay time.Duration

	mu     sync.Mutex
	state  FormState
	fields Submission
	reset  *time.Timer
}

func NewContactForm(api Submitter, notify Notifier, resetDelay time.Duration) (*ContactForm, error) {
	if api == nil {
		return nil, errors.New("client: submitter must not be nil")
	}
	if notify == nil {
		return nil, errors.New("client: notifier must not be nil")
	}
	if resetDelay <= 0 {
		resetDelay = DefaultResetDelay
	}
	return &ContactForm{api: api, notify: notify, resetDelay: resetDelay, state: FormIdle}, nil
}

func (f *ContactForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *ContactForm) Fields() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SetFields replaces the entered values.
func (f *ContactForm) SetFields(s Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = s
}

// Submit sends the current values. On success the fields are cleared and the
// form returns to idle after the reset delay; on failure it returns to idle at
// once with the values intact.
func (f *ContactForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == FormSubmitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	if f.reset != nil {
		f.reset.Stop()
		f.reset = nil
	}
	f.state = FormSubmitting
	payload := f.fields
	f.mu.Unlock()

	err := f.api.Submit(ctx, payload)
	if err != nil {
		f.setState(FormError)
		var statusErr *HTTPStatusError
		if errors.As(err, &statusErr) {
			f.notify.Error("Oops!", "Failed to send your message. Please try again later.")
		} else {
			f.notify.Error("Server Error!", "Something went wrong while sending your message.")
		}
		f.setState(FormIdle)
		return err
	}

	f.mu.Lock()
	f.state = FormSuccess
	f.fields = Submission{}
	f.reset = time.AfterFunc(f.resetDelay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.state == FormSuccess {
			f.state = FormIdle
		}
	})
	f.mu.Unlock()

	f.notify.Success("Message Sent!", "Thank you for reaching out.")
	return nil
}

func (f *ContactForm) setState(s FormState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = s
}
