package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type contactMessage struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required"`
	Subject string `form:"subject" binding:"required"`
	Message string `form:"message" binding:"required"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateContact checks the form the same way on both ends of a
// submission. Lengths are in characters.
func validateContact(m contactMessage) error {
	var errs []error
	if utf8.RuneCountInString(m.Name) <= 2 {
		errs = append(errs, errors.New("name must be longer than 2 characters"))
	}
	if !emailPattern.MatchString(m.Email) {
		errs = append(errs, errors.New("email is not a valid address"))
	}
	if utf8.RuneCountInString(m.Subject) <= 5 {
		errs = append(errs, errors.New("subject must be longer than 5 characters"))
	}
	if utf8.RuneCountInString(m.Message) <= 10 {
		errs = append(errs, errors.New("message must be longer than 10 characters"))
	}
	return errors.Join(errs...)
}

type submitState int

const (
	submitIdle submitState = iota
	submitValidating
	submitInFlight
	submitResolved
)

func (s submitState) String() string {
	switch s {
	case submitValidating:
		return "validating"
	case submitInFlight:
		return "in-flight"
	case submitResolved:
		return "resolved"
	default:
		return "idle"
	}
}

const (
	fieldName = iota
	fieldEmail
	fieldSubject
	fieldMessage
	fieldCount
)

const (
	noteInvalidForm = "Please fill in every field correctly."
	noteSending     = "Sending message..."
	noteSent        = "Message sent! Thanks for reaching out."
	noteCopied      = "Email copied to clipboard!"
	noteCopyFailed  = "Could not copy email."
)

// contactManager owns the contact form, its submission and the copy-email
// action.
type contactManager struct {
	inputs  [fieldMessage]textinput.Model
	message textarea.Model
	focus   int // -1 when the form is not focused

	submitter submitter
	timeout   time.Duration
	email     string
	notes     *notificationSlot
	state     submitState
	gen       int
	lastErr   error
	log       *slog.Logger

	writeClipboard func(string) error
}

func newContactManager(doc *document, sub submitter, timeout time.Duration, email string, log *slog.Logger) *contactManager {
	c := &contactManager{
		focus:          -1,
		submitter:      sub,
		timeout:        timeout,
		email:          email,
		notes:          doc.notes,
		log:            log,
		writeClipboard: clipboard.WriteAll,
	}
	placeholders := [fieldMessage]string{"Your name", "you@example.com", "Subject"}
	for i := range c.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.Width = 40
		c.inputs[i] = ti
	}
	ta := textarea.New()
	ta.Placeholder = "Your message"
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetWidth(48)
	ta.SetHeight(5)
	c.message = ta
	return c
}

func (c *contactManager) bind(d *dispatcher) {
	on(d, func(msg focusFormMsg) tea.Cmd { return c.focusField(msg.field) })
	on(d, func(blurFormMsg) tea.Cmd {
		c.blur()
		return nil
	})
	on(d, func(msg formNavMsg) tea.Cmd {
		next := (c.focus + msg.delta + fieldCount) % fieldCount
		if c.focus < 0 {
			next = fieldName
		}
		return c.focusField(next)
	})
	on(d, func(msg formKeyMsg) tea.Cmd { return c.updateField(msg.key) })
	on(d, func(submitContactMsg) tea.Cmd { return c.handleSubmit() })
	on(d, func(msg contactResultMsg) tea.Cmd { return c.handleResult(msg) })
	on(d, func(copyEmailMsg) tea.Cmd { return c.copyEmail() })
	on(d, func(msg emailCopiedMsg) tea.Cmd {
		if msg.err != nil {
			c.log.Warn("copy email", "err", msg.err)
			return c.showNotification(noteCopyFailed, severityError)
		}
		return c.showNotification(noteCopied, severitySuccess)
	})
	on(d, func(msg resizeMsg) tea.Cmd {
		w := min(max(msg.width-16, 20), 60)
		for i := range c.inputs {
			c.inputs[i].Width = w
		}
		c.message.SetWidth(w + 2)
		return nil
	})
}

func (c *contactManager) focused() bool { return c.focus >= 0 }

func (c *contactManager) focusField(i int) tea.Cmd {
	c.blur()
	c.focus = i
	if i == fieldMessage {
		return c.message.Focus()
	}
	return c.inputs[i].Focus()
}

func (c *contactManager) blur() {
	for i := range c.inputs {
		c.inputs[i].Blur()
	}
	c.message.Blur()
	c.focus = -1
}

func (c *contactManager) updateField(k tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case c.focus == fieldMessage:
		c.message, cmd = c.message.Update(k)
	case c.focus >= 0:
		c.inputs[c.focus], cmd = c.inputs[c.focus].Update(k)
	}
	return cmd
}

func (c *contactManager) values() contactMessage {
	return contactMessage{
		Name:    c.inputs[fieldName].Value(),
		Email:   c.inputs[fieldEmail].Value(),
		Subject: c.inputs[fieldSubject].Value(),
		Message: c.message.Value(),
	}
}

func (c *contactManager) reset() {
	for i := range c.inputs {
		c.inputs[i].Reset()
	}
	c.message.Reset()
}

// handleSubmit validates the form and, when valid, starts the submission.
// Invalid input shows one error notification and submits nothing. Submits
// while one is in flight are ignored.
func (c *contactManager) handleSubmit() tea.Cmd {
	if c.state == submitInFlight {
		return nil
	}
	c.state = submitValidating
	msg := c.values()
	if err := validateContact(msg); err != nil {
		c.state = submitIdle
		c.log.Debug("contact form invalid", "err", err)
		return c.showNotification(noteInvalidForm, severityError)
	}
	c.state = submitInFlight
	c.gen++
	return tea.Batch(
		c.showNotification(noteSending, severityInfo),
		c.submitCmd(msg, c.gen),
	)
}

func (c *contactManager) submitCmd(msg contactMessage, gen int) tea.Cmd {
	sub, timeout := c.submitter, c.timeout
	return func() tea.Msg {
		if sub == nil {
			return contactResultMsg{gen: gen, err: errors.New("no contact transport configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return contactResultMsg{gen: gen, err: sub.Submit(ctx, msg)}
	}
}

func (c *contactManager) handleResult(msg contactResultMsg) tea.Cmd {
	if msg.gen != c.gen || c.state != submitInFlight {
		return nil
	}
	c.state = submitResolved
	c.lastErr = msg.err
	if msg.err != nil {
		c.log.Error("contact submit", "err", msg.err)
		return c.showNotification(fmt.Sprintf("Could not send message: %v", msg.err), severityError)
	}
	c.log.Info("contact submitted")
	c.reset()
	return c.showNotification(noteSent, severitySuccess)
}

// copyEmail writes the owner's address to the system clipboard.
func (c *contactManager) copyEmail() tea.Cmd {
	write, email := c.writeClipboard, c.email
	return func() tea.Msg {
		if email == "" {
			return emailCopiedMsg{err: errors.New("no email address configured")}
		}
		return emailCopiedMsg{err: write(email)}
	}
}

func (c *contactManager) showNotification(text string, sev severity) tea.Cmd {
	return c.notes.show(text, sev)
}
