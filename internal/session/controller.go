package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spinfactor/spinbot/internal/domain"
)

// Apology texts appended to a thread when a remote call fails. The
// session stays usable; the fault itself is never surfaced.
const (
	sectionApology  = "Ops! Non riesco a recuperare il contenuto al momento."
	questionApology = "Errore temporaneo. Riprova tra poco 🙏"
)

// ContactSection is the section auto-selected after an escalation.
const ContactSection = "contatti"

// Client is the remote API surface the controller drives. Implemented
// by the HTTP client; faked in tests.
type Client interface {
	GetSection(ctx context.Context, id string) (domain.Section, error)
	Ask(ctx context.Context, question, activeSection string) (answer string, escalate bool, err error)
	SubmitContact(ctx context.Context, sub domain.ContactSubmission) error
}

// ContactState enumerates the contact-form lifecycle.
type ContactState int

const (
	ContactIdle ContactState = iota
	ContactSending
	ContactOK
	ContactError
)

// ContactStatus is consumed only by the contact-form presentation; it
// is never mixed into a thread.
type ContactStatus struct {
	State   ContactState
	Message string
}

// Controller orchestrates user actions against the session, the store
// and the remote API. It is intended for a single cooperative event
// timeline: the busy flag is an advisory debounce for duplicate section
// activation, not a mutual-exclusion lock, so rapid concurrent submits
// remain a known race (kept deliberately, matching the original client).
type Controller struct {
	api     Client
	store   Store
	session *Session
	contact ContactStatus
}

// NewController restores the session from store and wires the remote
// client. A store that cannot be read starts the session empty rather
// than failing.
func NewController(api Client, store Store) *Controller {
	threads, err := store.Load()
	if err != nil {
		slog.Warn("Profile store unreadable, starting empty", "error", err)
		threads = make(Threads)
	}
	return &Controller{
		api:     api,
		store:   store,
		session: NewSession(threads),
	}
}

// Session exposes the live session for rendering. Callers must not
// mutate it.
func (c *Controller) Session() *Session {
	return c.session
}

// ContactStatus returns the current contact-form status.
func (c *Controller) ContactStatus() ContactStatus {
	return c.contact
}

// SelectSection activates a section: it fetches the content and seeds
// the thread's starter message on first activation. Re-selecting the
// already-active section while a call is in flight is ignored. The
// returned section is zero-valued when the fetch failed; the thread
// then carries an apology instead.
func (c *Controller) SelectSection(ctx context.Context, id string) domain.Section {
	if c.session.Busy && c.session.ActiveSection == id {
		return domain.Section{}
	}

	c.session.Busy = true
	c.session.ActiveSection = id
	defer func() { c.session.Busy = false }()

	section, err := c.api.GetSection(ctx, id)
	if err != nil {
		c.session.Append(id, domain.Message{Role: domain.RoleAssistant, Text: sectionApology})
		c.persist()
		return domain.Section{}
	}

	c.session.EnsureStarter(id, section.Description)
	c.persist()
	return section
}

// SendQuestion sends free text to the dialogue endpoint. The user
// message is appended (and persisted) before the network call, so it
// survives a failed call. The answer lands in the thread key captured
// before the call, even if the active section changed mid-flight. An
// escalation signal auto-selects the contact section.
func (c *Controller) SendQuestion(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	key := c.session.ActiveThreadKey()
	c.session.Append(key, domain.Message{Role: domain.RoleUser, Text: text})
	c.session.PendingInput = ""
	c.persist()

	c.session.Busy = true
	answer, escalate, err := c.api.Ask(ctx, text, c.session.ActiveSection)
	if err != nil {
		c.session.Append(key, domain.Message{Role: domain.RoleAssistant, Text: questionApology})
		c.persist()
		c.session.Busy = false
		return
	}

	c.session.Append(key, domain.Message{Role: domain.RoleAssistant, Text: answer})
	c.persist()
	c.session.Busy = false

	if escalate {
		c.SelectSection(ctx, ContactSection)
	}
}

// SubmitContact drives the contact form. It is independent of the
// thread mechanism: outcomes land in ContactStatus only.
func (c *Controller) SubmitContact(ctx context.Context, sub domain.ContactSubmission) {
	c.contact = ContactStatus{State: ContactSending}

	if err := c.api.SubmitContact(ctx, sub); err != nil {
		c.contact = ContactStatus{State: ContactError, Message: err.Error()}
		return
	}
	c.contact = ContactStatus{State: ContactOK}
}

// persist mirrors the session threads to durable storage. Storage
// failures are logged and otherwise ignored: losing persistence must
// not break the live conversation.
func (c *Controller) persist() {
	if err := c.store.Save(c.session.Threads); err != nil {
		slog.Warn("Failed to persist session", "error", err)
	}
}
