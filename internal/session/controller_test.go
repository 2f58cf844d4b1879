package session

import (
	"context"
	"errors"
	"testing"

	"github.com/spinfactor/spinbot/internal/catalog"
	"github.com/spinfactor/spinbot/internal/dialogue"
	"github.com/spinfactor/spinbot/internal/domain"
)

// fakeClient serves catalog content locally and routes questions with a
// real dialogue router, mimicking the server without a network.
type fakeClient struct {
	catalog     *catalog.Catalog
	router      *dialogue.Router
	sectionErr  error
	askErr      error
	contactErr  error
	askCalls    int
	contactSubs []domain.ContactSubmission
}

func newFakeClient() *fakeClient {
	c := catalog.New()
	return &fakeClient{catalog: c, router: dialogue.New(c)}
}

func (f *fakeClient) GetSection(_ context.Context, id string) (domain.Section, error) {
	if f.sectionErr != nil {
		return domain.Section{}, f.sectionErr
	}
	return f.catalog.Resolve(id)
}

func (f *fakeClient) Ask(_ context.Context, question, activeSection string) (string, bool, error) {
	f.askCalls++
	if f.askErr != nil {
		return "", false, f.askErr
	}
	reply := f.router.Route(question, activeSection)
	return reply.Answer, reply.Escalate, nil
}

func (f *fakeClient) SubmitContact(_ context.Context, sub domain.ContactSubmission) error {
	if f.contactErr != nil {
		return f.contactErr
	}
	f.contactSubs = append(f.contactSubs, sub)
	return nil
}

func inEscalationPool(text string) bool {
	for _, reply := range dialogue.EscalationReplies {
		if text == reply {
			return true
		}
	}
	return false
}

func TestSelectSectionSeedsStarterOnce(t *testing.T) {
	ctrl := NewController(newFakeClient(), NewMemoryStore())
	ctx := context.Background()

	ctrl.SelectSection(ctx, "tiberio")
	thread := ctrl.Session().Thread("tiberio")
	if len(thread) != 1 {
		t.Fatalf("thread has %d messages after first activation, want 1", len(thread))
	}
	if thread[0].Role != domain.RoleAssistant {
		t.Errorf("starter role = %q, want assistant", thread[0].Role)
	}

	// Visiting another section and coming back must not re-seed.
	ctrl.SelectSection(ctx, "siamo")
	ctrl.SelectSection(ctx, "tiberio")
	if got := len(ctrl.Session().Thread("tiberio")); got != 1 {
		t.Errorf("thread has %d messages after revisit, want 1", got)
	}
}

func TestSelectSectionBusyDebounce(t *testing.T) {
	ctrl := NewController(newFakeClient(), NewMemoryStore())
	ctx := context.Background()

	ctrl.SelectSection(ctx, "siamo")

	// Simulate a reselect arriving while the same section is in flight.
	ctrl.Session().Busy = true
	ctrl.SelectSection(ctx, "siamo")
	ctrl.Session().Busy = false

	if got := len(ctrl.Session().Thread("siamo")); got != 1 {
		t.Errorf("thread has %d messages, want 1 (debounced reselect must be a no-op)", got)
	}
}

func TestSelectSectionFailureAppendsApology(t *testing.T) {
	client := newFakeClient()
	client.sectionErr = errors.New("network down")
	ctrl := NewController(client, NewMemoryStore())

	ctrl.SelectSection(context.Background(), "diciamo")

	thread := ctrl.Session().Thread("diciamo")
	if len(thread) != 1 {
		t.Fatalf("thread has %d messages, want 1 apology", len(thread))
	}
	if thread[0].Text != sectionApology {
		t.Errorf("message = %q, want apology", thread[0].Text)
	}
	if ctrl.Session().Busy {
		t.Error("busy flag still set after failure")
	}
}

func TestSendQuestionEmptyIgnored(t *testing.T) {
	client := newFakeClient()
	ctrl := NewController(client, NewMemoryStore())

	ctrl.SendQuestion(context.Background(), "   \t ")

	if client.askCalls != 0 {
		t.Error("empty question reached the API")
	}
	if got := len(ctrl.Session().Thread(domain.GeneralThread)); got != 0 {
		t.Errorf("general thread has %d messages, want 0", got)
	}
}

func TestSendQuestionGeneralThread(t *testing.T) {
	ctrl := NewController(newFakeClient(), NewMemoryStore())

	ctrl.SendQuestion(context.Background(), "ciao")

	thread := ctrl.Session().Thread(domain.GeneralThread)
	if len(thread) != 2 {
		t.Fatalf("general thread has %d messages, want user+assistant", len(thread))
	}
	if thread[0].Role != domain.RoleUser || thread[0].Text != "ciao" {
		t.Errorf("first message = %+v, want user question", thread[0])
	}
	if thread[1].Role != domain.RoleAssistant {
		t.Errorf("second message role = %q, want assistant", thread[1].Role)
	}
}

func TestSendQuestionFailureAppendsApology(t *testing.T) {
	client := newFakeClient()
	client.askErr = errors.New("boom")
	ctrl := NewController(client, NewMemoryStore())

	ctrl.SendQuestion(context.Background(), "domanda")

	thread := ctrl.Session().Thread(domain.GeneralThread)
	if len(thread) != 2 {
		t.Fatalf("thread has %d messages, want user+apology", len(thread))
	}
	// The user message survives the failed call.
	if thread[0].Role != domain.RoleUser {
		t.Errorf("first message role = %q, want user", thread[0].Role)
	}
	if thread[1].Text != questionApology {
		t.Errorf("second message = %q, want apology", thread[1].Text)
	}
	if ctrl.Session().Busy {
		t.Error("busy flag still set after failure")
	}
}

func TestEscalationScenario(t *testing.T) {
	// Select tiberio, ask a pricing question, end up on contatti with
	// its own seeded thread.
	ctrl := NewController(newFakeClient(), NewMemoryStore())
	ctx := context.Background()

	ctrl.SelectSection(ctx, "tiberio")
	if got := len(ctrl.Session().Thread("tiberio")); got != 1 {
		t.Fatalf("tiberio thread has %d messages, want 1 starter", got)
	}

	ctrl.SendQuestion(ctx, "quanto costa?")

	thread := ctrl.Session().Thread("tiberio")
	if len(thread) != 3 {
		t.Fatalf("tiberio thread has %d messages, want starter+user+assistant", len(thread))
	}
	if thread[1].Role != domain.RoleUser || thread[1].Text != "quanto costa?" {
		t.Errorf("user message = %+v", thread[1])
	}
	if !inEscalationPool(thread[2].Text) {
		t.Errorf("assistant reply %q not from escalation pool", thread[2].Text)
	}

	if ctrl.Session().ActiveSection != ContactSection {
		t.Errorf("active section = %q, want %q", ctrl.Session().ActiveSection, ContactSection)
	}
	contattiThread := ctrl.Session().Thread(ContactSection)
	if len(contattiThread) != 1 {
		t.Fatalf("contatti thread has %d messages, want 1 starter", len(contattiThread))
	}
	if contattiThread[0].Role != domain.RoleAssistant {
		t.Errorf("contatti starter role = %q, want assistant", contattiThread[0].Role)
	}
}

func TestThreadsAreIndependent(t *testing.T) {
	ctrl := NewController(newFakeClient(), NewMemoryStore())
	ctx := context.Background()

	ctrl.SelectSection(ctx, "siamo")
	ctrl.SendQuestion(ctx, "chi siete?")
	ctrl.SelectSection(ctx, "facciamo")
	ctrl.SendQuestion(ctx, "cosa fate?")

	siamo := ctrl.Session().Thread("siamo")
	for _, msg := range siamo {
		if msg.Text == "cosa fate?" {
			t.Error("message sent under facciamo leaked into siamo")
		}
	}
	if got := len(siamo); got != 3 {
		t.Errorf("siamo thread has %d messages, want 3", got)
	}
	if got := len(ctrl.Session().Thread("facciamo")); got != 3 {
		t.Errorf("facciamo thread has %d messages, want 3", got)
	}
}

func TestSessionPersistsAcrossControllers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := NewController(newFakeClient(), store)
	first.SelectSection(ctx, "tiberio")
	first.SendQuestion(ctx, "come funziona?")

	second := NewController(newFakeClient(), store)
	thread := second.Session().Thread("tiberio")
	if len(thread) != 3 {
		t.Fatalf("restored thread has %d messages, want 3", len(thread))
	}

	// The restored thread must keep its starter: re-activating must
	// not seed a duplicate.
	second.SelectSection(ctx, "tiberio")
	if got := len(second.Session().Thread("tiberio")); got != 3 {
		t.Errorf("thread has %d messages after re-activation, want 3", got)
	}
}

func TestSubmitContactStatus(t *testing.T) {
	client := newFakeClient()
	ctrl := NewController(client, NewMemoryStore())
	ctx := context.Background()

	if ctrl.ContactStatus().State != ContactIdle {
		t.Errorf("initial state = %v, want idle", ctrl.ContactStatus().State)
	}

	ctrl.SubmitContact(ctx, domain.ContactSubmission{Email: "a@b.it", Message: "ciao"})
	if ctrl.ContactStatus().State != ContactOK {
		t.Errorf("state = %v, want ok", ctrl.ContactStatus().State)
	}
	if len(client.contactSubs) != 1 {
		t.Errorf("submissions = %d, want 1", len(client.contactSubs))
	}

	client.contactErr = errors.New("delivery failed")
	ctrl.SubmitContact(ctx, domain.ContactSubmission{Email: "a@b.it", Message: "ciao"})
	status := ctrl.ContactStatus()
	if status.State != ContactError {
		t.Errorf("state = %v, want error", status.State)
	}
	if status.Message == "" {
		t.Error("error status carries no message")
	}

	// Contact outcomes never land in threads.
	if got := len(ctrl.Session().Thread(domain.GeneralThread)); got != 0 {
		t.Errorf("general thread has %d messages, want 0", got)
	}
}
