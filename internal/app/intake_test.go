package app_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"pytech_site/internal/app"
	"pytech_site/internal/domain"
)

// callLog records the order in which the sinks were reached.
type callLog struct {
	mu  sync.Mutex
	seq []string
}

func (l *callLog) add(name string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.seq = append(l.seq, name)
	l.mu.Unlock()
}

func (l *callLog) calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.seq...)
}

type recSink struct {
	mu    sync.Mutex
	err   error
	log   *callLog
	texts []string
}

func (s *recSink) HandOff(text string) (string, error) {
	s.log.add("handoff")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	if s.err != nil {
		return "", s.err
	}
	return "https://wa.me/919205222170?text=" + strings.ReplaceAll(text, " ", "%20"), nil
}

func (s *recSink) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.texts)
}

type recStore struct {
	mu      sync.Mutex
	err     error
	block   chan struct{} // when set, SaveEnquiry waits on it
	entered chan struct{}
	log     *callLog
	saved   []domain.Enquiry
}

func (s *recStore) SaveEnquiry(ctx context.Context, e domain.Enquiry) error {
	s.log.add("save")
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, e)
	return nil
}

func validLead() domain.Enquiry {
	return domain.Enquiry{
		Name:    " Asha Rao ",
		Email:   "Asha@Example.com",
		Phone:   "+91 98100 00000",
		City:    "Delhi",
		Service: "Website Design",
		Message: "Need a new site",
	}
}

func TestSubmit_EmptyNameContactsNoSink(t *testing.T) {
	sink, store := &recSink{}, &recStore{}
	in := app.NewIntake(sink, store, "PyTech Digital")

	e := validLead()
	e.Name = "   "
	out, err := in.Submit(context.Background(), "contact", e)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.State != app.StateInvalid || out.FieldErrors["name"] == "" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if out.ClearForm {
		t.Fatalf("invalid submission must keep the form")
	}
	if st := in.State("contact"); st != app.StateInvalid {
		t.Fatalf("form state: %s", st)
	}
	if sink.calls() != 0 || len(store.saved) != 0 {
		t.Fatalf("no sink should be contacted")
	}
}

func TestSubmit_OverLongFieldsRejectedBeforeHandOff(t *testing.T) {
	sink, store := &recSink{}, &recStore{}
	in := app.NewIntake(sink, store, "PyTech Digital")

	e := validLead()
	e.Name = strings.Repeat("a", 256)
	e.Phone = strings.Repeat("9", 65)
	e.Message = strings.Repeat("m", 5001)
	out, _ := in.Submit(context.Background(), "contact", e)
	if out.State != app.StateInvalid {
		t.Fatalf("expected invalid, got %+v", out)
	}
	for _, f := range []string{"name", "phone", "message"} {
		if !strings.HasPrefix(out.FieldErrors[f], "must be at most") {
			t.Fatalf("%s: %q", f, out.FieldErrors[f])
		}
	}
	if sink.calls() != 0 || len(store.saved) != 0 {
		t.Fatalf("no sink should be contacted")
	}

	// multi-byte names are measured in characters, like the column
	e = validLead()
	e.Name = strings.Repeat("अ", 255)
	if out, _ := in.Submit(context.Background(), "contact", e); out.State != app.StateSucceeded {
		t.Fatalf("255-character name should pass: %+v", out)
	}
}

func TestSubmit_BadEmail(t *testing.T) {
	in := app.NewIntake(&recSink{}, &recStore{}, "PyTech Digital")
	e := validLead()
	e.Email = "not-an-email"
	out, _ := in.Submit(context.Background(), "", e)
	if out.State != app.StateInvalid || out.FieldErrors["email"] != "must be a valid email address" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestSubmit_MessageOptional(t *testing.T) {
	in := app.NewIntake(&recSink{}, &recStore{}, "PyTech Digital")
	e := validLead()
	e.Message = ""
	if out, _ := in.Submit(context.Background(), "", e); out.State != app.StateSucceeded {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestSubmit_Succeeded(t *testing.T) {
	sink, store := &recSink{}, &recStore{}
	in := app.NewIntake(sink, store, "PyTech Digital")

	out, err := in.Submit(context.Background(), "contact", validLead())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.State != app.StateSucceeded || !out.ClearForm || out.HandOffURL == "" || out.EnquiryID == "" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one stored enquiry, got %d", len(store.saved))
	}
	got := store.saved[0]
	if got.ID != out.EnquiryID || got.Name != "Asha Rao" || got.CreatedAt.IsZero() || got.CreatedAt.Location().String() != "UTC" {
		t.Fatalf("stored enquiry: %+v", got)
	}
	if !strings.HasPrefix(sink.texts[0], "*New Enquiry from PyTech Digital Website*") {
		t.Fatalf("hand-off text: %q", sink.texts[0])
	}
	if st := in.State("contact"); st != app.StateSucceeded {
		t.Fatalf("form should stay succeeded after completion, got %s", st)
	}
	if st := in.State("footer"); st != app.StateIdle {
		t.Fatalf("unsubmitted form should be idle, got %s", st)
	}
}

func TestSubmit_PersistFailureIsPartial(t *testing.T) {
	calls := &callLog{}
	sink := &recSink{log: calls}
	store := &recStore{err: errors.New("deadlock"), log: calls}
	in := app.NewIntake(sink, store, "PyTech Digital")

	out, err := in.Submit(context.Background(), "contact", validLead())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.State != app.StatePartiallyFailed {
		t.Fatalf("expected partially_failed, got %s", out.State)
	}
	if !out.ClearForm || out.HandOffURL == "" || out.PersistErr == nil {
		t.Fatalf("hand-off must stand when the store fails: %+v", out)
	}
	if got := calls.calls(); len(got) != 2 || got[0] != "handoff" || got[1] != "save" {
		t.Fatalf("expected hand-off before save, got %v", got)
	}
	if sink.calls() != 1 {
		t.Fatalf("expected exactly one hand-off, got %d", sink.calls())
	}
	if st := in.State("contact"); st != app.StatePartiallyFailed {
		t.Fatalf("form state after completion: %s", st)
	}

	// the next submission resets the form and runs again
	store.mu.Lock()
	store.err = nil
	store.mu.Unlock()
	if out, _ := in.Submit(context.Background(), "contact", validLead()); out.State != app.StateSucceeded {
		t.Fatalf("resubmit: %+v", out)
	}
	if st := in.State("contact"); st != app.StateSucceeded {
		t.Fatalf("form state after resubmit: %s", st)
	}
}

func TestSubmit_HandOffFailureSkipsStore(t *testing.T) {
	sink := &recSink{err: domain.ErrHandOffUnavailable}
	store := &recStore{}
	in := app.NewIntake(sink, store, "PyTech Digital")

	out, err := in.Submit(context.Background(), "contact", validLead())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.State != app.StateFailed || out.ClearForm || !errors.Is(out.HandOffErr, domain.ErrHandOffUnavailable) {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if len(store.saved) != 0 {
		t.Fatalf("store must not be contacted")
	}
	if st := in.State("contact"); st != app.StateFailed {
		t.Fatalf("form state after completion: %s", st)
	}
}

func TestSubmit_ReentrantSubmitRejected(t *testing.T) {
	store := &recStore{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	sink := &recSink{}
	in := app.NewIntake(sink, store, "PyTech Digital")

	done := make(chan app.Outcome, 1)
	go func() {
		out, _ := in.Submit(context.Background(), "contact", validLead())
		done <- out
	}()
	<-store.entered

	if in.State("contact") != app.StateSubmitting {
		t.Fatalf("expected submitting while in flight")
	}
	out, err := in.Submit(context.Background(), "contact", validLead())
	if !errors.Is(err, domain.ErrSubmissionInFlight) || out.State != app.StateSubmitting {
		t.Fatalf("expected in-flight rejection, got %+v %v", out, err)
	}

	if in.State("footer") != app.StateIdle {
		t.Fatalf("other forms are independent")
	}

	close(store.block)
	if first := <-done; first.State != app.StateSucceeded {
		t.Fatalf("first submission: %+v", first)
	}
	if sink.calls() != 1 {
		t.Fatalf("rejected submission must not reach the sink, got %d hand-offs", sink.calls())
	}
	if st := in.State("contact"); st != app.StateSucceeded {
		t.Fatalf("form state after completion: %s", st)
	}
}

func TestSubmit_DefaultFormKey(t *testing.T) {
	e := validLead()
	if got := app.FormKey(e); got != "asha@example.com|+91 98100 00000" {
		t.Fatalf("form key: %q", got)
	}
}

func TestFormatEnquiry(t *testing.T) {
	e := validLead()
	e.Name = "Asha Rao"
	got := app.FormatEnquiry("PyTech Digital", e)
	want := "*New Enquiry from PyTech Digital Website*\n\n" +
		"*Name:* Asha Rao\n" +
		"*Email:* Asha@Example.com\n" +
		"*Phone:* +91 98100 00000\n" +
		"*City:* Delhi\n" +
		"*Service Required:* Website Design\n" +
		"*Message:* Need a new site"
	if got != want {
		t.Fatalf("FormatEnquiry:\n%s\nwant:\n%s", got, want)
	}
}

func TestSubmitState_Text(t *testing.T) {
	b, err := app.StatePartiallyFailed.MarshalText()
	if err != nil || string(b) != "partially_failed" {
		t.Fatalf("MarshalText: %s %v", b, err)
	}
}
