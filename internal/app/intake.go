package app

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"pytech_site/internal/domain"
)

type SubmitState int

const (
	StateIdle SubmitState = iota
	StateSubmitting
	StateSucceeded
	StatePartiallyFailed
	StateFailed
	StateInvalid
)

func (s SubmitState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StatePartiallyFailed:
		return "partially_failed"
	case StateFailed:
		return "failed"
	case StateInvalid:
		return "invalid"
	}
	return "unknown"
}

func (s SubmitState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Outcome is what the form surface needs to render after a submission.
type Outcome struct {
	State       SubmitState        `json:"state"`
	EnquiryID   string             `json:"enquiry_id,omitempty"`
	HandOffURL  string             `json:"handoff_url,omitempty"`
	ClearForm   bool               `json:"clear_form"`
	FieldErrors domain.FieldErrors `json:"field_errors,omitempty"`

	HandOffErr error `json:"-"`
	PersistErr error `json:"-"`
}

// Intake is the lead intake pipeline: validate, hand the enquiry to the
// operator, then record it. At most one submission per form key is in flight,
// and each form keeps its last final state until it is submitted again.
type Intake struct {
	messaging domain.MessagingSink
	store     domain.EnquiryStore
	brand     string
	validate  *validator.Validate

	now   func() time.Time
	newID func() string

	mu     sync.Mutex
	states map[string]SubmitState // last known state per form key
}

func NewIntake(m domain.MessagingSink, s domain.EnquiryStore, brand string) *Intake {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Intake{
		messaging: m,
		store:     s,
		brand:     brand,
		validate:  v,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
		states:    map[string]SubmitState{},
	}
}

// Submit runs one submission for formID. An empty formID falls back to a key
// derived from the enquiry's email and phone. The only returned error is
// domain.ErrSubmissionInFlight; every other result is carried by Outcome.
func (p *Intake) Submit(ctx context.Context, formID string, e domain.Enquiry) (out Outcome, err error) {
	e = trimEnquiry(e)
	if formID == "" {
		formID = FormKey(e)
	}
	if !p.begin(formID) {
		return Outcome{State: StateSubmitting}, domain.ErrSubmissionInFlight
	}
	// a panic below leaves out zeroed, which resets the form to Idle
	defer func() { p.finish(formID, out.State) }()

	return p.run(ctx, e), nil
}

func (p *Intake) run(ctx context.Context, e domain.Enquiry) Outcome {
	if fe := p.Validate(e); len(fe) > 0 {
		return Outcome{State: StateInvalid, FieldErrors: fe}
	}

	// sink A: operator hand-off. Once built it counts as delivered.
	link, err := p.messaging.HandOff(FormatEnquiry(p.brand, e))
	if err != nil {
		return Outcome{State: StateFailed, HandOffErr: err}
	}

	e.ID = p.newID()
	e.CreatedAt = p.now().UTC()
	out := Outcome{EnquiryID: e.ID, HandOffURL: link, ClearForm: true}

	// sink B: record keeping. A failure here does not undo the hand-off.
	if err := p.store.SaveEnquiry(ctx, e); err != nil {
		out.State = StatePartiallyFailed
		out.PersistErr = err
		return out
	}
	out.State = StateSucceeded
	return out
}

// State reports where formID is in its lifecycle: Submitting while a
// submission runs, then that submission's final state until the next one
// starts. Unknown forms are Idle.
func (p *Intake) State(formID string) SubmitState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.states[formID]
}

// begin moves formID to Submitting unless a submission is already running.
func (p *Intake) begin(formID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.states[formID] == StateSubmitting {
		return false
	}
	p.states[formID] = StateSubmitting
	return true
}

func (p *Intake) finish(formID string, st SubmitState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if st == StateIdle {
		delete(p.states, formID)
		return
	}
	p.states[formID] = st
}

// Validate checks required fields, column lengths and the email shape of an
// already trimmed enquiry.
func (p *Intake) Validate(e domain.Enquiry) domain.FieldErrors {
	err := p.validate.Struct(e)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.FieldErrors{"_": err.Error()}
	}
	out := make(domain.FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "is required"
		case "email":
			out[fe.Field()] = "must be a valid email address"
		case "max":
			out[fe.Field()] = "must be at most " + fe.Param() + " characters"
		default:
			out[fe.Field()] = "is invalid"
		}
	}
	return out
}

// FormatEnquiry renders the operator message: a header line, then one labeled
// line per field in the order name, email, phone, city, service, message.
func FormatEnquiry(brand string, e domain.Enquiry) string {
	var b strings.Builder
	b.WriteString("*New Enquiry from " + brand + " Website*\n\n")
	b.WriteString("*Name:* " + e.Name + "\n")
	b.WriteString("*Email:* " + e.Email + "\n")
	b.WriteString("*Phone:* " + e.Phone + "\n")
	b.WriteString("*City:* " + e.City + "\n")
	b.WriteString("*Service Required:* " + e.Service + "\n")
	b.WriteString("*Message:* " + e.Message)
	return b.String()
}

func FormKey(e domain.Enquiry) string {
	return strings.ToLower(strings.TrimSpace(e.Email)) + "|" + strings.TrimSpace(e.Phone)
}

func trimEnquiry(e domain.Enquiry) domain.Enquiry {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	e.City = strings.TrimSpace(e.City)
	e.Service = strings.TrimSpace(e.Service)
	e.Message = strings.TrimSpace(e.Message)
	return e
}
