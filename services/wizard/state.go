package wizard

import (
	"time"

	"skiphire/models"
	"skiphire/services/schedule"
)

// Step indices for the six-step booking flow.
const (
	StepAddress = 1
	StepWaste   = 2
	StepSkip    = 3
	StepPermit  = 4
	StepDate    = 5
	StepPayment = 6
)

// State is one wizard session: the active step and the booking accumulated
// so far. It is a value; Reduce returns a new State and never mutates its
// input.
type State struct {
	Step  int                 `json:"step"`
	Draft models.BookingDraft `json:"draft"`
}

// NewState returns the initial state: step 1, empty draft.
func NewState() State {
	return State{Step: StepAddress, Draft: models.NewBookingDraft()}
}

// Action is a wizard transition request. Concrete actions are the step
// submissions plus the navigation actions.
type Action interface {
	apply(s State, now time.Time) (State, error)
}

// SubmitAddress completes the address step.
type SubmitAddress struct {
	Address models.Address `json:"address"`
}

// SubmitWasteTypes completes the waste-type step. At least one known
// category is required.
type SubmitWasteTypes struct {
	Categories []string `json:"categories"`
}

// SelectSkip completes the skip-selection step.
type SelectSkip struct {
	Skip models.SkipOffering `json:"skip"`
}

// SubmitPlacement completes the permit step. On-road placement requires a
// council permit, which extends the delivery lead time.
type SubmitPlacement struct {
	OnPublicRoad bool `json:"onPublicRoad"`
}

// SelectDate completes the date step with a delivery date in 2006-01-02 form.
type SelectDate struct {
	Date string `json:"date"`
}

// CompletePayment records the payment outcome. It is the final step and
// does not advance.
type CompletePayment struct {
	Details models.PaymentDetails `json:"details"`
}

// Back returns to the previous step. No-op at step 1.
type Back struct{}

// JumpTo revisits an earlier step. Forward jumps are a no-op.
type JumpTo struct {
	Step int `json:"step"`
}

// Reset discards the draft and returns to step 1.
type Reset struct{}

// Reduce applies an action to a state and returns the resulting state.
// Navigation guards fail as no-ops; validation failures return the
// unchanged state and a sentinel error.
func Reduce(s State, action Action, now time.Time) (State, error) {
	return action.apply(s, now)
}

func (a SubmitAddress) apply(s State, _ time.Time) (State, error) {
	if s.Step != StepAddress {
		return s, ErrWrongStep
	}
	addr := a.Address
	s.Draft.Address = &addr
	return advance(s), nil
}

func (a SubmitWasteTypes) apply(s State, _ time.Time) (State, error) {
	if s.Step != StepWaste {
		return s, ErrWrongStep
	}

	selected := dedupe(a.Categories)
	if len(selected) == 0 {
		return s, ErrNoWasteSelected
	}
	for _, id := range selected {
		if !models.KnownWasteCategory(id) {
			return s, ErrUnknownWasteCategory
		}
	}

	s.Draft.WasteTypes = selected
	return advance(s), nil
}

func (a SelectSkip) apply(s State, _ time.Time) (State, error) {
	if s.Step != StepSkip {
		return s, ErrWrongStep
	}
	skip := a.Skip
	s.Draft.SelectedSkip = &skip
	return advance(s), nil
}

func (a SubmitPlacement) apply(s State, now time.Time) (State, error) {
	if s.Step != StepPermit {
		return s, ErrWrongStep
	}

	if a.OnPublicRoad {
		s.Draft.PermitRequired = true
		s.Draft.PermitDetails = schedule.PermitDetailsFor(now)
	} else {
		s.Draft.PermitRequired = false
		s.Draft.PermitDetails = nil
	}

	// The lead time just changed, so any previously chosen date is stale.
	s.Draft.SelectedDate = ""
	s.Draft.TimeSlot = ""
	return advance(s), nil
}

func (a SelectDate) apply(s State, now time.Time) (State, error) {
	if s.Step != StepDate {
		return s, ErrWrongStep
	}

	date, err := schedule.ParseDate(a.Date)
	if err != nil {
		return s, ErrDateUnavailable
	}
	if !schedule.IsAvailable(now, date, s.Draft.PermitRequired) {
		return s, ErrDateUnavailable
	}

	s.Draft.SelectedDate = date.Format(schedule.DateLayout)
	s.Draft.TimeSlot = schedule.DeliveryTimeSlot
	return advance(s), nil
}

func (a CompletePayment) apply(s State, _ time.Time) (State, error) {
	if s.Step != StepPayment {
		return s, ErrWrongStep
	}
	if s.Draft.PaymentDetails != nil {
		return s, ErrPaymentAlreadyRecorded
	}
	details := a.Details
	s.Draft.PaymentDetails = &details
	return s, nil
}

func (Back) apply(s State, _ time.Time) (State, error) {
	if s.Step > StepAddress {
		s.Step--
	}
	return s, nil
}

func (a JumpTo) apply(s State, _ time.Time) (State, error) {
	// Completed steps may be revisited; skipping ahead is never allowed.
	if a.Step >= StepAddress && a.Step < s.Step {
		s.Step = a.Step
	}
	return s, nil
}

func (Reset) apply(State, time.Time) (State, error) {
	return NewState(), nil
}

func advance(s State) State {
	if s.Step < StepPayment {
		s.Step++
	}
	return s
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
