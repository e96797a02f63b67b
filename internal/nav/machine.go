package nav

import (
	"errors"
	"fmt"

	"github.com/jask/inventorly/internal/forms"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = forms.CodeLength

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNoItemSelected    = errors.New("no item selected")
	ErrPhoneDigits       = errors.New("phone number must have 10 digits")
	ErrCodeLength        = fmt.Errorf("verification code must be %d digits", CodeLength)
	ErrInvalidTarget     = errors.New("not a root screen")
)

// Transition maps (from, ev) to the next screen. It is total: a pair with no
// destination returns from unchanged together with an error.
func Transition(from Screen, ev Event) (Screen, error) {
	switch e := ev.(type) {
	case SubmitAuth:
		if from.Kind() != KindAuth {
			break
		}
		if len(e.Phone) != forms.PhoneDigitCount || forms.PhoneDigits(e.Phone) != e.Phone {
			return from, ErrPhoneDigits
		}
		return Verify{Phone: e.Phone}, nil

	case ConfirmCode:
		if from.Kind() != KindVerify {
			break
		}
		if len(e.Code) != CodeLength {
			return from, ErrCodeLength
		}
		return Loading{}, nil

	case LoadingDone:
		if from.Kind() == KindLoading {
			return Dashboard{}, nil
		}

	case RequestAddItem:
		if from.Kind() == KindDashboard {
			return AddItem{}, nil
		}

	case RequestBulkUpload:
		if from.Kind() == KindAddItem {
			return BulkUpload{}, nil
		}

	case Save:
		switch from.Kind() {
		case KindAddItem, KindBulkUpload:
			return Dashboard{}, nil
		}

	case ViewItem:
		switch from.Kind() {
		case KindDashboard, KindLibrary:
			if e.ItemID <= 0 {
				return from, ErrNoItemSelected
			}
			return ItemDetail{ItemID: e.ItemID}, nil
		}

	case RequestAssign:
		if d, ok := from.(ItemDetail); ok {
			return AssignToJob{ItemID: d.ItemID}, nil
		}

	case ViewReport:
		if d, ok := from.(ItemDetail); ok {
			return Reports{ItemID: d.ItemID}, nil
		}

	case Navigate:
		if !SignedIn(from) {
			break
		}
		switch e.Target {
		case KindDashboard:
			return Dashboard{}, nil
		case KindLibrary:
			return Library{}, nil
		case KindReports:
			return Reports{}, nil
		case KindAddItem:
			return AddItem{}, nil
		}
		return from, fmt.Errorf("%w: %s", ErrInvalidTarget, e.Target)

	case Back:
		switch from.Kind() {
		case KindVerify:
			return Auth{}, nil
		case KindAddItem, KindBulkUpload, KindLibrary:
			return Dashboard{}, nil
		case KindItemDetail, KindAssignToJob, KindReports:
			// the machine resolves the prior screen from its history
			return Dashboard{}, nil
		}
	}
	return from, fmt.Errorf("%w: %T on %s", ErrInvalidTransition, ev, from.Kind())
}

// Machine tracks the current screen and the drill-down history used by Back.
type Machine struct {
	current Screen
	history []Screen
}

// NewMachine starts at the auth screen.
func NewMachine() *Machine {
	return &Machine{current: Auth{}}
}

// Current returns the active screen.
func (m *Machine) Current() Screen { return m.current }

// SelectedItem returns the item id of the active screen, if it carries one.
func (m *Machine) SelectedItem() (int64, bool) { return ItemOf(m.current) }

// Depth is the number of screens Back can return to.
func (m *Machine) Depth() int { return len(m.history) }

// Fire applies ev. On error the current screen is kept.
func (m *Machine) Fire(ev Event) (Screen, error) {
	next, err := Transition(m.current, ev)
	if err != nil {
		return m.current, err
	}
	switch ev.(type) {
	case Back:
		if drillDown(m.current) && len(m.history) > 0 {
			next = m.history[len(m.history)-1]
			m.history = m.history[:len(m.history)-1]
		} else {
			m.history = nil
		}
	case ViewItem, RequestAssign, ViewReport:
		m.history = append(m.history, m.current)
	default:
		m.history = nil
	}
	m.current = next
	return next, nil
}

func drillDown(s Screen) bool {
	switch s.Kind() {
	case KindItemDetail, KindAssignToJob, KindReports:
		return true
	}
	return false
}
