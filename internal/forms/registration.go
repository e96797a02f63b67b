package forms

import "strings"

// Mode selects between the sign-up and sign-in variants of the auth form.
type Mode int

const (
	ModeSignup Mode = iota
	ModeSignin
)

func (m Mode) String() string {
	if m == ModeSignin {
		return "signin"
	}
	return "signup"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeSignin {
		return ModeSignup
	}
	return ModeSignin
}

// Registration field keys.
const (
	FieldFullName     = "fullName"
	FieldPhoneNumber  = "phoneNumber"
	FieldBusinessName = "businessName"
)

// Registration is the pending sign-up record typed into the auth form.
// PhoneNumber holds the formatted display value.
type Registration struct {
	FullName     string
	PhoneNumber  string
	BusinessName string
}

// Phone returns the digits-only phone number.
func (r Registration) Phone() string { return PhoneDigits(r.PhoneNumber) }

// Validate checks the form for mode. Name fields are only required on signup.
func (r Registration) Validate(mode Mode) Errors {
	errs := Errors{}
	if mode == ModeSignup {
		if strings.TrimSpace(r.FullName) == "" {
			errs.Set(FieldFullName, "Full name is required")
		}
		if strings.TrimSpace(r.BusinessName) == "" {
			errs.Set(FieldBusinessName, "Business name is required")
		}
	}
	switch digits := r.Phone(); {
	case digits == "":
		errs.Set(FieldPhoneNumber, "Phone number is required")
	case len(digits) != PhoneDigitCount:
		errs.Set(FieldPhoneNumber, "Please enter a valid 10-digit phone number")
	}
	return errs
}
