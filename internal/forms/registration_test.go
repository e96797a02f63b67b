package forms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validRegistration() Registration {
	return Registration{FullName: "Ada Lopez", PhoneNumber: "(555) 123-4567", BusinessName: "Lopez Builders"}
}

func TestValidateSignupEmptyFullName(t *testing.T) {
	r := validRegistration()
	r.FullName = "   "
	errs := r.Validate(ModeSignup)
	require.Equal(t, []string{FieldFullName}, errs.Fields())
	require.Equal(t, "Full name is required", errs.Get(FieldFullName))
}

func TestValidateSignupRequiresBusinessName(t *testing.T) {
	r := validRegistration()
	r.BusinessName = ""
	errs := r.Validate(ModeSignup)
	require.Equal(t, []string{FieldBusinessName}, errs.Fields())
}

func TestValidatePhoneDigitCount(t *testing.T) {
	cases := map[string]bool{
		"555123456":        false,
		"55512345678":      false,
		"5551234567":       true,
		"(555) 123-4567":   true,
		"555 123 4567 ext": true,
	}
	for phone, ok := range cases {
		r := validRegistration()
		r.PhoneNumber = phone
		errs := r.Validate(ModeSignup)
		require.Equal(t, !ok, errs.Any(), phone)
	}

	r := validRegistration()
	r.PhoneNumber = ""
	require.Equal(t, "Phone number is required", r.Validate(ModeSignin).Get(FieldPhoneNumber))
}

func TestValidateSigninSkipsNames(t *testing.T) {
	r := Registration{PhoneNumber: "5551234567"}
	require.False(t, r.Validate(ModeSignin).Any())
	require.True(t, r.Validate(ModeSignup).Any())
}

func TestModeToggle(t *testing.T) {
	require.Equal(t, ModeSignin, ModeSignup.Toggle())
	require.Equal(t, ModeSignup, ModeSignin.Toggle())
	require.Equal(t, "signup", ModeSignup.String())
}

func TestErrorsClear(t *testing.T) {
	errs := Errors{}
	errs.Set(FieldFullName, "x")
	errs.Set(FieldPhoneNumber, "y")
	errs.Clear(FieldFullName)
	require.Equal(t, []string{FieldPhoneNumber}, errs.Fields())
}
