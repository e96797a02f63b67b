package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jask/inventorly/internal/database/memstore"
	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/forms"
)

type captureSender struct {
	mu    sync.Mutex
	fails int
	calls int
	codes []string
}

func (c *captureSender) Send(_ context.Context, _ string, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls <= c.fails {
		return errors.New("carrier unavailable")
	}
	c.codes = append(c.codes, code)
	return nil
}

func (c *captureSender) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codes[len(c.codes)-1]
}

func newAuth(t *testing.T, sender CodeSender, anyCode bool) *AuthService {
	t.Helper()
	store := memstore.New()
	return &AuthService{
		Users:         store.Users,
		Codes:         store.Codes,
		Sender:        sender,
		CodeTTL:       time.Minute,
		AcceptAnyCode: anyCode,
		Retries:       3,
		HashCost:      bcrypt.MinCost,
		RetryInterval: time.Millisecond,
	}
}

func TestSendAndVerifyStrict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sender := &captureSender{}
	svc := newAuth(t, sender, false)

	require.NoError(t, svc.SendCode(ctx, "5551234567"))
	code := sender.last()
	require.True(t, forms.ValidCode(code))

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	require.ErrorIs(t, svc.VerifyCode(ctx, "5551234567", wrong), ErrCodeMismatch)
	require.NoError(t, svc.VerifyCode(ctx, "5551234567", code))
	// codes are single use
	require.ErrorIs(t, svc.VerifyCode(ctx, "5551234567", code), ErrCodeExpired)
}

func TestVerifyWithoutCode(t *testing.T) {
	t.Parallel()
	svc := newAuth(t, &captureSender{}, false)
	require.ErrorIs(t, svc.VerifyCode(context.Background(), "5551234567", "123456"), ErrNoCode)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sender := &captureSender{}
	svc := newAuth(t, sender, false)
	svc.CodeTTL = time.Nanosecond

	require.NoError(t, svc.SendCode(ctx, "5551234567"))
	time.Sleep(time.Millisecond)
	require.ErrorIs(t, svc.VerifyCode(ctx, "5551234567", sender.last()), ErrCodeExpired)
}

func TestVerifyAcceptAnyCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newAuth(t, &captureSender{}, true)

	require.NoError(t, svc.VerifyCode(ctx, "5551234567", "424242"))

	var verr *ValidationError
	require.ErrorAs(t, svc.VerifyCode(ctx, "5551234567", "42424"), &verr)
	require.ErrorAs(t, svc.VerifyCode(ctx, "5551234567", "4242424"), &verr)
	require.ErrorAs(t, svc.VerifyCode(ctx, "5551234567", "42a424"), &verr)
}

type stuckCodes struct {
	repository.CodeStore
}

func (stuckCodes) MarkUsed(context.Context, string) error {
	return errors.New("database is locked")
}

func TestVerifyAcceptAnyCodeReportsStoreError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newAuth(t, &captureSender{}, true)
	require.NoError(t, svc.SendCode(ctx, "5551234567"))

	svc.Codes = stuckCodes{svc.Codes}
	err := svc.VerifyCode(ctx, "5551234567", "123456")
	require.ErrorContains(t, err, "database is locked")
}

func TestSendCodeRetries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	flaky := &captureSender{fails: 2}
	svc := newAuth(t, flaky, false)
	require.NoError(t, svc.SendCode(ctx, "5551234567"))
	require.Equal(t, 3, flaky.calls)

	down := &captureSender{fails: 100}
	svc = newAuth(t, down, false)
	svc.Retries = 1
	require.Error(t, svc.SendCode(ctx, "5551234567"))
	require.Equal(t, 2, down.calls)
}

func TestSendCodeRejectsBadPhone(t *testing.T) {
	t.Parallel()
	svc := newAuth(t, &captureSender{}, true)
	var verr *ValidationError
	require.ErrorAs(t, svc.SendCode(context.Background(), "555123456"), &verr)
	require.ErrorAs(t, svc.SendCode(context.Background(), "(555) 123-4567"), &verr)
}

func TestSendCodeCancelled(t *testing.T) {
	t.Parallel()
	svc := newAuth(t, &captureSender{}, true)
	svc.Latency = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, svc.SendCode(ctx, "5551234567"), context.Canceled)
}

func TestRegisterAndSignIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newAuth(t, &captureSender{}, true)

	reg := forms.Registration{FullName: " Dana Ortiz ", PhoneNumber: "(555) 123-4567", BusinessName: "Ortiz Builders"}
	u, err := svc.Register(ctx, reg)
	require.NoError(t, err)
	require.Equal(t, "Dana Ortiz", u.FullName)
	require.Equal(t, "5551234567", u.Phone)
	require.Equal(t, UserID("5551234567"), u.ID)

	got, err := svc.SignIn(ctx, "5551234567")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Ortiz Builders", got.BusinessName)

	missing, err := svc.SignIn(ctx, "5559999999")
	require.NoError(t, err)
	require.Nil(t, missing)

	_, err = svc.Register(ctx, forms.Registration{PhoneNumber: "5551234567"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, forms.FieldFullName)
}

func TestComplete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newAuth(t, &captureSender{}, true)
	reg := forms.Registration{FullName: "Dana", PhoneNumber: "5551234567", BusinessName: "Ortiz Builders"}

	u, err := svc.Complete(ctx, forms.ModeSignup, reg, "123456")
	require.NoError(t, err)
	require.Equal(t, "Dana", u.FullName)

	again, err := svc.Complete(ctx, forms.ModeSignin, forms.Registration{PhoneNumber: "5551234567"}, "654321")
	require.NoError(t, err)
	require.Equal(t, u.ID, again.ID)

	_, err = svc.Complete(ctx, forms.ModeSignin, reg, "12")
	require.Error(t, err)
}
