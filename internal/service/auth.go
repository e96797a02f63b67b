package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/forms"
	"github.com/jask/inventorly/internal/logging"
)

// CodeSender delivers a verification code to a phone number.
type CodeSender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogSender writes codes to the log instead of sending an SMS.
type LogSender struct {
	Log *zap.Logger
}

func (s LogSender) Send(_ context.Context, phone, code string) error {
	if s.Log != nil {
		s.Log.Info("verification code", zap.String("phone", logging.MaskPhone(phone)), zap.String("code", code))
	}
	return nil
}

// AuthService issues and checks phone verification codes and records accounts.
type AuthService struct {
	Users  repository.UserStore
	Codes  repository.CodeStore
	Sender CodeSender
	Log    *zap.Logger

	Latency       time.Duration
	CodeTTL       time.Duration
	AcceptAnyCode bool
	Retries       int
	HashCost      int // bcrypt cost; zero means bcrypt.DefaultCost

	// RetryInterval is the first backoff wait between delivery attempts.
	RetryInterval time.Duration
}

// SendCode issues a fresh code for phone (digits only) and delivers it.
func (s *AuthService) SendCode(ctx context.Context, phone string) error {
	if !forms.ValidPhone(phone) || forms.PhoneDigits(phone) != phone {
		return fmt.Errorf("send code: %w", &ValidationError{Fields: forms.Errors{forms.FieldPhoneNumber: "Please enter a valid 10-digit phone number"}})
	}
	if err := wait(ctx, s.Latency); err != nil {
		return fmt.Errorf("send code: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("send code: %w", err)
	}
	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), cost)
	if err != nil {
		return fmt.Errorf("send code: hash: %w", err)
	}
	ttl := s.CodeTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	rec := repository.VerificationCode{
		ID:        uuid.NewString(),
		Phone:     phone,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := s.Codes.Insert(ctx, rec); err != nil {
		return fmt.Errorf("send code: store: %w", err)
	}

	if err := s.deliver(ctx, phone, code); err != nil {
		return fmt.Errorf("send code: deliver: %w", err)
	}
	logger(s.Log).Info("code issued", zap.String("phone", logging.MaskPhone(phone)), zap.Time("expires_at", rec.ExpiresAt))
	return nil
}

func (s *AuthService) deliver(ctx context.Context, phone, code string) error {
	if s.Sender == nil {
		return nil
	}
	b := backoff.NewExponentialBackOff()
	if s.RetryInterval > 0 {
		b.InitialInterval = s.RetryInterval
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(s.Retries, 0))), ctx)
	return backoff.RetryNotify(func() error {
		return s.Sender.Send(ctx, phone, code)
	}, policy, func(err error, next time.Duration) {
		logger(s.Log).Warn("code delivery failed, retrying", zap.Error(err), zap.Duration("next", next))
	})
}

// VerifyCode checks code against the latest code issued for phone. With
// AcceptAnyCode set, any well-formed code passes.
func (s *AuthService) VerifyCode(ctx context.Context, phone, code string) error {
	if !forms.ValidCode(code) {
		return &ValidationError{Fields: forms.Errors{"code": fmt.Sprintf("Enter the %d-digit code", forms.CodeLength)}}
	}
	if err := wait(ctx, s.Latency); err != nil {
		return fmt.Errorf("verify code: %w", err)
	}
	latest, err := s.Codes.Latest(ctx, phone)
	if err != nil {
		return fmt.Errorf("verify code: %w", err)
	}
	if s.AcceptAnyCode {
		if latest != nil && latest.UsedAt == nil {
			if err := s.Codes.MarkUsed(ctx, latest.ID); err != nil {
				return fmt.Errorf("verify code: %w", err)
			}
		}
		return nil
	}
	if latest == nil {
		return ErrNoCode
	}
	if latest.UsedAt != nil || time.Now().UTC().After(latest.ExpiresAt) {
		return ErrCodeExpired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(latest.CodeHash), []byte(code)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrCodeMismatch
		}
		return fmt.Errorf("verify code: %w", err)
	}
	if err := s.Codes.MarkUsed(ctx, latest.ID); err != nil {
		return fmt.Errorf("verify code: %w", err)
	}
	return nil
}

// Register records the account typed into the sign-up form.
func (s *AuthService) Register(ctx context.Context, reg forms.Registration) (repository.User, error) {
	if errs := reg.Validate(forms.ModeSignup); errs.Any() {
		return repository.User{}, &ValidationError{Fields: errs}
	}
	phone := reg.Phone()
	u := repository.User{
		ID:           UserID(phone),
		FullName:     strings.TrimSpace(reg.FullName),
		Phone:        phone,
		BusinessName: strings.TrimSpace(reg.BusinessName),
	}
	if err := s.Users.Upsert(ctx, u); err != nil {
		return repository.User{}, fmt.Errorf("register: %w", err)
	}
	logger(s.Log).Info("user registered", zap.String("user_id", u.ID), zap.String("business", u.BusinessName))
	return u, nil
}

// SignIn returns the account for phone, or nil when the number is unknown.
func (s *AuthService) SignIn(ctx context.Context, phone string) (*repository.User, error) {
	u, err := s.Users.ByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return u, nil
}

// Complete verifies code and then registers (signup) or looks up (signin) the user.
func (s *AuthService) Complete(ctx context.Context, mode forms.Mode, reg forms.Registration, code string) (*repository.User, error) {
	phone := reg.Phone()
	if err := s.VerifyCode(ctx, phone, code); err != nil {
		return nil, err
	}
	if mode == forms.ModeSignin {
		return s.SignIn(ctx, phone)
	}
	u, err := s.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserID derives the stable account id for a phone number.
func UserID(phone string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("user:"+phone)).String()
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
