package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/ErlanBelekov/pdf-transparency/internal/email"
	"github.com/ErlanBelekov/pdf-transparency/internal/metrics"
	"github.com/ErlanBelekov/pdf-transparency/internal/otp"
	"github.com/ErlanBelekov/pdf-transparency/internal/repository"
)

const (
	defaultChallengeTTL = 10 * time.Minute

	otpSubject = "Your verification OTP"
)

// SessionIssuer mints a signed session token for a user ID.
type SessionIssuer interface {
	Issue(userID string) (string, error)
}

// AuthUsecase drives the two-step register and login flows: start issues an
// OTP challenge and emails it, verify consumes the challenge and mints a
// session token.
type AuthUsecase struct {
	users        repository.UserRepository
	challenges   repository.ChallengeRepository
	sender       email.Sender
	sessions     SessionIssuer
	codes        otp.Generator
	logger       *slog.Logger
	challengeTTL time.Duration
	now          func() time.Time
}

func NewAuthUsecase(
	users repository.UserRepository,
	challenges repository.ChallengeRepository,
	sender email.Sender,
	sessions SessionIssuer,
	codes otp.Generator,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:        users,
		challenges:   challenges,
		sender:       sender,
		sessions:     sessions,
		codes:        codes,
		logger:       logger.With("component", "auth_usecase"),
		challengeTTL: defaultChallengeTTL,
		now:          time.Now,
	}
}

// RegisterStart checks email and phone are unused, then issues a
// registration challenge. The duplicate checks here are advisory; the
// unique constraint at create time is what actually closes the race.
func (u *AuthUsecase) RegisterStart(ctx context.Context, name, email, phone string) error {
	taken, err := u.users.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return domain.ErrEmailExists
	}

	taken, err = u.users.PhoneExists(ctx, phone)
	if err != nil {
		return fmt.Errorf("check phone: %w", err)
	}
	if taken {
		return domain.ErrPhoneExists
	}

	return u.issueChallenge(ctx, email, domain.PurposeRegister)
}

// RegisterVerify consumes the registration challenge, creates the verified
// user, and returns it with a fresh session token.
func (u *AuthUsecase) RegisterVerify(ctx context.Context, name, email, phone, code string) (*domain.User, string, error) {
	if err := u.verifyChallenge(ctx, email, code, domain.PurposeRegister); err != nil {
		return nil, "", err
	}

	// Re-check after the challenge window: a concurrent registration may
	// have landed while this one was pending.
	taken, err := u.users.EmailExists(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("re-check email: %w", err)
	}
	if taken {
		return nil, "", domain.ErrEmailExists
	}

	user, err := u.users.Create(ctx, name, email, phone, true)
	if err != nil {
		return nil, "", err
	}

	token, err := u.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// LoginStart issues a login challenge for a registered email.
func (u *AuthUsecase) LoginStart(ctx context.Context, email string) error {
	if _, err := u.users.FindByEmail(ctx, email); err != nil {
		return err
	}
	return u.issueChallenge(ctx, email, domain.PurposeLogin)
}

// LoginVerify consumes the login challenge and returns the user with a
// fresh session token.
func (u *AuthUsecase) LoginVerify(ctx context.Context, email, code string) (*domain.User, string, error) {
	if err := u.verifyChallenge(ctx, email, code, domain.PurposeLogin); err != nil {
		return nil, "", err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	token, err := u.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// Me returns the user a validated session belongs to.
func (u *AuthUsecase) Me(ctx context.Context, userID string) (*domain.User, error) {
	return u.users.FindByID(ctx, userID)
}

// CheckDuplicates probes each non-empty attribute for existing users.
func (u *AuthUsecase) CheckDuplicates(ctx context.Context, email, phone, name string) (emailExists, phoneExists, nameExists bool, err error) {
	if email != "" {
		if emailExists, err = u.users.EmailExists(ctx, email); err != nil {
			return false, false, false, fmt.Errorf("check email: %w", err)
		}
	}
	if phone != "" {
		if phoneExists, err = u.users.PhoneExists(ctx, phone); err != nil {
			return false, false, false, fmt.Errorf("check phone: %w", err)
		}
	}
	if name != "" {
		if nameExists, err = u.users.NameExists(ctx, name); err != nil {
			return false, false, false, fmt.Errorf("check name: %w", err)
		}
	}
	return emailExists, phoneExists, nameExists, nil
}

// issueChallenge replaces any live challenge for (email, purpose) and emails
// the new code. Delivery is best-effort: a failed send is logged and
// swallowed, the stored challenge stays valid.
func (u *AuthUsecase) issueChallenge(ctx context.Context, to string, purpose domain.Purpose) error {
	code, err := u.codes.Code()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	expiresAt := u.now().Add(u.challengeTTL)
	if err := u.challenges.Replace(ctx, to, purpose, code, expiresAt); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}
	metrics.OTPIssuedTotal.WithLabelValues(string(purpose)).Inc()

	body := fmt.Sprintf("<p>Your OTP is: <strong>%s</strong>. It will expire in %d minutes.</p>",
		code, int(u.challengeTTL.Minutes()))
	if err := u.sender.Send(ctx, to, otpSubject, body); err != nil {
		u.logger.Warn("otp email delivery failed", "email", to, "purpose", purpose, "error", err)
	}
	return nil
}

// verifyChallenge implements the single-use rules: a correct code consumes
// the challenge, an expired one deletes it, a wrong code leaves it in place
// for a retry.
func (u *AuthUsecase) verifyChallenge(ctx context.Context, email, code string, purpose domain.Purpose) error {
	c, err := u.challenges.Find(ctx, email, purpose)
	if err != nil {
		metrics.OTPVerifiedTotal.WithLabelValues("no_challenge").Inc()
		return err
	}

	if c.Expired(u.now()) {
		if err := u.challenges.Consume(ctx, c.ID); err != nil && !errors.Is(err, domain.ErrChallengeNotFound) {
			return fmt.Errorf("delete expired challenge: %w", err)
		}
		metrics.OTPVerifiedTotal.WithLabelValues("expired").Inc()
		return domain.ErrChallengeExpired
	}

	if c.Code != code {
		metrics.OTPVerifiedTotal.WithLabelValues("mismatch").Inc()
		return domain.ErrChallengeMismatch
	}

	// Consume reports not-found when a concurrent verify won the race, so
	// the code is accepted at most once.
	if err := u.challenges.Consume(ctx, c.ID); err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			metrics.OTPVerifiedTotal.WithLabelValues("no_challenge").Inc()
			return domain.ErrChallengeNotFound
		}
		return fmt.Errorf("consume challenge: %w", err)
	}

	metrics.OTPVerifiedTotal.WithLabelValues("accepted").Inc()
	return nil
}
