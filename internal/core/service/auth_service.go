package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/officecorner/hr-system/internal/api/metrics"
	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

// verifiedTTL is how long a successful OTP verification stays consumable by a
// follow-up registration before it must be repeated.
const verifiedTTL = 10 * time.Minute

// AuthService implements OTP issuance/verification, registration and the
// status-gated logins.
type AuthService struct {
	accounts    ports.AccountRepository
	otps        ports.OTPStore
	google      ports.GoogleVerifier
	notifier    ports.Notifier
	jwtSecret   string
	tokenTTL    time.Duration
	rememberTTL time.Duration
	logger      zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	otps ports.OTPStore,
	google ports.GoogleVerifier,
	notifier ports.Notifier,
	jwtSecret string,
	tokenTTL, rememberTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	if rememberTTL <= 0 {
		rememberTTL = 30 * 24 * time.Hour
	}
	return &AuthService{
		accounts:    accounts,
		otps:        otps,
		google:      google,
		notifier:    notifier,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		rememberTTL: rememberTTL,
		logger:      logger,
	}
}

// SendOTP issues a fresh 6-digit code for (email, purpose), overwriting any
// prior code for the same key, and emits the templated email.
func (s *AuthService) SendOTP(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	if !purpose.Valid() {
		return domain.ErrOTPInvalidPurpose
	}
	email = normalizeEmail(email)

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	record := domain.OTPRecord{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: time.Now().Add(domain.OTPTTL),
	}
	if err := s.otps.Put(ctx, domain.OTPKey(email, purpose), record, domain.OTPTTL); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	metrics.OTPIssuedTotal.WithLabelValues(string(purpose)).Inc()
	s.logger.Info().Str("email", email).Str("purpose", string(purpose)).Msg("otp issued")

	s.notifier.Enqueue(domain.Notification{
		RecipientEmail: email,
		Template:       domain.TemplateOTP,
		Data: map[string]string{
			"code":    code,
			"purpose": string(purpose),
		},
	})
	return nil
}

// VerifyOTP checks the submitted code. On success the code is consumed and a
// short-lived verification marker is stored so a follow-up registration can
// prove the email was verified.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string, purpose domain.OTPPurpose) error {
	email = normalizeEmail(email)
	if err := s.consumeOTP(ctx, email, code, purpose); err != nil {
		metrics.OTPVerifiedTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.OTPVerifiedTotal.WithLabelValues("success").Inc()
	marker := domain.OTPRecord{Email: email, Purpose: purpose, ExpiresAt: time.Now().Add(verifiedTTL)}
	if err := s.otps.Put(ctx, verifiedKey(email, purpose), marker, verifiedTTL); err != nil {
		return fmt.Errorf("store verification marker: %w", err)
	}
	return nil
}

// consumeOTP applies the full verification state machine against the store.
// The record survives only a plain mismatch below the attempt limit.
func (s *AuthService) consumeOTP(ctx context.Context, email, code string, purpose domain.OTPPurpose) error {
	key := domain.OTPKey(email, purpose)

	record, err := s.otps.Get(ctx, key)
	if err != nil {
		return err
	}
	if record.Expired(time.Now()) {
		_ = s.otps.Delete(ctx, key)
		return domain.ErrOTPExpired
	}
	if record.Exhausted() {
		_ = s.otps.Delete(ctx, key)
		return domain.ErrOTPTooManyAttempts
	}
	if record.Code != code {
		record.Attempts++
		if err := s.otps.Put(ctx, key, *record, time.Until(record.ExpiresAt)); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("failed to persist otp attempt counter")
		}
		return domain.ErrOTPMismatch
	}

	// Single use: the same code can never verify twice.
	return s.otps.Delete(ctx, key)
}

// Register creates a local account, or reactivates a rejected one in place.
// A verification-purpose OTP must have been verified for the email first.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	email := normalizeEmail(input.Email)
	role := domain.Role(input.Role)
	if !role.SelfRegisterable() {
		return nil, domain.ErrRoleNotAllowed
	}
	if err := s.requireVerified(ctx, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account, err := s.createOrReactivate(ctx, email, input.Username, role, func(a *domain.Account) {
		a.PasswordHash = string(hash)
		a.Profile = domain.Profile{Name: input.Name, Phone: input.Phone, Address: input.Address}
		a.Department = input.Department
	})
	if err != nil {
		return nil, err
	}

	_ = s.otps.Delete(ctx, verifiedKey(email, domain.PurposeVerification))
	return s.finishRegistration(account)
}

// GoogleRegister creates an account from a verified Google identity.
func (s *AuthService) GoogleRegister(ctx context.Context, input ports.GoogleRegisterInput) (*ports.RegisterResult, error) {
	claims, err := s.google.Verify(ctx, input.IDToken)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	email := normalizeEmail(claims.Email)
	role := domain.Role(input.Role)
	if !role.SelfRegisterable() {
		return nil, domain.ErrRoleNotAllowed
	}
	if err := s.requireVerified(ctx, email); err != nil {
		return nil, err
	}

	username := claims.Email
	if at := strings.IndexByte(claims.Email, '@'); at > 0 {
		username = claims.Email[:at]
	}
	account, err := s.createOrReactivate(ctx, email, username, role, func(a *domain.Account) {
		a.PasswordHash = ""
		a.Profile = domain.Profile{Name: claims.Name, Phone: input.Phone}
		a.Department = input.Department
		a.Google = &domain.GoogleIdentity{GoogleID: claims.GoogleID, Picture: claims.Picture}
	})
	if err != nil {
		return nil, err
	}

	_ = s.otps.Delete(ctx, verifiedKey(email, domain.PurposeVerification))
	return s.finishRegistration(account)
}

// createOrReactivate applies the duplicate-email/username rules and either
// inserts a new account or overwrites a rejected one in place.
func (s *AuthService) createOrReactivate(
	ctx context.Context,
	email, username string,
	role domain.Role,
	fill func(*domain.Account),
) (*domain.Account, error) {
	existing, err := s.accounts.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status != domain.StatusRejected {
		return nil, domain.ErrEmailTaken
	}

	byUsername, err := s.accounts.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if byUsername != nil && byUsername.Email != email && byUsername.Status != domain.StatusRejected {
		return nil, domain.ErrUsernameTaken
	}

	now := time.Now().UTC()

	if existing != nil {
		// Re-registration after rejection replaces credentials, role and
		// profile, clears the rejection audit trail, and resets the status.
		existing.Username = username
		existing.Role = role
		fill(existing)
		existing.ClearRejection(now)
		if err := s.accounts.Update(ctx, existing); err != nil {
			return nil, err
		}
		metrics.RegistrationsTotal.WithLabelValues(string(role), "reactivated").Inc()
		return existing, nil
	}

	account := &domain.Account{
		Username:  username,
		Email:     email,
		Role:      role,
		Status:    role.DefaultStatus(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	fill(account)

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	metrics.RegistrationsTotal.WithLabelValues(string(role), "created").Inc()
	return created, nil
}

// finishRegistration issues the token or flags the approval gate, and emits
// the pending notification for Employee accounts.
func (s *AuthService) finishRegistration(account *domain.Account) (*ports.RegisterResult, error) {
	s.logger.Info().
		Str("email", account.Email).
		Str("role", string(account.Role)).
		Str("status", string(account.Status)).
		Msg("account registered")

	if account.Status == domain.StatusPending {
		s.notifier.Enqueue(domain.Notification{
			RecipientEmail: account.Email,
			Template:       domain.TemplateAccountPending,
			Data:           map[string]string{"name": account.DisplayName()},
		})
		return &ports.RegisterResult{Account: account, RequiresApproval: true}, nil
	}

	token, err := s.generateToken(account, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &ports.RegisterResult{Account: account, Token: token}, nil
}

// Login authenticates by email/password. The status gate runs before the
// credential check so rejected and pending accounts always see their
// distinguishing error regardless of password validity.
func (s *AuthService) Login(ctx context.Context, email, password string, remember bool) (string, *domain.Account, error) {
	email = normalizeEmail(email)

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := statusGate(account); err != nil {
		metrics.LoginsTotal.WithLabelValues("blocked").Inc()
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	ttl := s.tokenTTL
	if remember {
		ttl = s.rememberTTL
	}
	token, err := s.generateToken(account, ttl)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, account, nil
}

// EmailLogin exchanges a login-purpose OTP for a session token.
func (s *AuthService) EmailLogin(ctx context.Context, email, code string) (string, *domain.Account, error) {
	email = normalizeEmail(email)
	if err := s.consumeOTP(ctx, email, code, domain.PurposeLogin); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, err
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if err := statusGate(account); err != nil {
		metrics.LoginsTotal.WithLabelValues("blocked").Inc()
		return "", nil, err
	}

	token, err := s.generateToken(account, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, account, nil
}

// GoogleLogin authenticates with a Google ID token, linking the Google
// identity to an existing account with the same email on first use.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (string, *domain.Account, error) {
	claims, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByGoogleID(ctx, claims.GoogleID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		account, err = s.accounts.FindByEmail(ctx, normalizeEmail(claims.Email))
		if err == nil {
			account.Google = &domain.GoogleIdentity{GoogleID: claims.GoogleID, Picture: claims.Picture}
			account.UpdatedAt = time.Now().UTC()
			if uerr := s.accounts.Update(ctx, account); uerr != nil {
				return "", nil, uerr
			}
			s.logger.Info().Str("email", account.Email).Msg("google identity linked")
		}
	}
	if err != nil {
		return "", nil, err
	}
	if err := statusGate(account); err != nil {
		metrics.LoginsTotal.WithLabelValues("blocked").Inc()
		return "", nil, err
	}

	token, err := s.generateToken(account, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, account, nil
}

func (s *AuthService) requireVerified(ctx context.Context, email string) error {
	if _, err := s.otps.Get(ctx, verifiedKey(email, domain.PurposeVerification)); err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) {
			return domain.ErrEmailNotVerified
		}
		return err
	}
	return nil
}

func (s *AuthService) generateToken(account *domain.Account, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":     account.ID,
		"role":   string(account.Role),
		"status": string(account.Status),
		"exp":    time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// statusGate blocks non-approved accounts from obtaining a session. The
// pending message is role-aware; both errors stay matchable with errors.Is.
func statusGate(account *domain.Account) error {
	switch account.Status {
	case domain.StatusRejected:
		return domain.ErrAccountRejected
	case domain.StatusPending:
		if account.Role == domain.RoleEmployee {
			return fmt.Errorf("your employee account is awaiting administrator approval: %w", domain.ErrAccountPending)
		}
		return fmt.Errorf("your account is awaiting approval: %w", domain.ErrAccountPending)
	default:
		return nil
	}
}

func verifiedKey(email string, purpose domain.OTPPurpose) string {
	return "otpok:" + string(purpose) + ":" + email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateCode returns a uniformly random 6-digit code with leading zeros.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
