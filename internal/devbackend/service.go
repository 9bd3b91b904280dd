// Package devbackend is a development stand-in for the shop-management REST
// API. It issues real HS256 tokens and speaks the same envelope, so the
// portal and the CLI can run end to end without the production backend.
package devbackend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
)

const (
	defaultTokenTTL = 24 * time.Hour
	defaultOTPTTL   = 10 * time.Minute
)

var (
	ErrNotVerified     = errors.New("account not verified")
	ErrWrongPassword   = errors.New("current password is incorrect")
	ErrSamePassword    = errors.New("new password must differ from the current one")
	ErrTokenRevoked    = errors.New("token has been logged out")
	ErrProductNotFound = errors.New("master product not found")
	ErrProductInShop   = errors.New("product already exists in shop")
)

// Options tune a Service; zero values pick the defaults.
type Options struct {
	TokenTTL time.Duration
	OTPTTL   time.Duration
	Now      func() time.Time
	Log      zerolog.Logger
}

// Service implements the backend's account, token and shop rules.
type Service struct {
	repo      ports.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
	log       zerolog.Logger

	otps    *otpStore
	revoked sync.Map // jti -> expiry
	shops   *shopStore
}

func NewService(repo ports.AccountRepository, jwtSecret string, opts Options) *Service {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = defaultOTPTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  opts.TokenTTL,
		now:       opts.Now,
		log:       opts.Log,
		otps:      newOTPStore(opts.OTPTTL),
		shops:     newShopStore(),
	}
}

// Register creates an unverified account and sends it a registration code.
// Self-registration can only create customers and shop owners.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error) {
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := domain.RoleUser
	if req.Role != "" {
		role = domain.ParseRole(req.Role)
		if role != domain.RoleUser && role != domain.RoleShopOwner {
			return nil, domain.ErrInvalidCredentials
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		Username:     req.Username,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.sendOTP(purposeRegistration, created.Email); err != nil {
		return nil, err
	}
	return created, nil
}

// Seed stores a verified account with a known password, for local setups.
func (s *Service) Seed(ctx context.Context, username, email, password string, role domain.Role, mustChange bool) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	return s.repo.Create(ctx, &domain.Account{
		Username:               username,
		Email:                  email,
		PasswordHash:           string(hash),
		Role:                   role,
		Verified:               true,
		PasswordChangeRequired: mustChange,
		TemporaryPassword:      mustChange,
		CreatedAt:              now,
		UpdatedAt:              now,
	})
}

// Login checks the password of the account named by identifier and issues a
// token.
func (s *Service) Login(ctx context.Context, identifier, password string) (*domain.AuthResponse, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByIdentifier(ctx, identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !account.Verified {
		return nil, ErrNotVerified
	}
	return s.authResponse(account)
}

func (s *Service) authResponse(a *domain.Account) (*domain.AuthResponse, error) {
	token, err := s.generateToken(a)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{
		AccessToken:            token,
		TokenType:              "Bearer",
		Username:               a.Username,
		Email:                  a.Email,
		Role:                   a.Role.String(),
		UserID:                 a.ID,
		PasswordChangeRequired: a.PasswordChangeRequired,
		IsTemporaryPassword:    a.TemporaryPassword,
	}, nil
}

func (s *Service) generateToken(a *domain.Account) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  a.Username,
		"role": a.Role.String(),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// Principal is the caller identified by a valid token.
type Principal struct {
	Username string
	Role     domain.Role
	TokenID  string
	Expires  time.Time
}

// Authenticate verifies a bearer token and reports why it was rejected
// using the backend's token codes.
func (s *Service) Authenticate(token string) (*Principal, string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.CodeTokenExpired, err
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, domain.CodeTokenMalformed, err
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, domain.CodeTokenInvalidSignature, err
	case err != nil || !parsed.Valid:
		return nil, domain.CodeTokenInvalid, fmt.Errorf("invalid token: %w", err)
	}

	p := &Principal{}
	p.Username, _ = claims["sub"].(string)
	role, _ := claims["role"].(string)
	p.Role = domain.ParseRole(role)
	p.TokenID, _ = claims["jti"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		p.Expires = exp.Time
	}
	if _, revoked := s.revoked.Load(p.TokenID); revoked {
		return nil, domain.CodeTokenInvalidated, ErrTokenRevoked
	}
	return p, "", nil
}

// Logout invalidates the caller's token until it would have expired anyway.
func (s *Service) Logout(p *Principal) {
	if p.TokenID == "" {
		return
	}
	s.revoked.Store(p.TokenID, p.Expires)
	now := s.now()
	s.revoked.Range(func(k, v any) bool {
		if exp, ok := v.(time.Time); ok && !exp.IsZero() && now.After(exp) {
			s.revoked.Delete(k)
		}
		return true
	})
}

// VerifyRegistration marks the account verified when the code matches and
// returns a session for it.
func (s *Service) VerifyRegistration(ctx context.Context, identifier, otp string) (*domain.AuthResponse, error) {
	account, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if err := s.otps.verify(purposeRegistration, account.Email, otp, s.now(), true); err != nil {
		return nil, err
	}
	account.Verified = true
	account.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return s.authResponse(account)
}

// ResendRegistrationOTP issues a new registration code.
func (s *Service) ResendRegistrationOTP(ctx context.Context, identifier string) error {
	account, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	return s.sendOTP(purposeRegistration, account.Email)
}

// SendResetOTP starts a password reset. Unknown identifiers are reported so
// the screens can tell the user.
func (s *Service) SendResetOTP(ctx context.Context, identifier string) error {
	if _, err := s.repo.FindByIdentifier(ctx, identifier); err != nil {
		return err
	}
	return s.sendOTP(purposeReset, identifier)
}

func (s *Service) VerifyResetOTP(identifier, otp string) error {
	return s.otps.verify(purposeReset, identifier, otp, s.now(), false)
}

// ResetPassword consumes the reset code and replaces the password.
func (s *Service) ResetPassword(ctx context.Context, identifier, otp, newPassword string) error {
	account, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	if err := s.otps.verify(purposeReset, identifier, otp, s.now(), true); err != nil {
		return err
	}
	return s.setPassword(ctx, account, newPassword)
}

// ChangePassword replaces the password of username after checking the
// current one, lifting any forced-change flags.
func (s *Service) ChangePassword(ctx context.Context, username, current, next string) error {
	account, err := s.repo.FindByIdentifier(ctx, username)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(current)) != nil {
		return ErrWrongPassword
	}
	if current == next {
		return ErrSamePassword
	}
	return s.setPassword(ctx, account, next)
}

func (s *Service) setPassword(ctx context.Context, account *domain.Account, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := s.now().UTC()
	account.PasswordHash = string(hash)
	account.PasswordChangeRequired = false
	account.TemporaryPassword = false
	account.LastPasswordChange = &now
	account.UpdatedAt = now
	return s.repo.Update(ctx, account)
}

func (s *Service) PasswordStatus(ctx context.Context, username string) (*domain.PasswordStatus, error) {
	account, err := s.repo.FindByIdentifier(ctx, username)
	if err != nil {
		return nil, err
	}
	return &domain.PasswordStatus{
		IsTemporaryPassword:    account.TemporaryPassword,
		PasswordChangeRequired: account.PasswordChangeRequired,
		LastPasswordChange:     account.LastPasswordChange,
	}, nil
}

// sendOTP stands in for the email and SMS gateways: the code goes to the log.
func (s *Service) sendOTP(purpose, identifier string) error {
	code, err := s.otps.issue(purpose, identifier, s.now())
	if err != nil {
		return err
	}
	s.log.Info().
		Str("purpose", strings.ToLower(purpose)).
		Str("identifier", identifier).
		Str("otp", code).
		Msg("otp issued")
	return nil
}
