package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"dancerfit/admin-dashboard/internal/adminapi"
	"dancerfit/admin-dashboard/internal/domain"
	"dancerfit/admin-dashboard/internal/logger"
	"dancerfit/admin-dashboard/internal/repository"
)

var (
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrInvalidToken    = errors.New("invalid session token")
	ErrTokenGeneration = errors.New("failed to generate session token")
	// ErrInvalidInput matches every *InputError.
	ErrInvalidInput = errors.New("invalid input")
)

// InputError is a form problem caught before the remote API is called.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func inputError(msg string) error { return &InputError{Message: msg} }

// RemoteAuth is the part of the remote API that handles admin credentials.
type RemoteAuth interface {
	Login(ctx context.Context, email, password string) (*adminapi.LoginResult, error)
	ResendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, password, confirmation string) error
}

// AuthService signs admins in against the remote API and keeps their remote
// token in the session store.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, session *domain.Session, err error)
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, password, confirmation string) error
	// Credentials returns the remote token source for one session.
	Credentials(sessionID string) adminapi.CredentialProvider
}

type authService struct {
	remote        RemoteAuth
	sessions      repository.SessionRepository
	jwtSecret     []byte
	jwtExpiration time.Duration
	log           *logger.Logger
	now           func() time.Time
}

func NewAuthService(remote RemoteAuth, sessions repository.SessionRepository, jwtSecret string, jwtExpiration time.Duration, log *logger.Logger) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 12 * time.Hour
	}
	if log == nil {
		log = logger.Nop()
	}
	return &authService{
		remote:        remote,
		sessions:      sessions,
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: jwtExpiration,
		log:           log,
		now:           time.Now,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, inputError("Email and password are required")
	}

	res, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:          uuid.NewString(),
		AdminName:   res.Admin.Name,
		Email:       res.Admin.Email,
		RemoteToken: res.Token,
		CreatedAt:   now,
		LastSeenAt:  now,
		ExpiresAt:   now.Add(s.jwtExpiration),
	}
	if session.Email == "" {
		session.Email = email
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	token, err := s.generateJWT(session)
	if err != nil {
		s.log.Error("sign session token", "error", err)
		_ = s.sessions.Delete(ctx, session.ID)
		return "", nil, ErrTokenGeneration
	}
	s.log.Info("admin signed in", "session", session.ID, "email", session.Email)
	return token, session, nil
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(session *domain.Session) (string, error) {
	claims := &sessionClaims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Email,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			Issuer:    "dancer-admin-dashboard",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *authService) parseJWT(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.parseJWT(token)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	now := s.now().UTC()
	if session.Expired(now) {
		return nil, ErrSessionNotFound
	}
	// Expiry stays at the token's exp; only the last-seen mark moves.
	if err := s.sessions.Touch(ctx, session.ID, now, session.ExpiresAt); err != nil {
		s.log.Warn("touch session", "session", session.ID, "error", err)
	}
	session.LastSeenAt = now
	return session, nil
}

// Logout drops the local session only; the remote token is left to expire.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	s.log.Info("admin signed out", "session", sessionID)
	return nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return inputError("Email is required")
	}
	return s.remote.ResendOTP(ctx, email)
}

// VerifyOTP expects the four digit code from the reset mail.
func (s *authService) VerifyOTP(ctx context.Context, email, otp string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return inputError("Email not found. Please go back and enter your email.")
	}
	if !isDigits(otp, 4) {
		return inputError("Please enter all 4 digits.")
	}
	return s.remote.VerifyOTP(ctx, email, otp)
}

func (s *authService) ResetPassword(ctx context.Context, email, password, confirmation string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return inputError("Email not found.")
	}
	if password == "" || confirmation == "" {
		return inputError("Please fill in both fields")
	}
	if password != confirmation {
		return inputError("Passwords do not match")
	}
	return s.remote.ResetPassword(ctx, email, password, confirmation)
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *authService) Credentials(sessionID string) adminapi.CredentialProvider {
	return &SessionCredentials{sessions: s.sessions, sessionID: sessionID}
}

// SessionCredentials reads the remote token of one session from the store.
type SessionCredentials struct {
	sessions  repository.SessionRepository
	sessionID string
}

func (c *SessionCredentials) Token(ctx context.Context) (string, error) {
	session, err := c.sessions.GetByID(ctx, c.sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	if session.RemoteToken == "" {
		return "", adminapi.ErrNoCredentials
	}
	return session.RemoteToken, nil
}
