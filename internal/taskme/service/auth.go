package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/pkg/cryptox"
	"github.com/aussiebroadwan/taskme/pkg/jwtx"
	"github.com/aussiebroadwan/taskme/pkg/mailx"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrUserNotFound       = errors.New("user not found")
)

// VerifyResult is the outcome reported back to the frontend after a
// verification link is followed.
type VerifyResult string

const (
	VerifySuccess VerifyResult = "success"
	VerifyInvalid VerifyResult = "invalid"
	VerifyExpired VerifyResult = "expired"
)

const (
	DefaultVerificationTTL = 24 * time.Hour
	verifyPath             = "/api/v1/auth/verify-email"
)

type AuthService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
	Signer jwtx.Signer
	Mailer mailx.Mailer

	AccessTTL       time.Duration
	VerificationTTL time.Duration

	// PublicURL is this API's externally reachable base, used in emailed links.
	PublicURL string

	Now Clock
}

// LoginResult is an issued bearer token and the user it belongs to.
type LoginResult struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        domain.User
}

func (s *AuthService) verificationTTL() time.Duration {
	if s.VerificationTTL <= 0 {
		return DefaultVerificationTTL
	}
	return s.VerificationTTL
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL <= 0 {
		return jwtx.DefaultAccessTokenTTL
	}
	return s.AccessTTL
}

// Register creates an unverified account, seeds its core columns and emails
// a verification link. A failed email is logged and does not undo the
// registration.
func (s *AuthService) Register(ctx context.Context, req taskmesdk.RegisterRequest) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if errs := req.Validate(); errs != nil {
		for _, field := range taskmesdk.RegisterFieldOrder {
			if msg, ok := errs[field]; ok {
				return domain.User{}, invalid(field, msg)
			}
		}
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	// Fast path. The unique indexes are what actually enforce this.
	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.User{}, err
	}
	tokenHash := cryptox.FingerprintToken(token)
	expiresAt := s.Now.now().Add(s.verificationTTL())

	user := domain.User{
		Username:              username,
		Email:                 email,
		PasswordHash:          hash,
		VerificationTokenHash: &tokenHash,
		VerificationExpiresAt: &expiresAt,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, &user); err != nil {
			return err
		}
		_, err := SeedCoreColumns(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			if strings.Contains(err.Error(), "email") {
				return domain.User{}, ErrEmailTaken
			}
			return domain.User{}, ErrUsernameTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user registered", slog.Int64("user_id", user.ID), slog.String("username", user.Username))
	s.sendVerification(ctx, user, token)
	return user, nil
}

func (s *AuthService) verificationLink(token string) string {
	return strings.TrimSuffix(s.PublicURL, "/") + verifyPath + "?token=" + url.QueryEscape(token)
}

func (s *AuthService) sendVerification(ctx context.Context, user domain.User, token string) {
	log := slogx.FromContext(ctx)
	if s.Mailer == nil {
		log.Warn("no mailer configured, verification email not sent", slog.Int64("user_id", user.ID))
		return
	}

	msg, err := mailx.VerificationMessage(user.Email, mailx.Verification{
		Username:  user.Username,
		Link:      s.verificationLink(token),
		ExpiresIn: humanDuration(s.verificationTTL()),
	})
	if err == nil {
		err = s.Mailer.Send(ctx, msg)
	}
	if err != nil {
		log.Error("failed to send verification email", slog.Int64("user_id", user.ID), slog.Any("error", err))
	}
}

func humanDuration(d time.Duration) string {
	if h := int(d.Hours()); h >= 1 && d%time.Hour == 0 {
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return d.String()
}

// VerifyEmail consumes a verification token. Unknown and already used
// tokens are both invalid.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (VerifyResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return VerifyInvalid, nil
	}

	user, err := s.Store.Users().GetUserByVerificationHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return VerifyInvalid, nil
		}
		return "", err
	}

	if user.VerificationExpiresAt == nil || s.Now.now().After(*user.VerificationExpiresAt) {
		return VerifyExpired, nil
	}

	if err := s.Store.Users().MarkEmailVerified(ctx, user.ID); err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Info("email verified", slog.Int64("user_id", user.ID))
	return VerifySuccess, nil
}

// ResendVerification issues a fresh token when email belongs to an
// unverified account. It never reports whether the address exists.
func (s *AuthService) ResendVerification(ctx context.Context, email string) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to look up user for resend", slog.Any("error", err))
		}
		return
	}
	if user.EmailVerified {
		return
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate verification token", slog.Any("error", err))
		return
	}

	expiresAt := s.Now.now().Add(s.verificationTTL())
	if err := s.Store.Users().SetVerificationToken(ctx, user.ID, cryptox.FingerprintToken(token), expiresAt); err != nil {
		log.Error("failed to store verification token", slog.Int64("user_id", user.ID), slog.Any("error", err))
		return
	}

	s.sendVerification(ctx, user, token)
}

// Login checks credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login failed", slog.String("username", user.Username))
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !user.EmailVerified {
		return LoginResult{}, ErrEmailNotVerified
	}

	ttl := s.accessTTL()
	tok, err := s.Signer.Sign(jwtx.NewAccessClaims(user.Username, user.ID, ttl, "", s.Now.now()))
	if err != nil {
		log.Error("failed to sign access token", slog.Any("error", err))
		return LoginResult{}, err
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return LoginResult{AccessToken: tok, ExpiresIn: ttl, User: user}, nil
}

// CurrentUser loads the account behind an authenticated request.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}
