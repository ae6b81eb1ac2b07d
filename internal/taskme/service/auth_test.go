package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"github.com/aussiebroadwan/taskme/pkg/cryptox"
	"github.com/aussiebroadwan/taskme/pkg/jwtx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc    *AuthService
	store  store.Store
	mailer *fakeMailer
	signer *jwtx.HMAC
	now    *time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	st := newTestStore(t)
	signer, err := jwtx.NewHMAC("HS256", []byte("test-secret-test-secret-test-secret"), "taskme")
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	f := &authFixture{store: st, mailer: &fakeMailer{}, signer: signer, now: &now}
	f.svc = &AuthService{
		Store:           st,
		Hasher:          cryptox.NewPasswordHasher(""),
		Signer:          signer,
		Mailer:          f.mailer,
		AccessTTL:       30 * time.Minute,
		VerificationTTL: 24 * time.Hour,
		PublicURL:       "https://api.taskme.test/",
		Now:             func() time.Time { return *f.now },
	}
	return f
}

func alice() taskmesdk.RegisterRequest {
	return taskmesdk.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "Passw0rd!"}
}

func TestRegisterAndVerify(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	u, err := f.svc.Register(ctx, alice())
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	require.False(t, u.EmailVerified)

	cols, err := f.store.Columns().ListColumns(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, cols, 8)

	msgs := f.mailer.messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "a@x.com", msgs[0].To)
	require.Contains(t, msgs[0].Text, "https://api.taskme.test/api/v1/auth/verify-email?token=")
	require.Contains(t, msgs[0].Text, "24 hours")
	token := tokenFromMessage(t, msgs[0])

	t.Run("duplicate username", func(t *testing.T) {
		req := alice()
		req.Email = "other@x.com"
		_, err := f.svc.Register(ctx, req)
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := alice()
		req.Username = "alice2"
		_, err := f.svc.Register(ctx, req)
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("login before verification", func(t *testing.T) {
		_, err := f.svc.Login(ctx, "alice", "Passw0rd!")
		require.ErrorIs(t, err, ErrEmailNotVerified)
	})

	res, err := f.svc.VerifyEmail(ctx, token)
	require.NoError(t, err)
	require.Equal(t, VerifySuccess, res)

	// token is cleared on success
	res, err = f.svc.VerifyEmail(ctx, token)
	require.NoError(t, err)
	require.Equal(t, VerifyInvalid, res)

	got, err := f.svc.CurrentUser(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.EmailVerified)
	require.Nil(t, got.VerificationTokenHash)
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  taskmesdk.RegisterRequest
		msg  string
	}{
		{"short password", taskmesdk.RegisterRequest{Username: "bob", Email: "b@x.com", Password: "Pw0"}, taskmesdk.PasswordTooShort},
		{"no upper", taskmesdk.RegisterRequest{Username: "bob", Email: "b@x.com", Password: "passw0rd!"}, taskmesdk.PasswordNoUpper},
		{"no digit", taskmesdk.RegisterRequest{Username: "bob", Email: "b@x.com", Password: "Password!"}, taskmesdk.PasswordNoDigit},
		{"short username", taskmesdk.RegisterRequest{Username: "bo", Email: "b@x.com", Password: "Passw0rd!"}, taskmesdk.UsernameLength},
		{"bad email", taskmesdk.RegisterRequest{Username: "bob", Email: "not-an-email", Password: "Passw0rd!"}, taskmesdk.EmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, tt.req)
			require.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			require.Equal(t, tt.msg, ve.Message)
		})
	}

	ids, err := f.store.Users().ListUserIDs(ctx)
	require.NoError(t, err)
	require.Empty(t, ids)
	require.Empty(t, f.mailer.messages())
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.mailer.err = errors.New("smtp down")

	u, err := f.svc.Register(context.Background(), alice())
	require.NoError(t, err)
	require.NotZero(t, u.ID)
}

func TestVerifyEmailExpired(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, alice())
	require.NoError(t, err)
	token := tokenFromMessage(t, f.mailer.messages()[0])

	*f.now = f.now.Add(25 * time.Hour)
	res, err := f.svc.VerifyEmail(ctx, token)
	require.NoError(t, err)
	require.Equal(t, VerifyExpired, res)

	res, err = f.svc.VerifyEmail(ctx, "")
	require.NoError(t, err)
	require.Equal(t, VerifyInvalid, res)

	res, err = f.svc.VerifyEmail(ctx, "made-up")
	require.NoError(t, err)
	require.Equal(t, VerifyInvalid, res)
}

func TestResendVerification(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, alice())
	require.NoError(t, err)
	first := tokenFromMessage(t, f.mailer.messages()[0])

	f.svc.ResendVerification(ctx, "nobody@x.com")
	require.Len(t, f.mailer.messages(), 1)

	f.svc.ResendVerification(ctx, "a@x.com")
	msgs := f.mailer.messages()
	require.Len(t, msgs, 2)
	second := tokenFromMessage(t, msgs[1])
	require.NotEqual(t, first, second)

	// the old token was replaced
	res, err := f.svc.VerifyEmail(ctx, first)
	require.NoError(t, err)
	require.Equal(t, VerifyInvalid, res)

	res, err = f.svc.VerifyEmail(ctx, second)
	require.NoError(t, err)
	require.Equal(t, VerifySuccess, res)

	// verified accounts get nothing
	f.svc.ResendVerification(ctx, "a@x.com")
	require.Len(t, f.mailer.messages(), 2)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, alice())
	require.NoError(t, err)
	res, err := f.svc.VerifyEmail(ctx, tokenFromMessage(t, f.mailer.messages()[0]))
	require.NoError(t, err)
	require.Equal(t, VerifySuccess, res)

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, "alice", "Wrong0ne!")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.Login(ctx, "mallory", "Passw0rd!")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success", func(t *testing.T) {
		*f.now = time.Now().UTC()

		out, err := f.svc.Login(ctx, "alice", "Passw0rd!")
		require.NoError(t, err)
		require.Equal(t, 30*time.Minute, out.ExpiresIn)
		require.Equal(t, "alice", out.User.Username)
		require.Equal(t, 3, len(strings.Split(out.AccessToken, ".")))

		claims, err := f.signer.Verify(out.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Subject)
		require.Equal(t, out.User.ID, claims.UserID)
		require.Equal(t, "taskme", claims.Issuer)
	})
}

func TestCurrentUserMissing(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.CurrentUser(context.Background(), 999)
	require.ErrorIs(t, err, ErrUserNotFound)
}
