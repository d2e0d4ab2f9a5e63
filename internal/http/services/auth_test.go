package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/telemart/internal/auth/otp"
	"github.com/dropDatabas3/telemart/internal/auth/revocation"
	"github.com/dropDatabas3/telemart/internal/auth/token"
	"github.com/dropDatabas3/telemart/internal/cache"
	"github.com/dropDatabas3/telemart/internal/domain/repository"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/store/memory"
)

// fakeSender captura los textos enviados por chat.
type fakeSender struct {
	texts map[int64][]string
}

func newFakeSender() *fakeSender {
	return &fakeSender{texts: map[int64][]string{}}
}

func (f *fakeSender) SendText(_ context.Context, chatID int64, text string) error {
	f.texts[chatID] = append(f.texts[chatID], text)
	return nil
}

var codeRe = regexp.MustCompile(`\d{6}`)

func newAuthFixture(t *testing.T) (*AuthService, *memory.Store, *fakeSender) {
	t.Helper()
	st := memory.New()
	cch := cache.NewMemory("test")
	t.Cleanup(func() { _ = cch.Close() })

	issuer := token.NewIssuer(token.DevSecret)
	sender := newFakeSender()
	svc := NewAuthService(AuthDeps{
		Users:   st.Users(),
		Codes:   otp.NewStore(cch),
		Tokens:  issuer,
		Revoked: revocation.NewRegistry(cch, issuer.RemainingTTL),
		Sender:  sender,
	})
	return svc, st, sender
}

func seedUser(t *testing.T, st *memory.Store, telegramID string) *repository.User {
	t.Helper()
	u, err := st.Users().Upsert(context.Background(), repository.UpsertUserInput{
		TelegramID: telegramID,
		FirstName:  "Marta",
	})
	require.NoError(t, err)
	return u
}

func TestSendOTPUnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	err := svc.SendOTP(context.Background(), "999")
	require.Error(t, err)

	appErr := apperrors.FromError(err)
	require.Equal(t, "USER_NOT_FOUND", appErr.Code)
}

func TestSendOTPDeliversCode(t *testing.T) {
	svc, st, sender := newAuthFixture(t)
	seedUser(t, st, "42")

	require.NoError(t, svc.SendOTP(context.Background(), "42"))

	require.Len(t, sender.texts[42], 1)
	require.Regexp(t, codeRe, sender.texts[42][0])
}

func TestVerifyOTPFullFlow(t *testing.T) {
	svc, st, sender := newAuthFixture(t)
	user := seedUser(t, st, "42")
	ctx := context.Background()

	require.NoError(t, svc.SendOTP(ctx, "42"))
	code := codeRe.FindString(sender.texts[42][0])
	require.NotEmpty(t, code)

	result, err := svc.VerifyOTP(ctx, "42", code)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, user.ID, result.User.ID)
	require.False(t, result.ExpiresAt.IsZero())

	// El código es de un solo uso.
	_, err = svc.VerifyOTP(ctx, "42", code)
	require.Equal(t, "OTP_NOT_REQUESTED", apperrors.FromError(err).Code)
}

func TestVerifyOTPMismatchAllowsRetry(t *testing.T) {
	svc, st, sender := newAuthFixture(t)
	seedUser(t, st, "42")
	ctx := context.Background()

	require.NoError(t, svc.SendOTP(ctx, "42"))
	code := codeRe.FindString(sender.texts[42][0])

	_, err := svc.VerifyOTP(ctx, "42", "000000")
	require.Equal(t, "OTP_MISMATCH", apperrors.FromError(err).Code)

	// El registro sigue vivo: el código correcto todavía entra.
	result, err := svc.VerifyOTP(ctx, "42", code)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
}

func TestVerifyOTPWithoutRequest(t *testing.T) {
	svc, st, _ := newAuthFixture(t)
	seedUser(t, st, "42")

	_, err := svc.VerifyOTP(context.Background(), "42", "123456")
	require.Equal(t, "OTP_NOT_REQUESTED", apperrors.FromError(err).Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, st, sender := newAuthFixture(t)
	seedUser(t, st, "42")
	ctx := context.Background()

	require.NoError(t, svc.SendOTP(ctx, "42"))
	code := codeRe.FindString(sender.texts[42][0])
	result, err := svc.VerifyOTP(ctx, "42", code)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.Token))

	revoked, err := svc.deps.Revoked.IsRevoked(ctx, result.Token)
	require.NoError(t, err)
	require.True(t, revoked)

	// Idempotente.
	require.NoError(t, svc.Logout(ctx, result.Token))
}
