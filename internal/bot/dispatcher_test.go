package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/telemart/internal/approval"
	"github.com/dropDatabas3/telemart/internal/artifacts"
	"github.com/dropDatabas3/telemart/internal/domain/repository"
	"github.com/dropDatabas3/telemart/internal/store/memory"
)

func newDispatcher(t *testing.T) (*Dispatcher, *memory.Store) {
	t.Helper()
	store := memory.New()
	files, err := artifacts.NewStore(t.TempDir())
	require.NoError(t, err)
	svc := approval.NewService(store.Sellers(), store.Users(), files, Noop{}, -100500)
	return NewDispatcher(store.Users(), svc), store
}

func TestHandleStartCreatesUser(t *testing.T) {
	d, store := newDispatcher(t)
	ctx := context.Background()

	welcome, err := d.HandleStart(ctx, Profile{
		TelegramID: "42",
		ChatID:     42,
		FirstName:  "Marta",
		LastName:   "Díaz",
		Username:   "martad",
	})
	require.NoError(t, err)
	require.True(t, strings.Contains(welcome, "Marta Díaz"))

	u, err := store.Users().GetByTelegramID(ctx, "42")
	require.NoError(t, err)
	require.Equal(t, repository.RoleUser, u.Role)
}

func TestHandleStartResyncKeepsRole(t *testing.T) {
	d, store := newDispatcher(t)
	ctx := context.Background()

	_, err := d.HandleStart(ctx, Profile{TelegramID: "42", FirstName: "Marta"})
	require.NoError(t, err)
	u, _ := store.Users().GetByTelegramID(ctx, "42")
	require.NoError(t, store.Users().UpdateRole(ctx, u.ID, repository.RoleOwner))

	_, err = d.HandleStart(ctx, Profile{TelegramID: "42", FirstName: "Marta", Username: "nueva"})
	require.NoError(t, err)

	u, _ = store.Users().GetByTelegramID(ctx, "42")
	require.Equal(t, repository.RoleOwner, u.Role)
	require.Equal(t, "nueva", u.Username)
}

func TestHandleCallbackApprove(t *testing.T) {
	d, store := newDispatcher(t)
	ctx := context.Background()

	u, _ := store.Users().Upsert(ctx, repository.UpsertUserInput{TelegramID: "42", FirstName: "Marta"})
	seller, _ := store.Sellers().Create(ctx, repository.CreateSellerInput{UserID: u.ID, Name: "Tienda M"})

	edited, err := d.HandleCallback(ctx, Callback{Data: "approve:" + seller.ID, HasText: true})
	require.NoError(t, err)
	require.Contains(t, edited, "aprobada")

	got, _ := store.Sellers().GetByID(ctx, seller.ID)
	require.Equal(t, repository.SellerApproved, got.Status)

	// El segundo toque del botón informa que ya está resuelta.
	edited, err = d.HandleCallback(ctx, Callback{Data: "approve:" + seller.ID, HasText: true})
	require.NoError(t, err)
	require.Contains(t, edited, "ya fue resuelta")
}

func TestHandleCallbackReject(t *testing.T) {
	d, store := newDispatcher(t)
	ctx := context.Background()

	u, _ := store.Users().Upsert(ctx, repository.UpsertUserInput{TelegramID: "42", FirstName: "Marta"})
	seller, _ := store.Sellers().Create(ctx, repository.CreateSellerInput{UserID: u.ID, Name: "Tienda M"})

	edited, err := d.HandleCallback(ctx, Callback{Data: "reject:" + seller.ID, HasText: true})
	require.NoError(t, err)
	require.Contains(t, edited, "rechazada")

	_, err = store.Sellers().GetByID(ctx, seller.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestHandleCallbackIgnoresUnknownData(t *testing.T) {
	d, _ := newDispatcher(t)

	for _, data := range []string{"", "approve", "ban:xyz", "noise"} {
		edited, err := d.HandleCallback(context.Background(), Callback{Data: data})
		require.NoError(t, err)
		require.Empty(t, edited)
	}
}
