package approval

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/telemart/internal/artifacts"
	"github.com/dropDatabas3/telemart/internal/domain/repository"
	"github.com/dropDatabas3/telemart/internal/store/memory"
)

// fakeChannel registra lo que se envió por Telegram.
type fakeChannel struct {
	texts     map[int64][]string // chatID -> mensajes
	documents []string
	requests  []string // seller IDs con botones enviados
	edits     []string
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{texts: make(map[int64][]string)}
}

func (f *fakeChannel) SendText(_ context.Context, chatID int64, text string) error {
	f.texts[chatID] = append(f.texts[chatID], text)
	return nil
}

func (f *fakeChannel) SendDocument(_ context.Context, _ int64, filePath, _ string) error {
	f.documents = append(f.documents, filePath)
	return nil
}

func (f *fakeChannel) SendApprovalRequest(_ context.Context, _ int64, _ string, sellerID string) (int, error) {
	f.requests = append(f.requests, sellerID)
	return len(f.requests), nil
}

func (f *fakeChannel) EditMessageText(_ context.Context, _ int64, _ int, text string) error {
	f.edits = append(f.edits, text)
	return nil
}

type fixture struct {
	store   *memory.Store
	files   *artifacts.Store
	channel *fakeChannel
	svc     *Service
	user    *repository.User
	seller  *repository.Seller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.New()
	files, err := artifacts.NewStore(t.TempDir())
	require.NoError(t, err)
	channel := newFakeChannel()

	user, err := store.Users().Upsert(ctx, repository.UpsertUserInput{TelegramID: "700123", FirstName: "Leo"})
	require.NoError(t, err)

	doc, err := files.Save("dni.pdf", strings.NewReader("doc"))
	require.NoError(t, err)

	seller, err := store.Sellers().Create(ctx, repository.CreateSellerInput{
		UserID:       user.ID,
		Name:         "Leo Store",
		DocumentPath: doc,
	})
	require.NoError(t, err)

	return &fixture{
		store:   store,
		files:   files,
		channel: channel,
		svc:     NewService(store.Sellers(), store.Users(), files, channel, -100500),
		user:    user,
		seller:  seller,
	}
}

func TestSubmitNotifiesAdminChat(t *testing.T) {
	f := newFixture(t)

	f.svc.Submit(context.Background(), f.seller)

	require.Equal(t, []string{f.seller.ID}, f.channel.requests)
	require.Len(t, f.channel.documents, 1)
	require.Equal(t, filepath.Base(f.seller.DocumentPath), filepath.Base(f.channel.documents[0]))
}

func TestApprovePromotesUserAndNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resolved, err := f.svc.Approve(ctx, f.seller.ID)
	require.NoError(t, err)
	require.Equal(t, repository.SellerApproved, resolved.Status)

	// El estado persiste y el usuario quedó promovido a owner.
	got, err := f.store.Sellers().GetByID(ctx, f.seller.ID)
	require.NoError(t, err)
	require.Equal(t, repository.SellerApproved, got.Status)

	u, err := f.store.Users().GetByID(ctx, f.user.ID)
	require.NoError(t, err)
	require.Equal(t, repository.RoleOwner, u.Role)

	// Notificación al chat del solicitante (su telegram_id numérico).
	require.Len(t, f.channel.texts[700123], 1)
}

func TestApproveIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Approve(ctx, f.seller.ID)
	require.NoError(t, err)

	// Segundo operador tocando el mismo botón: sin efectos nuevos.
	_, err = f.svc.Approve(ctx, f.seller.ID)
	require.ErrorIs(t, err, ErrAlreadyResolved)
	require.Len(t, f.channel.texts[700123], 1, "no debe notificar dos veces")
}

func TestRejectDeletesDocumentAndRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.True(t, f.files.Exists(f.seller.DocumentPath))

	resolved, err := f.svc.Reject(ctx, f.seller.ID)
	require.NoError(t, err)
	require.Equal(t, repository.SellerRejected, resolved.Status)

	require.False(t, f.files.Exists(f.seller.DocumentPath), "documento borrado")
	_, err = f.store.Sellers().GetByID(ctx, f.seller.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	// El rol del usuario no cambia en un rechazo.
	u, _ := f.store.Users().GetByID(ctx, f.user.ID)
	require.Equal(t, repository.RoleUser, u.Role)

	// Puede volver a aplicar.
	_, err = f.store.Sellers().Create(ctx, repository.CreateSellerInput{UserID: f.user.ID, Name: "Leo Store v2"})
	require.NoError(t, err)
}

func TestRejectToleratesMissingDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// El archivo desapareció fuera de banda (limpieza manual del directorio).
	require.NoError(t, os.Remove(filepath.Join(f.files.Dir(), f.seller.DocumentPath)))

	_, err := f.svc.Reject(ctx, f.seller.ID)
	require.NoError(t, err)
}

func TestResolveAfterRejectIsAlreadyResolved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Reject(ctx, f.seller.ID)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, f.seller.ID)
	require.ErrorIs(t, err, ErrAlreadyResolved)
	_, err = f.svc.Reject(ctx, f.seller.ID)
	require.ErrorIs(t, err, ErrAlreadyResolved)
}
