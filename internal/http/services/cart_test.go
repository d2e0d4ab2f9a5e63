package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/telemart/internal/domain/repository"
	apperrors "github.com/dropDatabas3/telemart/internal/http/errors"
	"github.com/dropDatabas3/telemart/internal/store/memory"
)

func newCartFixture(t *testing.T) (*CartService, *repository.Product, string) {
	t.Helper()
	st := memory.New()
	ctx := context.Background()

	owner, err := st.Users().Upsert(ctx, repository.UpsertUserInput{TelegramID: "1", FirstName: "Vendedor"})
	require.NoError(t, err)
	buyer, err := st.Users().Upsert(ctx, repository.UpsertUserInput{TelegramID: "2", FirstName: "Compradora"})
	require.NoError(t, err)

	cat, err := st.Categories().Create(ctx, repository.CreateCategoryInput{UserID: owner.ID, Name: "Bebidas"})
	require.NoError(t, err)
	product, err := st.Products().Create(ctx, repository.CreateProductInput{
		UserID:     owner.ID,
		CategoryID: cat.ID,
		Name:       "Yerba 1kg",
		Stock:      10,
		Price:      1500,
	})
	require.NoError(t, err)

	svc := NewCartService(CartDeps{Carts: st.Carts(), Products: st.Products()})
	return svc, product, buyer.ID
}

func TestCartGetEmpty(t *testing.T) {
	svc, _, buyerID := newCartFixture(t)

	cart, err := svc.Get(context.Background(), buyerID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestCartAddItemSnapshotsPrice(t *testing.T) {
	svc, product, buyerID := newCartFixture(t)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, buyerID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)
	require.Equal(t, 1500.0, cart.Items[0].Price)

	// Agregar de nuevo suma cantidad sobre la misma línea.
	cart, err = svc.AddItem(ctx, buyerID, product.ID, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartAddUnknownProduct(t *testing.T) {
	svc, _, buyerID := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), buyerID, "no-existe", 1)
	require.Equal(t, "PRODUCT_NOT_FOUND", apperrors.FromError(err).Code)
}

func TestCartAddInvalidQuantity(t *testing.T) {
	svc, product, buyerID := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), buyerID, product.ID, 0)
	require.Equal(t, "INVALID_PARAMETER", apperrors.FromError(err).Code)
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	svc, product, buyerID := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, buyerID, product.ID, 2)
	require.NoError(t, err)

	cart, err := svc.SetItemQuantity(ctx, buyerID, product.ID, 0)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestCartSetQuantityMissingLine(t *testing.T) {
	svc, product, buyerID := newCartFixture(t)

	_, err := svc.SetItemQuantity(context.Background(), buyerID, product.ID, 3)
	require.Equal(t, "NOT_FOUND", apperrors.FromError(err).Code)
}

func TestCartClear(t *testing.T) {
	svc, product, buyerID := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, buyerID, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, buyerID))

	cart, err := svc.Get(ctx, buyerID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}
