package cart

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storefront/internal/database"
	"github.com/MikeMC777/storefront/internal/migrate"
)

func newTestRepo(t *testing.T) (*PGRepo, string) {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}
	ctx := context.Background()
	log, _ := test.NewNullLogger()
	require.NoError(t, migrate.UpDSN(ctx, dsn, log))

	pool, err := database.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewPGRepo(pool), seedUser(t, pool)
}

func seedUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (id, username, email, password_hash, role)
		VALUES ($1, $2, $3, 'x', 'user')
	`, id, "cart-"+id, id+"@example.com")
	require.NoError(t, err)
	return id
}

func line(userID, productID string, qty int) *Item {
	return &Item{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Name:      "Mug",
		Price:     decimal.RequireFromString("9.50"),
		Quantity:  qty,
	}
}

func TestAdd_SequentialAddsMerge(t *testing.T) {
	repo, userID := newTestRepo(t)
	ctx := context.Background()
	productID := uuid.NewString()

	inserted, err := repo.Add(ctx, line(userID, productID, 2))
	require.NoError(t, err)
	assert.True(t, inserted)

	second := line(userID, productID, 3)
	inserted, err = repo.Add(ctx, second)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, 5, second.Quantity)

	items, err := repo.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("9.5")))
}

func TestAdd_IncrementPastIntegerLimit(t *testing.T) {
	repo, userID := newTestRepo(t)
	ctx := context.Background()
	productID := uuid.NewString()

	_, err := repo.Add(ctx, line(userID, productID, database.MaxCount))
	require.NoError(t, err)

	_, err = repo.Add(ctx, line(userID, productID, 1))
	assert.ErrorIs(t, err, ErrQuantityTooLarge)

	items, err := repo.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, database.MaxCount, items[0].Quantity)
}

func TestAdd_ConcurrentFirstAddsProduceOneLine(t *testing.T) {
	repo, userID := newTestRepo(t)
	ctx := context.Background()
	productID := uuid.NewString()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Add(ctx, line(userID, productID, 1))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := repo.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 8, items[0].Quantity)
}

func TestUpdateQuantity_ScopedByOwner(t *testing.T) {
	repo, userID := newTestRepo(t)
	ctx := context.Background()

	it := line(userID, uuid.NewString(), 1)
	_, err := repo.Add(ctx, it)
	require.NoError(t, err)

	got, err := repo.UpdateQuantity(ctx, userID, it.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)

	_, err = repo.UpdateQuantity(ctx, uuid.NewString(), it.ID, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveAndClear_Idempotent(t *testing.T) {
	repo, userID := newTestRepo(t)
	ctx := context.Background()

	a := line(userID, uuid.NewString(), 1)
	b := line(userID, uuid.NewString(), 2)
	_, err := repo.Add(ctx, a)
	require.NoError(t, err)
	_, err = repo.Add(ctx, b)
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, userID, a.ID))
	require.NoError(t, repo.Remove(ctx, userID, a.ID))

	items, err := repo.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, repo.Clear(ctx, userID))
	require.NoError(t, repo.Clear(ctx, userID))
	items, err = repo.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
