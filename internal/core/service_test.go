package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonMunkholm/inventory/internal/config"
	"github.com/JonMunkholm/inventory/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	provider, err := database.NewProvider(config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		Path:           filepath.Join(t.TempDir(), "inventory.db"),
		BusyTimeout:    time.Second,
		ConnectTimeout: time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema(context.Background(), provider))

	svc, err := NewService(provider)
	require.NoError(t, err)
	return svc
}

func seedProducts(t *testing.T, svc *Service, products ...Product) []Product {
	t.Helper()
	out := make([]Product, 0, len(products))
	for _, p := range products {
		n, err := svc.InsertProduct(context.Background(), &p)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		out = append(out, p)
	}
	return out
}

func TestNewService_NilProvider(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)
}

func TestInsertProduct_RoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p := Product{Name: "Widget", Category: "Tools", Price: 9.99, Quantity: 5, Description: "Blue"}
	n, err := svc.InsertProduct(ctx, &p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Greater(t, p.ID, int64(0))

	got, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p, got[0])
}

func TestInsertProduct_AlreadyPersisted(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p := Product{Name: "Widget", Price: 1, Quantity: 1}
	_, err := svc.InsertProduct(ctx, &p)
	require.NoError(t, err)
	id := p.ID

	n, err := svc.InsertProduct(ctx, &p)
	assert.ErrorIs(t, err, ErrAlreadyPersisted)
	assert.EqualValues(t, 0, n)
	assert.Equal(t, id, p.ID)

	count, err := svc.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestInsertProduct_DistinctIDs(t *testing.T) {
	svc := newTestService(t)
	seeded := seedProducts(t, svc,
		Product{Name: "A", Price: 1, Quantity: 1},
		Product{Name: "A", Price: 1, Quantity: 1},
	)
	assert.NotEqual(t, seeded[0].ID, seeded[1].ID)
}

func TestInsertBuyer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	b := Buyer{Name: "Jane Doe", Email: "jane@x.com", Phone: "555", Address: "1 Main"}
	n, err := svc.InsertBuyer(ctx, &b)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Greater(t, b.ID, int64(0))

	_, err = svc.InsertBuyer(ctx, &b)
	assert.ErrorIs(t, err, ErrAlreadyPersisted)

	count, err := svc.CountBuyers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestAddBuyer_Scenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	b, err := svc.AddBuyer(ctx, BuyerInput{Name: "Jane Doe", Email: "jane@x.com", Phone: "555", Address: "1 Main"})
	require.NoError(t, err)
	assert.True(t, b.Persisted())

	_, err = svc.AddBuyer(ctx, BuyerInput{Name: "John", Email: "john", Phone: "1", Address: "2"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, FieldEmail, ve.Field)
	assert.Equal(t, ReasonInvalidEmail, ve.Reason)

	count, err := svc.CountBuyers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "rejected buyer must not reach the store")
}

func TestAddProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.AddProduct(ctx, ProductInput{Name: " Widget ", Price: "2.50", Quantity: "4"}, ProductRules{})
	require.NoError(t, err)
	assert.True(t, p.Persisted())
	assert.Equal(t, "Widget", p.Name)

	_, err = svc.AddProduct(ctx, ProductInput{Name: "Gadget", Price: "2.50", Quantity: "4"}, ProductRules{RequireCategory: true})
	assert.True(t, IsValidation(err))

	_, err = svc.AddProduct(ctx, ProductInput{Name: "Gadget", Price: "-1", Quantity: "4"}, ProductRules{})
	assert.True(t, IsValidation(err))

	count, err := svc.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestListProducts_Filter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seedProducts(t, svc,
		Product{Name: "Widget", Category: "Tools", Price: 1, Quantity: 1},
		Product{Name: "Gadget", Category: "toolbox", Price: 2, Quantity: 2},
		Product{Name: "Apple", Category: "Food", Price: 3, Quantity: 3},
	)

	tests := []struct {
		filter string
		want   []string
	}{
		{"", []string{"Apple", "Gadget", "Widget"}},
		{"   ", []string{"Apple", "Gadget", "Widget"}},
		{"widget", []string{"Widget"}},
		{"WIDGET", []string{"Widget"}},
		{"tool", []string{"Gadget", "Widget"}},
		{" tool ", []string{"Gadget", "Widget"}},
		{"dge", []string{"Gadget", "Widget"}},
		{"gad", []string{"Gadget"}},
		{"zzz", []string{}},
		{"%", []string{}},
		{"_", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got, err := svc.ListProducts(ctx, tt.filter)
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestListProducts_NameOrCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seedProducts(t, svc,
		Product{Name: "Widget A", Category: "Tools", Price: 1, Quantity: 1},
		Product{Name: "Gadget B", Category: "Electronics", Price: 2, Quantity: 2},
	)

	tests := []struct {
		filter string
		want   []string
	}{
		{"widget", []string{"Widget A"}},
		{"tool", []string{"Widget A"}},
		{"electron", []string{"Gadget B"}},
		{"", []string{"Gadget B", "Widget A"}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got, err := svc.ListProducts(ctx, tt.filter)
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestListProducts_NullColumns(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	conn, err := svc.provider.Open(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, "INSERT INTO products (name) VALUES (?)", "Bare")
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	got, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bare", got[0].Name)
	assert.Empty(t, got[0].Category)
	assert.Zero(t, got[0].Price)
	assert.Zero(t, got[0].Quantity)
}

func TestListProducts_Restartable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seedProducts(t, svc, Product{Name: "One", Price: 1, Quantity: 1})

	first, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	seedProducts(t, svc, Product{Name: "Two", Price: 1, Quantity: 1})
	second, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
}

func TestDeleteProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seeded := seedProducts(t, svc,
		Product{Name: "Keep", Price: 1, Quantity: 1},
		Product{Name: "Drop", Price: 1, Quantity: 1},
	)

	n, err := svc.DeleteProduct(ctx, seeded[1].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = svc.DeleteProduct(ctx, seeded[1].ID)
	require.NoError(t, err, "deleting a missing row is not an error")
	assert.EqualValues(t, 0, n)

	n, err = svc.DeleteProduct(ctx, 999_999)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	got, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Keep", got[0].Name)
}

func TestStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seedProducts(t, svc, Product{Name: "A", Price: 1, Quantity: 1}, Product{Name: "B", Price: 1, Quantity: 1})
	_, err := svc.AddBuyer(ctx, BuyerInput{Name: "Jane", Email: "j@x", Phone: "1", Address: "2"})
	require.NoError(t, err)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Products: 2, Buyers: 1}, st)
}

func TestStorageFailure_WrapsWithRef(t *testing.T) {
	provider, err := database.NewProvider(config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		Path:           filepath.Join(t.TempDir(), "missing", "inventory.db"),
		ConnectTimeout: time.Second,
	})
	require.NoError(t, err)
	svc, err := NewService(provider)
	require.NoError(t, err)

	_, err = svc.ListProducts(context.Background(), "")
	var se *StorageError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, "list products", se.Op)
	assert.NotEqual(t, [16]byte{}, [16]byte(se.Ref))
	assert.Equal(t, database.KindUnavailable, se.Kind())

	assert.Error(t, svc.Ping(context.Background()))
}

func TestSchemaMissing_IsStorageError(t *testing.T) {
	provider, err := database.NewProvider(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "inventory.db"),
	})
	require.NoError(t, err)
	svc, err := NewService(provider)
	require.NoError(t, err)

	_, err = svc.AddProduct(context.Background(), ProductInput{Name: "x", Price: "1", Quantity: "1"}, ProductRules{})
	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "DB010", MapError(err).Code)
}

func TestAddProduct_WritesBusy(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	limiter := NewWriteLimiter(1, 20*time.Millisecond)
	svc.SetWriteLimiter(limiter)
	require.NoError(t, limiter.Acquire(ctx))

	_, err := svc.AddProduct(ctx, ProductInput{Name: "Widget", Price: "1", Quantity: "1"}, ProductRules{})
	require.ErrorIs(t, err, ErrWritesBusy)
	assert.Equal(t, "DB007", MapError(err).Code)

	limiter.Release()
	_, err = svc.AddProduct(ctx, ProductInput{Name: "Widget", Price: "1", Quantity: "1"}, ProductRules{})
	require.NoError(t, err)
	assert.Zero(t, limiter.ActiveCount(), "slot is freed after the write")
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%widget%", likePattern("Widget"))
	assert.Equal(t, `%50\%%`, likePattern("50%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}
