package orderstore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamacoulibaly/orderdesk/pkg/config"
	"github.com/adamacoulibaly/orderdesk/pkg/db"
	pkgerrors "github.com/adamacoulibaly/orderdesk/pkg/errors"
)

func openTestDB(t *testing.T) *db.Client {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    ":memory:",
	}, nil)
	require.NoError(t, err, "open test db")
	require.NoError(t, Migrate(client.DB()), "migrate")
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func sampleOrder() *OrderRecord {
	return &OrderRecord{
		ClientName:  "Awa",
		ClientPhone: "+22370000000",
		Items: []ItemRecord{
			{ProductID: "1", ProductName: "Tomate", Quantity: 2, UnitPrice: decimal.NewFromInt(1200)},
			{ProductID: "2", ProductName: "Oignon", Quantity: 1, UnitPrice: decimal.NewFromInt(500)},
		},
	}
}

func TestRepositoryOrderFlow(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)
	require.NotZero(t, created.ID, "expected an order id to be generated")
	assert.True(t, created.TotalAmount.Equal(decimal.NewFromInt(2900)),
		"expected computed total 2900, got %s", created.TotalAmount)

	fetched, err := repo.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Items, 2)

	all, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.DeleteOrder(ctx, created.ID))
	_, err = repo.GetOrder(ctx, created.ID)
	require.Error(t, err, "expected the deleted order to be gone")
}

func TestRepositoryReplaceOrderDropsOldItems(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)

	replacement := &OrderRecord{
		ClientName:  "Awa",
		ClientPhone: "+22370000000",
		Items: []ItemRecord{
			{ProductID: "3", ProductName: "Banane", Quantity: 4, UnitPrice: decimal.NewFromInt(500)},
		},
	}

	updated, err := repo.ReplaceOrder(ctx, created.ID, replacement)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1, "expected the old items to be dropped")
	assert.Equal(t, "Banane", updated.Items[0].ProductName)
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(2000)),
		"expected recomputed total 2000, got %s", updated.TotalAmount)

	var count int64
	require.NoError(t, repo.client.DB().Model(&ItemRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "orphaned item rows must be deleted")
}

func TestRepositoryGetOrderNotFound(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	_, err := repo.GetOrder(context.Background(), 99)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRepositoryDeleteMissingOrder(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	err := repo.DeleteOrder(context.Background(), 42)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
