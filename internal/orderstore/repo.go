package orderstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/adamacoulibaly/orderdesk/pkg/db"
	pkgerrors "github.com/adamacoulibaly/orderdesk/pkg/errors"
)

// Repository owns order persistence for the reference store.
type Repository struct {
	client *db.Client
}

func NewRepository(client *db.Client) *Repository {
	return &Repository{client: client}
}

// Ping reports whether the datasource is reachable. Surfaced on the
// store's readiness endpoint.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// ListOrders returns all orders with their items, newest first.
func (r *Repository) ListOrders(ctx context.Context) ([]OrderRecord, error) {
	var rows []OrderRecord
	err := r.client.DB().WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

func (r *Repository) GetOrder(ctx context.Context, id int64) (*OrderRecord, error) {
	var row OrderRecord
	err := r.client.DB().WithContext(ctx).
		Preload("Items").
		First(&row, "id = ?", id).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order #%d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("get order #%d", id))
	}
	return &row, nil
}

// CreateOrder inserts the order and its items, recomputing the total first.
func (r *Repository) CreateOrder(ctx context.Context, order *OrderRecord) (*OrderRecord, error) {
	order.computeTotal()
	if err := r.client.DB().WithContext(ctx).Create(order).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return order, nil
}

// ReplaceOrder overwrites the order's client fields and items wholesale. The
// update path is full-replace: items absent from the payload are dropped.
func (r *Repository) ReplaceOrder(ctx context.Context, id int64, order *OrderRecord) (*OrderRecord, error) {
	existing, err := r.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	order.ID = existing.ID
	order.CreatedAt = existing.CreatedAt
	for i := range order.Items {
		order.Items[i].ID = 0
		order.Items[i].OrderID = existing.ID
	}
	order.computeTotal()

	err = r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&ItemRecord{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("replace order #%d", id))
	}
	return r.GetOrder(ctx, id)
}

func (r *Repository) DeleteOrder(ctx context.Context, id int64) error {
	if _, err := r.GetOrder(ctx, id); err != nil {
		return err
	}
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&ItemRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&OrderRecord{}, "id = ?", id).Error
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("delete order #%d", id))
	}
	return nil
}
