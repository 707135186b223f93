package cart

import (
	"context"
	"fmt"

	"github.com/adamacoulibaly/orderdesk/internal/catalog"
	"github.com/adamacoulibaly/orderdesk/internal/orders"
	pkgerrors "github.com/adamacoulibaly/orderdesk/pkg/errors"
	"github.com/adamacoulibaly/orderdesk/pkg/logger"
)

// Service drives the order-composition flow: carts are created and edited
// server-side, and only a checkout touches the order store.
type Service interface {
	CreateCart(ctx context.Context) (*Cart, error)
	CreateCartFromOrder(ctx context.Context, orderID int64) (*Cart, error)
	GetCart(ctx context.Context, cartID string) (*Cart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, cartID, itemKey string) (*Cart, error)
	Checkout(ctx context.Context, cartID, clientName, clientPhone string) (*orders.Order, error)
}

type service struct {
	store        *Store
	catalog      catalog.Fetcher
	orders       orders.API
	logg         *logger.Logger
	fallbackUnit string
}

func NewService(store *Store, catalogClient catalog.Fetcher, orderClient orders.API, logg *logger.Logger, fallbackUnit string) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	if catalogClient == nil {
		return nil, fmt.Errorf("catalog client is required")
	}
	if orderClient == nil {
		return nil, fmt.Errorf("order client is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		store:        store,
		catalog:      catalogClient,
		orders:       orderClient,
		logg:         logg,
		fallbackUnit: fallbackUnit,
	}, nil
}

func (s *service) CreateCart(ctx context.Context) (*Cart, error) {
	cart := New()
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// CreateCartFromOrder loads the order and seeds a cart with copies of its
// items, so the order can be edited and resubmitted without mutating it
// in place.
func (s *service) CreateCartFromOrder(ctx context.Context, orderID int64) (*Cart, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	cart := NewFromOrder(*order, s.fallbackUnit)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	return s.store.Load(ctx, cartID)
}

func (s *service) AddItem(ctx context.Context, cartID, productID string, quantity int) (*Cart, error) {
	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := cart.AddOrIncrement(product, quantity); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) RemoveItem(ctx context.Context, cartID, itemKey string) (*Cart, error) {
	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.Remove(itemKey)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Checkout submits the cart as an order. A cart seeded from an existing order
// replaces that order; any other cart creates a new one. The cart is only
// discarded after the order store accepted the submission, so a failed
// checkout leaves the lines intact for another attempt.
func (s *service) Checkout(ctx context.Context, cartID, clientName, clientPhone string) (*orders.Order, error) {
	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	draft, err := cart.ToOrderDraft(clientName, clientPhone)
	if err != nil {
		return nil, err
	}

	var order *orders.Order
	if cart.OrderID != 0 {
		order, err = s.orders.Update(ctx, cart.OrderID, draft)
	} else {
		order, err = s.orders.Create(ctx, draft)
	}
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, cartID); err != nil {
		// The order went through; a stale cart expires on its own.
		s.logg.Warn(ctx, fmt.Sprintf("failed to discard cart %s after checkout: %v", cartID, err))
	}
	return order, nil
}

func (s *service) resolveProduct(ctx context.Context, productID string) (catalog.Product, error) {
	products, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		return catalog.Product{}, err
	}
	for _, p := range products {
		if p.ID == productID {
			return p, nil
		}
	}
	return catalog.Product{}, pkgerrors.New(pkgerrors.CodeValidation,
		fmt.Sprintf("product %s is not in the catalog", productID))
}
