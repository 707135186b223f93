package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/adamacoulibaly/orderdesk/api/responses"
	"github.com/adamacoulibaly/orderdesk/api/validators"
	"github.com/adamacoulibaly/orderdesk/internal/orders"
	pkgerrors "github.com/adamacoulibaly/orderdesk/pkg/errors"
	"github.com/adamacoulibaly/orderdesk/pkg/logger"
)

type OrdersController struct {
	orders orders.API
	logg   *logger.Logger
}

func NewOrdersController(api orders.API, logg *logger.Logger) *OrdersController {
	return &OrdersController{orders: api, logg: logg}
}

type orderItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type orderRequest struct {
	ClientName  string             `json:"client_name" validate:"required"`
	ClientPhone string             `json:"client_phone" validate:"required"`
	Items       []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (req orderRequest) toDraft() orders.Draft {
	draft := orders.Draft{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Items:       make([]orders.OrderItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		draft.Items = append(draft.Items, orders.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return draft
}

func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	all, err := c.orders.List(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if all == nil {
		all = []orders.Order{}
	}
	responses.WriteSuccess(w, all)
}

func (c *OrdersController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	order, err := c.orders.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, order)
}

func (c *OrdersController) Create(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	created, err := c.orders.Create(r.Context(), req.toDraft())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, created)
}

func (c *OrdersController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	var req orderRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	updated, err := c.orders.Update(r.Context(), id, req.toDraft())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, updated)
}

func (c *OrdersController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if err := c.orders.Delete(r.Context(), id); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]string{"status": "deleted"})
}

func orderID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "orderID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "order id must be a positive integer")
	}
	return id, nil
}
