package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/adamacoulibaly/orderdesk/api/responses"
	"github.com/adamacoulibaly/orderdesk/api/validators"
	"github.com/adamacoulibaly/orderdesk/internal/cart"
	pkgerrors "github.com/adamacoulibaly/orderdesk/pkg/errors"
	"github.com/adamacoulibaly/orderdesk/pkg/logger"
)

type CartsController struct {
	carts cart.Service
	logg  *logger.Logger
}

func NewCartsController(service cart.Service, logg *logger.Logger) *CartsController {
	return &CartsController{carts: service, logg: logg}
}

// cartView is the cart as the client sees it, with the total computed
// server-side on every render.
type cartView struct {
	ID      string          `json:"id"`
	OrderID int64           `json:"order_id,omitempty"`
	Lines   []cart.Line     `json:"lines"`
	Total   decimal.Decimal `json:"total"`
}

func viewOf(c *cart.Cart) cartView {
	return cartView{
		ID:      c.ID,
		OrderID: c.OrderID,
		Lines:   c.Lines,
		Total:   c.Total(),
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type checkoutRequest struct {
	ClientName  string `json:"client_name" validate:"required"`
	ClientPhone string `json:"client_phone" validate:"required"`
}

// Create opens a new draft cart. With ?from_order=<id> the cart is seeded
// from that order's items for edit-and-resubmit.
func (c *CartsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if raw := strings.TrimSpace(r.URL.Query().Get("from_order")); raw != "" {
		orderID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || orderID < 1 {
			responses.WriteError(ctx, c.logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "from_order must be a positive integer"))
			return
		}
		created, err := c.carts.CreateCartFromOrder(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, c.logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, viewOf(created))
		return
	}

	created, err := c.carts.CreateCart(ctx)
	if err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, viewOf(created))
}

func (c *CartsController) Get(w http.ResponseWriter, r *http.Request) {
	found, err := c.carts.GetCart(r.Context(), chi.URLParam(r, "cartID"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, viewOf(found))
}

func (c *CartsController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	updated, err := c.carts.AddItem(r.Context(), chi.URLParam(r, "cartID"), req.ProductID, req.Quantity)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, viewOf(updated))
}

func (c *CartsController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	updated, err := c.carts.RemoveItem(r.Context(),
		chi.URLParam(r, "cartID"), chi.URLParam(r, "itemKey"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, viewOf(updated))
}

func (c *CartsController) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	order, err := c.carts.Checkout(r.Context(),
		chi.URLParam(r, "cartID"), req.ClientName, req.ClientPhone)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, order)
}
