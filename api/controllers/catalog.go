package controllers

import (
	"net/http"

	"github.com/adamacoulibaly/orderdesk/api/responses"
	"github.com/adamacoulibaly/orderdesk/internal/catalog"
	"github.com/adamacoulibaly/orderdesk/pkg/logger"
)

type CatalogController struct {
	catalog catalog.Fetcher
	logg    *logger.Logger
}

func NewCatalogController(fetcher catalog.Fetcher, logg *logger.Logger) *CatalogController {
	return &CatalogController{catalog: fetcher, logg: logg}
}

// ListProducts returns the normalized catalog. An unreachable upstream
// yields an empty list, not an error: product pickers render empty instead
// of breaking the page.
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.FetchCatalog(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}
	responses.WriteSuccess(w, products)
}
