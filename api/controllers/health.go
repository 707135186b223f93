package controllers

import (
	"context"
	"net/http"

	"github.com/adamacoulibaly/orderdesk/api/responses"
	pkgerrors "github.com/adamacoulibaly/orderdesk/pkg/errors"
	"github.com/adamacoulibaly/orderdesk/pkg/logger"
)

// Pinger is the readiness probe dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController answers liveness and readiness probes. Readiness fails
// when the cart store is unreachable; the catalog and order store are not
// probed because the service degrades rather than dies without them.
type HealthController struct {
	redis Pinger
	logg  *logger.Logger
}

func NewHealthController(redis Pinger, logg *logger.Logger) *HealthController {
	return &HealthController{redis: redis, logg: logg}
}

func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, map[string]string{"status": "ok"})
}

func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	if c.redis != nil {
		if err := c.redis.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), c.logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart store unreachable"))
			return
		}
	}
	responses.WriteSuccess(w, map[string]string{"status": "ready"})
}
