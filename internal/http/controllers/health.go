package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/telemart/internal/http/helpers"
)

// HealthController responde el liveness/readiness del proceso.
type HealthController struct {
	// ping verifica la dependencia de persistencia; nil con el driver memory.
	ping    func(ctx context.Context) error
	started time.Time
}

// NewHealthController arma el controller de health. ping puede ser nil.
func NewHealthController(ping func(ctx context.Context) error) *HealthController {
	return &HealthController{ping: ping, started: time.Now()}
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// Check maneja GET /healthz.
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	resp := healthResponse{Status: "ok", Uptime: time.Since(c.started).Round(time.Second).String()}

	if c.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := c.ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			resp.Status = "degraded"
		}
	}

	helpers.WriteJSON(w, status, resp)
}
