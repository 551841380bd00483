package cafekioskserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthAPI reports process and dependency liveness.
type HealthAPI struct {
	checks map[string]func(ctx context.Context) error
}

// NewHealthAPI creates a HealthAPI running the named checks on every probe.
func NewHealthAPI(checks map[string]func(ctx context.Context) error) HealthAPI {
	return HealthAPI{checks: checks}
}

// Get /healthz
func (api *HealthAPI) Healthz(c *gin.Context) {
	status := http.StatusOK
	results := make(map[string]string, len(api.checks))
	for name, check := range api.checks {
		if check == nil {
			continue
		}
		if err := check(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}
	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "checks": results})
}
