package common

import (
	"database/sql"
	"net"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"veritime.com/veritime/attendance/policy"
	"veritime.com/veritime/core"
	"veritime.com/veritime/infrastructure/devops"
)

// Handler carries the shared dependencies for tenant-scoped endpoints: the
// schema-per-tenant pool and the tenant policy loader.
type Handler struct {
	Dm *core.DatabaseManager
}

func GetHostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// Tenant resolves the tenant name for a request from its host.
func (h *Handler) Tenant(c *gin.Context) string {
	return core.ResolveTenant(GetHostname(c.Request.Host))
}

// GetDB opens a tenant-scoped gorm handle for the request's host.
func (h *Handler) GetDB(c *gin.Context) (*gorm.DB, *sql.Conn, error) {
	hostname := GetHostname(c.Request.Host)
	return h.Dm.GetDB(c.Request.Context(), hostname)
}

// Policy loads the tenant's attendance policy with defaults applied.
func (h *Handler) Policy(c *gin.Context) (policy.TenantPolicy, error) {
	return devops.LoadTenantPolicy(c.Request.Context(), h.Tenant(c))
}
