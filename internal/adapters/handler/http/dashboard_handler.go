package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/fithub/ledger-engine/internal/core/services"
)

type DashboardHandler struct {
	svc    *services.DashboardService
	logger *log.Logger
}

func NewDashboardHandler(svc *services.DashboardService, logger *log.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/users/:user_id/dashboard", h.GetDashboard)
}

// GetDashboard godoc
// @Summary  Streak and today's totals
// @Tags     dashboard
// @Produce  json
// @Param    user_id  path      string  true  "User ID"
// @Success  200      {object}  domain.Dashboard
// @Failure  503      {object}  map[string]string
// @Router   /users/{user_id}/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dash, err := h.svc.GetTodayDashboard(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}
