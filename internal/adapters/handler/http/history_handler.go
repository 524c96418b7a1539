package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/fithub/ledger-engine/internal/core/domain"
	"github.com/fithub/ledger-engine/internal/core/services"
)

type HistoryHandler struct {
	svc    *services.HistoryService
	logger *log.Logger
}

func NewHistoryHandler(svc *services.HistoryService, logger *log.Logger) *HistoryHandler {
	return &HistoryHandler{svc: svc, logger: logger}
}

func (h *HistoryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/users/:user_id/history", h.GetHistory)
}

// GetHistory godoc
// @Summary  Daily totals over a date range
// @Tags     history
// @Produce  json
// @Param    user_id     path      string  true   "User ID"
// @Param    start_date  query     string  false  "YYYY-MM-DD, defaults to end_date minus 6 days"
// @Param    end_date    query     string  false  "YYYY-MM-DD, defaults to today"
// @Success  200         {object}  domain.History
// @Failure  400         {object}  map[string]string
// @Router   /users/{user_id}/history [get]
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	startDate, endDate := h.svc.DefaultRange()
	loc := h.svc.Location()

	var err error
	if s := c.Query("end_date"); s != "" {
		endDate, err = domain.ParseDay(s, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, expected YYYY-MM-DD"})
			return
		}
		startDate = endDate.AddDate(0, 0, -(services.DefaultHistoryDays - 1))
	}

	if s := c.Query("start_date"); s != "" {
		startDate, err = domain.ParseDay(s, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, expected YYYY-MM-DD"})
			return
		}
	}

	history, err := h.svc.GetHistory(c.Request.Context(), domain.HistoryInput{
		UserID:    c.Param("user_id"),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
