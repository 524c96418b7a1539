package http

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/fithub/ledger-engine/internal/core/domain"
	"github.com/fithub/ledger-engine/internal/core/services"
)

type LedgerHandler struct {
	svc    *services.LedgerService
	logger *log.Logger
}

func NewLedgerHandler(svc *services.LedgerService, logger *log.Logger) *LedgerHandler {
	return &LedgerHandler{svc: svc, logger: logger}
}

func (h *LedgerHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/log/meal", h.LogMeal)
	r.POST("/log/water", h.LogWater)
	r.GET("/users/:user_id/logs/today", h.TodayDetail)
}

// Pointers tell a missing number apart from an explicit zero.
type logMealRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	MealName string `json:"meal_name"`
	Calories *int   `json:"calories" binding:"required"`
}

type logWaterRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Amount *int   `json:"amount" binding:"required"`
}

type foodLogResponse struct {
	ID        string    `json:"id"`
	MealName  string    `json:"meal_name"`
	Calories  int       `json:"calories"`
	Timestamp time.Time `json:"timestamp"`
}

func toFoodLogResponse(e *domain.FoodLogEntry) foodLogResponse {
	return foodLogResponse{
		ID:        e.ID,
		MealName:  e.MealName,
		Calories:  e.Calories,
		Timestamp: e.Timestamp,
	}
}

// LogMeal godoc
// @Summary  Log a meal
// @Tags     ledger
// @Accept   json
// @Produce  json
// @Param    body  body      logMealRequest  true  "Meal"
// @Success  200   {object}  map[string]interface{}
// @Failure  400   {object}  map[string]string
// @Failure  503   {object}  map[string]string
// @Router   /log/meal [post]
func (h *LedgerHandler) LogMeal(c *gin.Context) {
	var req logMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: user_id and numeric calories are required"})
		return
	}

	res, err := h.svc.LogMeal(c.Request.Context(), services.LogMealInput{
		UserID:   req.UserID,
		MealName: req.MealName,
		Calories: *req.Calories,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Meal logged successfully",
		"new_total": res.NewTotal,
		"entry":     toFoodLogResponse(res.Entry),
	})
}

// LogWater godoc
// @Summary  Log water intake
// @Tags     ledger
// @Accept   json
// @Produce  json
// @Param    body  body      logWaterRequest  true  "Water"
// @Success  200   {object}  map[string]interface{}
// @Failure  400   {object}  map[string]string
// @Failure  503   {object}  map[string]string
// @Router   /log/water [post]
func (h *LedgerHandler) LogWater(c *gin.Context) {
	var req logWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: user_id and numeric amount are required"})
		return
	}

	agg, err := h.svc.LogWater(c.Request.Context(), services.LogWaterInput{
		UserID: req.UserID,
		Amount: *req.Amount,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Water logged successfully",
		"water":    agg.WaterIntake,
		"calories": agg.CaloriesConsumed,
		"date":     agg.Date,
	})
}

// TodayDetail godoc
// @Summary  Today's meals, newest first
// @Tags     ledger
// @Produce  json
// @Param    user_id  path      string  true  "User ID"
// @Success  200      {array}   foodLogResponse
// @Failure  503      {object}  map[string]string
// @Router   /users/{user_id}/logs/today [get]
func (h *LedgerHandler) TodayDetail(c *gin.Context) {
	entries, err := h.svc.TodayDetail(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	resp := make([]foodLogResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toFoodLogResponse(e))
	}
	c.JSON(http.StatusOK, resp)
}
