package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"keygate.backend/internal/interfaces/http/response"
	"keygate.backend/internal/usecases"
)

// UsageHandler handles the usage statistics and access log endpoints
type UsageHandler struct {
	usageUsecase *usecases.UsageUsecase
}

// NewUsageHandler creates a new usage handler
func NewUsageHandler(usageUsecase *usecases.UsageUsecase) *UsageHandler {
	return &UsageHandler{usageUsecase: usageUsecase}
}

// Stats reports monthly quota utilization for a key
// GET /api/v1/admin/:userID/:keyID/stats?date=YYYY-MM
func (h *UsageHandler) Stats(c *gin.Context) {
	userID, keyID, err := pathScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.usageUsecase.Stats(c.Request.Context(), userID, keyID, c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// Logs returns one page of a key's access log
// GET /api/v1/admin/:userID/:keyID/logs?page=N
func (h *UsageHandler) Logs(c *gin.Context) {
	userID, keyID, err := pathScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	// A non-numeric page falls back to the first page.
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	logs, err := h.usageUsecase.Logs(c.Request.Context(), userID, keyID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, logs)
}
