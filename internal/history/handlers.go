package history

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"SchoolMeal/internal/v0/common"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// GetRecent lists the schools users picked most recently
func (h *Handler) GetRecent(c *gin.Context) {
	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"limit must be a positive integer"}))
			return
		}
		limit = min(n, maxRecentLimit)
	}

	schools, err := h.repo.Recent(time.Now().Add(-RetentionPeriod), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	common.Success(c, http.StatusOK, schools)
}
