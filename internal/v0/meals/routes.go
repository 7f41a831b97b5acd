package meals

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	schools := rg.Group("/schools")
	{
		schools.GET("", h.GetSchools)
		schools.GET("/best", h.GetBestSchool)
	}
	rg.GET("/meals", h.GetMeals)
}
