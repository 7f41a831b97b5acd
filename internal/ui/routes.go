package ui

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed assets/index.html
var indexHTML []byte

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.CreateSession)

		page := sessions.Group("/:id")
		page.Use(h.RequireSession())
		{
			page.GET("/view", h.GetView)
			page.POST("/submit", h.Submit)
			page.POST("/input", h.Input)
			page.POST("/pick", h.Pick)
			page.POST("/dismiss", h.Dismiss)
			page.POST("/prev", h.PrevDay)
			page.POST("/next", h.NextDay)
			page.POST("/date", h.ChangeDate)
		}
		sessions.DELETE("/:id", h.CloseSession)
	}
}

// RegisterPage serves the single page client at /
func RegisterPage(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})
}
