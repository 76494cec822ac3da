package handlers

import (
	"net/http"

	"catering_manager/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewRouter(h *APIHandler, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/session", h.GetSession)
		api.POST("/session/login", h.Login)
		api.POST("/session/logout", h.Logout)
	}

	app := api.Group("", RequireSession(h.sessionService))
	{
		app.GET("/items", h.ListItems)
		app.POST("/items", h.AddItem)
		app.POST("/items/:id/edit", h.EditItem)
		app.DELETE("/items/:id/edit", h.CancelItemEdit)
		app.PUT("/items/:id", h.UpdateItem)
		app.DELETE("/items/:id", h.DeleteItem)

		app.GET("/menus", h.ListMenus)
		app.POST("/menus", h.SaveMenu)
		app.GET("/menus/selector", h.MenuSelector)
		app.POST("/menus/:id/edit", h.EditMenu)
		app.DELETE("/menus/edit", h.CancelMenuEdit)
		app.DELETE("/menus/:id", h.DeleteMenu)

		app.GET("/orders", h.ListOrders)
		app.GET("/orders/draft", h.GetDraft)
		app.PUT("/orders/draft", h.UpdateDraft)
		app.DELETE("/orders/draft", h.ClearDraft)
		app.POST("/orders/confirm", h.ConfirmOrder)
		app.POST("/orders/:id/view", h.ViewOrder)
		app.GET("/orders/:id/export/:format", h.ExportOrder)

		app.GET("/reports/revenue", h.RevenueReport)

		app.GET("/exports", h.ListFormats)
		app.GET("/exports/:format", h.ExportDraft)

		app.GET("/backup", h.GetBackup)
		app.PUT("/backup", h.RestoreBackup)
	}

	return router
}
