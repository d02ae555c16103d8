package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	ListEvents(c *ginext.Context)
	GetEvent(c *ginext.Context)
	CreateEvent(c *ginext.Context)
	UpdateEvent(c *ginext.Context)
	DeleteEvent(c *ginext.Context)
	ListCategories(c *ginext.Context)
	Register(c *ginext.Context)
	ListEventRegistrations(c *ginext.Context)
	ListRegistrations(c *ginext.Context)
	DeleteRegistration(c *ginext.Context)
}

func InitRouter(mode string, h Handler, metrics http.Handler, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Events
		api.GET("/events", h.ListEvents)
		api.GET("/events/:id", h.GetEvent)
		api.POST("/events", h.CreateEvent)
		api.PUT("/events/:id", h.UpdateEvent)
		api.DELETE("/events/:id", h.DeleteEvent)
		api.GET("/categories", h.ListCategories)

		// Registrations
		api.POST("/events/:id/registrations", h.Register)
		api.GET("/events/:id/registrations", h.ListEventRegistrations)
		api.GET("/registrations", h.ListRegistrations)
		api.DELETE("/registrations/:id", h.DeleteRegistration)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	if metrics != nil {
		router.GET("/metrics", func(c *ginext.Context) {
			metrics.ServeHTTP(c.Writer, c.Request)
		})
	}

	return router
}
