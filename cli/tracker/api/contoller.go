package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	Handler *Handler
	router  *gin.Engine
}

func NewController(handler *Handler) *Controller {
	router := gin.Default()

	router.GET("/status", handler.GetStatus)
	router.GET("/session", handler.GetSession)
	router.GET("/activity", handler.GetActivity)

	catalog := router.Group("/catalog")
	{
		catalog.GET("/buses", handler.GetBuses)
		catalog.GET("/routes", handler.GetRoutes)
	}

	tracking := router.Group("/tracking")
	{
		tracking.POST("/start", handler.StartTracking)
		tracking.POST("/stop", handler.StopTracking)
	}

	router.POST("/bus/:id", handler.SelectBus)
	router.POST("/route/:id", handler.SelectRoute)
	router.DELETE("/route", handler.ClearRoute)

	return &Controller{Handler: handler, router: router}
}

func (c *Controller) Run(port int32) error {
	return c.router.Run(fmt.Sprintf(":%d", port))
}
