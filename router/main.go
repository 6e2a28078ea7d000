package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/scenesmith/scenesmith/common/config"
	"github.com/scenesmith/scenesmith/common/logger"
	"github.com/scenesmith/scenesmith/controller"
)

func SetRouter(router *gin.Engine, studio *controller.Studio) {
	SetApiRouter(router, studio)

	if config.FrontendPath != "" {
		logger.SysLog("serving frontend from " + config.FrontendPath)
		router.Use(static.Serve("/", static.LocalFile(config.FrontendPath, false)))
	}
	router.NoRoute(func(c *gin.Context) {
		if config.FrontendPath != "" && !strings.HasPrefix(c.Request.RequestURI, "/api") {
			c.File(config.FrontendPath + "/index.html")
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "not found",
		})
	})
}
