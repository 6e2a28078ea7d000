package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/scenesmith/scenesmith/common"
	"github.com/scenesmith/scenesmith/common/config"
	"github.com/scenesmith/scenesmith/common/logger"
	"github.com/scenesmith/scenesmith/controller"
	"github.com/scenesmith/scenesmith/middleware"
	"github.com/scenesmith/scenesmith/relay/gemini"
	"github.com/scenesmith/scenesmith/router"
)

func main() {
	logger.SetupLogger()
	logger.SysLog(fmt.Sprintf("SceneSmith %s started", common.Version))
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.DebugEnabled {
		logger.SysLog("running in debug mode")
	}

	// Initialize Redis
	err := common.InitRedisClient()
	if err != nil {
		logger.FatalLog("failed to initialize Redis: " + err.Error())
	}

	if config.GeminiAPIKey == "" {
		logger.SysError("GEMINI_API_KEY is not set, generation endpoints will refuse requests")
	}
	relay, err := gemini.NewClient()
	if err != nil {
		logger.FatalLog("failed to initialize the Gemini client: " + err.Error())
	}
	studio := controller.NewStudio(relay)

	// Initialize HTTP server
	server := gin.New()
	server.Use(middleware.PanicRecover())
	server.Use(middleware.RequestId())
	middleware.SetUpLogger(server)
	// Initialize session store
	store := cookie.NewStore([]byte(config.SessionSecret))
	server.Use(sessions.Sessions("session", store))

	router.SetRouter(server, studio)
	var port = os.Getenv("PORT")
	if port == "" {
		port = strconv.Itoa(*common.Port)
	}
	err = server.Run(":" + port)
	if err != nil {
		logger.FatalLog("failed to start HTTP server: " + err.Error())
	}
}
