package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/scenesmith/scenesmith/controller"
	"github.com/scenesmith/scenesmith/middleware"
)

func SetApiRouter(router *gin.Engine, studio *controller.Studio) {
	router.Use(middleware.CORS())
	// The gzip writer cannot be hijacked, so the websocket route stays
	// outside the compressed group.
	router.GET("/api/ws", middleware.TokenAuth(), studio.Events)
	apiRouter := router.Group("/api")
	apiRouter.Use(gzip.Gzip(gzip.DefaultCompression))
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		apiRouter.GET("/status", studio.GetStatus)

		authed := apiRouter.Group("/")
		authed.Use(middleware.TokenAuth())
		{
			generateRoute := authed.Group("/generate")
			generateRoute.Use(middleware.BackendKeyCheck())
			{
				generateRoute.POST("/video", middleware.GenerateRateLimit(), studio.GenerateVideo)
				generateRoute.GET("/status", studio.GenerationStatus)
				generateRoute.POST("/reset", studio.ResetGeneration)
			}

			assetRoute := authed.Group("/assets")
			{
				assetRoute.GET("", studio.ListAssets)
				assetRoute.POST("/generate", middleware.BackendKeyCheck(), middleware.GenerateRateLimit(), studio.GenerateAsset)
				assetRoute.DELETE("/:id", studio.DeleteAsset)
				assetRoute.POST("/:id/select", studio.ToggleAssetSelection)
				assetRoute.POST("/:id/lock", studio.LockAsset)
				assetRoute.DELETE("/:id/lock", studio.UnlockAsset)
			}

			sceneRoute := authed.Group("/scenes")
			{
				sceneRoute.GET("", studio.ListScenes)
				sceneRoute.DELETE("/:id", studio.DeleteScene)
				sceneRoute.POST("/select", studio.SelectScene)
				sceneRoute.POST("/:id/extend", middleware.BackendKeyCheck(), middleware.GenerateRateLimit(), studio.ExtendScene)
			}

			styleRoute := authed.Group("/styles")
			{
				styleRoute.GET("", studio.ListStyles)
				styleRoute.POST("", studio.CreateStyle)
				styleRoute.PUT("/active", studio.SetActiveStyle)
			}

			authed.GET("/continuity", studio.GetContinuity)
			authed.PUT("/continuity/lighting", studio.SetLighting)

			authed.GET("/story", studio.GetStory)
			authed.PUT("/story", studio.UpdateStory)

			storyboardRoute := authed.Group("/storyboard")
			{
				storyboardRoute.GET("/items", studio.ListStoryboardItems)
				storyboardRoute.POST("/items", studio.AddStoryboardItem)
				storyboardRoute.PATCH("/items/:id", studio.MoveStoryboardItem)
				storyboardRoute.DELETE("/items/:id", studio.DeleteStoryboardItem)
				storyboardRoute.POST("/describe", middleware.BackendKeyCheck(), studio.DescribeStoryboard)
			}

			directorRoute := authed.Group("/")
			directorRoute.Use(middleware.BackendKeyCheck())
			{
				directorRoute.POST("/director/chat", studio.Chat)
				directorRoute.POST("/score", studio.ComposeScore)
				directorRoute.POST("/transitions", studio.SuggestTransitions)
			}

			mediaRoute := authed.Group("/media")
			{
				mediaRoute.GET("/scenes/:id", studio.ServeSceneMedia)
				mediaRoute.GET("/assets/:id", studio.ServeAssetMedia)
			}
		}
	}
}
