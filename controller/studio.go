package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/scenesmith/scenesmith/common"
	"github.com/scenesmith/scenesmith/common/helper"
	"github.com/scenesmith/scenesmith/common/logger"
	"github.com/scenesmith/scenesmith/relay/gemini"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
	"github.com/scenesmith/scenesmith/studio/compositor"
	"github.com/scenesmith/scenesmith/studio/director"
	"github.com/scenesmith/scenesmith/studio/lifecycle"
	"github.com/scenesmith/scenesmith/studio/store"
)

// Studio bundles every dependency the handlers need, so the whole state
// container is injected rather than ambient.
type Studio struct {
	Store     *store.Store
	Relay     *gemini.Client
	Lifecycle *lifecycle.Manager
	Director  *director.Director
	Describer *compositor.Describer
}

func NewStudio(relay *gemini.Client) *Studio {
	st := store.NewStore()
	return &Studio{
		Store:     st,
		Relay:     relay,
		Lifecycle: lifecycle.NewManager(relay, st),
		Director:  director.NewDirector(relay),
		Describer: compositor.NewDescriber(relay),
	}
}

func bindJSON(c *gin.Context, v any) error {
	if err := common.UnmarshalBodyReusable(c, v); err != nil {
		return relaymodel.ValidationError("invalid request: %s", err.Error())
	}
	return nil
}

func respondData(c *gin.Context, data any) {
	c.JSON(200, gin.H{
		"success": true,
		"message": "",
		"data":    data,
	})
}

func respondOK(c *gin.Context) {
	c.JSON(200, gin.H{
		"success": true,
		"message": "",
	})
}

func respondError(c *gin.Context, err error) {
	se := relaymodel.AsStudioError(err)
	logger.Error(c.Request.Context(), se.Error())
	c.JSON(se.StatusCode, gin.H{
		"success": false,
		"message": helper.MessageWithRequestId(se.Message, c.GetString(logger.RequestIdKey)),
		"code":    se.Code,
	})
}
