package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
)

// ServeSceneMedia streams the stored video bytes for a scene.
func (s *Studio) ServeSceneMedia(c *gin.Context) {
	scene, ok := s.Store.SceneByID(c.Param("id"))
	if !ok {
		respondError(c, &relaymodel.StudioError{
			Code:       relaymodel.CodeNotFound,
			Message:    "scene not found",
			StatusCode: http.StatusNotFound,
		})
		return
	}
	serveMedia(c, scene.Media)
}

// ServeAssetMedia streams the stored image bytes for an asset.
func (s *Studio) ServeAssetMedia(c *gin.Context) {
	asset, ok := s.Store.AssetByID(c.Param("id"))
	if !ok {
		respondError(c, &relaymodel.StudioError{
			Code:       relaymodel.CodeNotFound,
			Message:    "asset not found",
			StatusCode: http.StatusNotFound,
		})
		return
	}
	serveMedia(c, asset.Media)
}

func serveMedia(c *gin.Context, media relaymodel.MediaPayload) {
	mimeType := media.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	c.Header("Cache-Control", "private, max-age=86400")
	c.Data(http.StatusOK, mimeType, media.Data)
}
