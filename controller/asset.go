package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scenesmith/scenesmith/common/image"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
	"github.com/scenesmith/scenesmith/studio/store"
)

type assetView struct {
	Id        string          `json:"id"`
	Prompt    string          `json:"prompt"`
	Type      store.AssetType `json:"type"`
	MimeType  string          `json:"mime_type"`
	MediaPath string          `json:"media_path"`
	Width     int             `json:"width,omitempty"`
	Height    int             `json:"height,omitempty"`
	Selected  bool            `json:"selected"`
	Locked    bool            `json:"locked"`
	CreatedAt int64           `json:"created_at"`
}

func (s *Studio) assetView(asset *store.Asset, selected map[string]bool, locked map[string]bool) assetView {
	// Dimensions are best-effort; an undecodable payload just omits them.
	width, height, _ := image.GetImageSize(asset.Media.Data)
	return assetView{
		Id:        asset.Id,
		Prompt:    asset.Prompt,
		Type:      asset.Type,
		MimeType:  asset.Media.MimeType,
		MediaPath: asset.MediaPath(),
		Width:     width,
		Height:    height,
		Selected:  selected[asset.Id],
		Locked:    locked[asset.Id],
		CreatedAt: asset.CreatedAt,
	}
}

func (s *Studio) ListAssets(c *gin.Context) {
	selected := make(map[string]bool)
	for _, asset := range s.Store.SelectedAssets() {
		selected[asset.Id] = true
	}
	locked := make(map[string]bool)
	for _, asset := range s.Store.LockedAssets() {
		locked[asset.Id] = true
	}
	views := []assetView{}
	for _, asset := range s.Store.Assets() {
		views = append(views, s.assetView(asset, selected, locked))
	}
	respondData(c, views)
}

type generateAssetRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Type   string `json:"type" binding:"omitempty,oneof=character environment prop"`
}

// GenerateAsset runs a synchronous image generation and drops the result
// into the bin. Stills come back in seconds, so unlike video there is no
// polling lifecycle here.
func (s *Studio) GenerateAsset(c *gin.Context) {
	var req generateAssetRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	assetType := store.AssetType(req.Type)
	if assetType == "" {
		assetType = store.AssetCharacter
	}

	media, err := s.Relay.GenerateImage(c.Request.Context(), req.Prompt, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	asset := s.Store.AddAsset(req.Prompt, assetType, *media)
	// The data URL lets the UI feed the fresh asset straight into a
	// frames-to-video request without refetching.
	respondData(c, gin.H{
		"asset":    s.assetView(asset, nil, nil),
		"data_url": image.EncodeDataURL(media.MimeType, media.Data),
	})
}

func (s *Studio) DeleteAsset(c *gin.Context) {
	if !s.Store.RemoveAsset(c.Param("id")) {
		respondError(c, &relaymodel.StudioError{
			Code:       relaymodel.CodeNotFound,
			Message:    "asset not found",
			StatusCode: http.StatusNotFound,
		})
		return
	}
	respondOK(c)
}

// ToggleAssetSelection flips an asset in and out of the reference selection
// set.
func (s *Studio) ToggleAssetSelection(c *gin.Context) {
	if err := s.Store.ToggleAssetSelection(c.Param("id")); err != nil {
		respondError(c, relaymodel.ValidationError("%s", err.Error()))
		return
	}
	respondOK(c)
}

// LockAsset adds an asset to the continuity cast lock.
func (s *Studio) LockAsset(c *gin.Context) {
	if err := s.Store.LockAsset(c.Param("id")); err != nil {
		respondError(c, relaymodel.ValidationError("%s", err.Error()))
		return
	}
	respondOK(c)
}

func (s *Studio) UnlockAsset(c *gin.Context) {
	s.Store.UnlockAsset(c.Param("id"))
	respondOK(c)
}
