package controller

import (
	"github.com/gin-gonic/gin"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
	"github.com/scenesmith/scenesmith/studio/store"
)

func (s *Studio) ListStyles(c *gin.Context) {
	activeId := ""
	if active := s.Store.ActiveStyle(); active != nil {
		activeId = active.Id
	}
	respondData(c, gin.H{
		"styles":    s.Store.Styles(),
		"active_id": activeId,
	})
}

type createStyleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Fragment    string `json:"fragment" binding:"required"`
}

func (s *Studio) CreateStyle(c *gin.Context) {
	var req createStyleRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	style := s.Store.AddCustomStyle(req.Name, req.Description, req.Fragment)
	respondData(c, style)
}

type setActiveStyleRequest struct {
	StyleId string `json:"style_id"`
}

// SetActiveStyle selects the style injected into subsequent prompts; an
// empty style_id clears the selection.
func (s *Studio) SetActiveStyle(c *gin.Context) {
	var req setActiveStyleRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := s.Store.SetActiveStyle(req.StyleId); err != nil {
		respondError(c, relaymodel.ValidationError("%s", err.Error()))
		return
	}
	respondOK(c)
}

// GetContinuity returns the continuity profile plus the lighting
// vocabulary for the picker.
func (s *Studio) GetContinuity(c *gin.Context) {
	respondData(c, gin.H{
		"profile":    s.Store.Continuity(),
		"vocabulary": store.LightingVocabulary,
	})
}

type setLightingRequest struct {
	Lighting string `json:"lighting"`
}

// SetLighting sets or clears the atmosphere lock.
func (s *Studio) SetLighting(c *gin.Context) {
	var req setLightingRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := s.Store.SetLighting(req.Lighting); err != nil {
		respondError(c, relaymodel.ValidationError("%s", err.Error()))
		return
	}
	respondOK(c)
}
