package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
)

func (s *Studio) ListStoryboardItems(c *gin.Context) {
	respondData(c, s.Store.StoryboardItems())
}

type addStoryboardItemRequest struct {
	AssetId string  `json:"asset_id" binding:"required"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Note    string  `json:"note"`
}

func (s *Studio) AddStoryboardItem(c *gin.Context) {
	var req addStoryboardItemRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	item, err := s.Store.AddStoryboardItem(req.AssetId, req.X, req.Y, req.Note)
	if err != nil {
		respondError(c, relaymodel.ValidationError("%s", err.Error()))
		return
	}
	respondData(c, item)
}

type moveStoryboardItemRequest struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Note *string `json:"note"`
}

func (s *Studio) MoveStoryboardItem(c *gin.Context) {
	var req moveStoryboardItemRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := s.Store.MoveStoryboardItem(c.Param("id"), req.X, req.Y, req.Note); err != nil {
		respondError(c, &relaymodel.StudioError{
			Code:       relaymodel.CodeNotFound,
			Message:    "storyboard item not found",
			StatusCode: http.StatusNotFound,
		})
		return
	}
	respondOK(c)
}

func (s *Studio) DeleteStoryboardItem(c *gin.Context) {
	if !s.Store.RemoveStoryboardItem(c.Param("id")) {
		respondError(c, &relaymodel.StudioError{
			Code:       relaymodel.CodeNotFound,
			Message:    "storyboard item not found",
			StatusCode: http.StatusNotFound,
		})
		return
	}
	respondOK(c)
}

// DescribeStoryboard condenses the current board into one scene
// description. An empty board yields an empty description; a backend
// failure degrades to the local join, never an error.
func (s *Studio) DescribeStoryboard(c *gin.Context) {
	description := s.Describer.Describe(c.Request.Context(), s.Store.StoryboardItems(), s.Store.AssetByID)
	respondData(c, gin.H{"description": description})
}
