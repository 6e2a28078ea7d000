package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/scenesmith/scenesmith/common"
	"github.com/scenesmith/scenesmith/common/config"
	"github.com/scenesmith/scenesmith/relay/gemini"
)

func (s *Studio) GetStatus(c *gin.Context) {
	respondData(c, gin.H{
		"version":        common.Version,
		"system_name":    config.SystemName,
		"server_address": config.ServerAddress,
		"backend_ready":  config.GeminiAPIKey != "",
		"models":         gemini.ModelList,
	})
}

// GetStory returns the session's story memory text.
func (s *Studio) GetStory(c *gin.Context) {
	respondData(c, gin.H{"text": s.Store.StoryMemory()})
}

type updateStoryRequest struct {
	Text string `json:"text"`
}

func (s *Studio) UpdateStory(c *gin.Context) {
	var req updateStoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	s.Store.SetStoryMemory(req.Text)
	respondOK(c)
}
