package controller

import (
	"github.com/gin-gonic/gin"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
)

type chatRequest struct {
	Message string                `json:"message" binding:"required"`
	History []relaymodel.ChatTurn `json:"history"`
}

// Chat forwards a director message and returns the structured action
// the director decided on. Unclassifiable replies come back as a
// chat-response action, so this never fails on model output.
func (s *Studio) Chat(c *gin.Context) {
	var req chatRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	action := s.Director.Interpret(c.Request.Context(), req.History, req.Message)
	respondData(c, action)
}

type composeScoreRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func (s *Studio) ComposeScore(c *gin.Context) {
	var req composeScoreRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, s.Director.ComposeScore(c.Request.Context(), req.Prompt))
}

type transitionsRequest struct {
	SceneDescription string `json:"scene_description" binding:"required"`
}

func (s *Studio) SuggestTransitions(c *gin.Context) {
	var req transitionsRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	ideas := s.Director.SuggestTransitions(c.Request.Context(), req.SceneDescription)
	respondData(c, gin.H{"ideas": ideas})
}
