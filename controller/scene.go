package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
	"github.com/scenesmith/scenesmith/studio/store"
)

type sceneView struct {
	Id        string `json:"id"`
	Prompt    string `json:"prompt"`
	MimeType  string `json:"mime_type"`
	MediaPath string `json:"media_path"`
	Selected  bool   `json:"selected"`
	CreatedAt int64  `json:"created_at"`
}

func sceneToView(scene *store.Scene, selectedId string) sceneView {
	return sceneView{
		Id:        scene.Id,
		Prompt:    scene.Prompt,
		MimeType:  scene.Media.MimeType,
		MediaPath: scene.MediaPath(),
		Selected:  scene.Id == selectedId,
		CreatedAt: scene.CreatedAt,
	}
}

// ListScenes returns the timeline in append order, which equals completion
// order because only one submission is ever in flight.
func (s *Studio) ListScenes(c *gin.Context) {
	selectedId := s.Store.SelectedSceneID()
	views := []sceneView{}
	for _, scene := range s.Store.Scenes() {
		views = append(views, sceneToView(scene, selectedId))
	}
	respondData(c, views)
}

func (s *Studio) DeleteScene(c *gin.Context) {
	if !s.Store.RemoveScene(c.Param("id")) {
		respondError(c, &relaymodel.StudioError{
			Code:       relaymodel.CodeNotFound,
			Message:    "scene not found",
			StatusCode: http.StatusNotFound,
		})
		return
	}
	respondOK(c)
}

type selectSceneRequest struct {
	SceneId string `json:"scene_id" binding:"required"`
}

func (s *Studio) SelectScene(c *gin.Context) {
	var req selectSceneRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := s.Store.SelectScene(req.SceneId); err != nil {
		respondError(c, &relaymodel.StudioError{
			Code:       relaymodel.CodeNotFound,
			Message:    "scene not found",
			StatusCode: http.StatusNotFound,
		})
		return
	}
	respondOK(c)
}

type extendSceneRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
	Loop   bool   `json:"loop"`
}

// ExtendScene submits an extend-video generation for an existing clip,
// carrying the clip's stored backend reference.
func (s *Studio) ExtendScene(c *gin.Context) {
	var req extendSceneRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	generateReq := &GenerateVideoRequest{
		Mode:    string(relaymodel.ModeExtendVideo),
		Prompt:  req.Prompt,
		Model:   req.Model,
		SceneId: c.Param("id"),
		Loop:    req.Loop,
	}
	params, err := s.resolveParams(c, generateReq)
	if err != nil {
		respondError(c, err)
		return
	}

	sub, err := s.Lifecycle.Begin(params)
	if err != nil {
		respondError(c, err)
		return
	}
	s.Lifecycle.RunAsync(sub)

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "",
		"data":    gin.H{"submission_id": sub.Id},
	})
}
