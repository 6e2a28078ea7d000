package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/scenesmith/scenesmith/common/image"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
	"github.com/scenesmith/scenesmith/studio/compositor"
)

// GenerateVideoRequest is the submission DTO. Frame and reference payloads
// travel as base64 data URLs, the same encoding generated media is handed
// out in, so results round-trip straight back into subsequent requests.
type GenerateVideoRequest struct {
	Mode        string   `json:"mode" binding:"required,oneof=text-to-video frames-to-video references-to-video extend-video"`
	Prompt      string   `json:"prompt"`
	Model       string   `json:"model"`
	AspectRatio string   `json:"aspect_ratio" binding:"omitempty,oneof=16:9 9:16 1:1"`
	Resolution  string   `json:"resolution" binding:"omitempty,oneof=720p 1080p"`
	StartFrame  string   `json:"start_frame" binding:"omitempty,dataurl"`
	EndFrame    string   `json:"end_frame" binding:"omitempty,dataurl"`
	References  []string `json:"references" binding:"omitempty,dive,dataurl"`
	SceneId     string   `json:"scene_id"`
	Loop        bool     `json:"loop"`

	// When set, the storyboard-derived scene description is appended to
	// the prompt before style and continuity injection.
	UseStoryboard bool `json:"use_storyboard"`
}

// GenerateVideo composes the final prompt, builds the mode payload and
// claims the single generation slot. The response is the submission id; the
// outcome arrives through the lifecycle phase and the event feed.
func (s *Studio) GenerateVideo(c *gin.Context) {
	var req GenerateVideoRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	params, err := s.resolveParams(c, &req)
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

func (s *Studio) resolveParams(c *gin.Context, req *GenerateVideoRequest) (*relaymodel.GenerateVideoParams, error) {
	userText := strings.TrimSpace(req.Prompt)
	if req.UseStoryboard {
		description := s.Describer.Describe(c.Request.Context(), s.Store.StoryboardItems(), s.Store.AssetByID)
		if description != "" {
			if userText != "" {
				userText = userText + " " + description
			} else {
				userText = description
			}
		}
	}

	finalPrompt := compositor.Compose(userText, s.Store.ActiveStyle(), s.Store.Continuity(), s.Store.LockedAssets())

	params := &relaymodel.GenerateVideoParams{
		Prompt:      finalPrompt,
		Model:       req.Model,
		AspectRatio: req.AspectRatio,
		Resolution:  req.Resolution,
		Mode:        relaymodel.GenerationMode(req.Mode),
		Loop:        req.Loop,
	}

	if req.StartFrame != "" {
		if _, _, err := image.GetImageSizeFromDataURL(req.StartFrame); err != nil {
			return nil, relaymodel.ValidationError("start frame is not a decodable image")
		}
		payload, err := decodeMediaPayload(req.StartFrame)
		if err != nil {
			return nil, relaymodel.ValidationError("start frame: %s", err.Error())
		}
		params.StartFrame = payload
	}
	if req.EndFrame != "" {
		if _, _, err := image.GetImageSizeFromDataURL(req.EndFrame); err != nil {
			return nil, relaymodel.ValidationError("end frame is not a decodable image")
		}
		payload, err := decodeMediaPayload(req.EndFrame)
		if err != nil {
			return nil, relaymodel.ValidationError("end frame: %s", err.Error())
		}
		params.EndFrame = payload
	}
	for i, ref := range req.References {
		payload, err := decodeMediaPayload(ref)
		if err != nil {
			return nil, relaymodel.ValidationError("reference %d: %s", i, err.Error())
		}
		params.References = append(params.References, *payload)
	}

	// With no explicit references, references-to-video consumes the
	// current asset selection.
	if params.Mode == relaymodel.ModeReferencesToVideo && len(params.References) == 0 {
		for _, asset := range s.Store.SelectedAssets() {
			params.References = append(params.References, asset.Media)
		}
	}

	if params.Mode == relaymodel.ModeExtendVideo {
		if req.SceneId == "" {
			return nil, relaymodel.ValidationError("extend-video requires scene_id")
		}
		scene, ok := s.Store.SceneByID(req.SceneId)
		if !ok {
			return nil, &relaymodel.StudioError{
				Code:       relaymodel.CodeNotFound,
				Message:    "scene not found",
				StatusCode: http.StatusNotFound,
			}
		}
		// The stored backend reference is the only valid handle for
		// extending this exact clip.
		ref := scene.VideoRef
		params.InputVideo = &ref
		if params.Prompt == "" {
			params.Prompt = scene.Prompt
		}
	}

	return params, nil
}

func decodeMediaPayload(dataURL string) (*relaymodel.MediaPayload, error) {
	mimeType, data, err := image.DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	return &relaymodel.MediaPayload{MimeType: mimeType, Data: data}, nil
}

// GenerationStatus reports the lifecycle phase of the generation slot.
func (s *Studio) GenerationStatus(c *gin.Context) {
	respondData(c, s.Store.PhaseState())
}

// ResetGeneration returns a finished phase to idle.
func (s *Studio) ResetGeneration(c *gin.Context) {
	if !s.Store.ResetPhase() {
		respondError(c, relaymodel.BusyError("a generation request is still in flight"))
		return
	}
	respondOK(c)
}
