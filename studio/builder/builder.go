package builder

import (
	"encoding/base64"

	"github.com/scenesmith/scenesmith/common/config"
	"github.com/scenesmith/scenesmith/relay/gemini"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
)

const (
	defaultAspectRatio = "16:9"
	defaultResolution  = "720p"
)

// Build turns fully-resolved generation params into exactly one backend
// payload, selecting the operation variant for the mode. Validation happens
// here, before anything reaches the backend; fields a mode does not use are
// dropped so mutually exclusive inputs never co-occur in the request.
//
// references-to-video force-overrides model, aspect ratio and resolution to
// the standard landscape 720p defaults regardless of user selection, and
// extend-video pins resolution to 720p with no user-selectable aspect ratio.
func Build(params *relaymodel.GenerateVideoParams) (string, *gemini.VideoGenerationRequest, error) {
	if params == nil {
		return "", nil, relaymodel.ValidationError("missing generation params")
	}

	switch params.Mode {
	case relaymodel.ModeTextToVideo:
		return buildTextToVideo(params)
	case relaymodel.ModeFramesToVideo:
		return buildFramesToVideo(params)
	case relaymodel.ModeReferencesToVideo:
		return buildReferencesToVideo(params)
	case relaymodel.ModeExtendVideo:
		return buildExtendVideo(params)
	default:
		return "", nil, relaymodel.ValidationError("unsupported generation mode %q", params.Mode)
	}
}

func buildTextToVideo(params *relaymodel.GenerateVideoParams) (string, *gemini.VideoGenerationRequest, error) {
	if params.Prompt == "" {
		return "", nil, relaymodel.ValidationError("text-to-video requires a prompt")
	}
	req := &gemini.VideoGenerationRequest{
		Instances:  []gemini.VideoInstance{{Prompt: params.Prompt}},
		Parameters: baseParameters(params),
	}
	return modelOrDefault(params.Model), req, nil
}

func buildFramesToVideo(params *relaymodel.GenerateVideoParams) (string, *gemini.VideoGenerationRequest, error) {
	if params.Prompt == "" {
		return "", nil, relaymodel.ValidationError("frames-to-video requires a prompt")
	}
	if params.StartFrame == nil || len(params.StartFrame.Data) == 0 {
		return "", nil, relaymodel.ValidationError("frames-to-video requires a start frame image")
	}
	instance := gemini.VideoInstance{
		Prompt: params.Prompt,
		Image:  encodeImage(params.StartFrame),
	}
	if params.EndFrame != nil && len(params.EndFrame.Data) > 0 {
		instance.LastFrame = encodeImage(params.EndFrame)
	}
	req := &gemini.VideoGenerationRequest{
		Instances:  []gemini.VideoInstance{instance},
		Parameters: baseParameters(params),
	}
	return modelOrDefault(params.Model), req, nil
}

func buildReferencesToVideo(params *relaymodel.GenerateVideoParams) (string, *gemini.VideoGenerationRequest, error) {
	if params.Prompt == "" {
		return "", nil, relaymodel.ValidationError("references-to-video requires a prompt")
	}
	if len(params.References) == 0 {
		return "", nil, relaymodel.ValidationError("references-to-video requires at least one reference image")
	}
	instance := gemini.VideoInstance{Prompt: params.Prompt}
	for i := range params.References {
		ref := &params.References[i]
		if len(ref.Data) == 0 {
			return "", nil, relaymodel.ValidationError("reference image %d is empty", i)
		}
		instance.ReferenceImages = append(instance.ReferenceImages, gemini.ReferenceImage{
			Image:         encodeImage(ref),
			ReferenceType: "asset",
		})
	}
	req := &gemini.VideoGenerationRequest{
		Instances: []gemini.VideoInstance{instance},
		Parameters: gemini.VideoParameters{
			AspectRatio:    defaultAspectRatio,
			Resolution:     defaultResolution,
			NumberOfVideos: 1,
		},
	}
	return gemini.VideoModelStandard, req, nil
}

func buildExtendVideo(params *relaymodel.GenerateVideoParams) (string, *gemini.VideoGenerationRequest, error) {
	if params.InputVideo == nil || params.InputVideo.URI == "" {
		return "", nil, relaymodel.ValidationError("extend-video requires the clip's backend video reference")
	}
	instance := gemini.VideoInstance{
		Prompt: params.Prompt,
		Video:  &gemini.VideoSource{URI: params.InputVideo.URI},
	}
	req := &gemini.VideoGenerationRequest{
		Instances: []gemini.VideoInstance{instance},
		Parameters: gemini.VideoParameters{
			Resolution:     defaultResolution,
			NumberOfVideos: 1,
			Loop:           params.Loop,
		},
	}
	return modelOrDefault(params.Model), req, nil
}

func baseParameters(params *relaymodel.GenerateVideoParams) gemini.VideoParameters {
	aspect := params.AspectRatio
	if aspect == "" {
		aspect = defaultAspectRatio
	}
	resolution := params.Resolution
	if resolution == "" {
		resolution = defaultResolution
	}
	return gemini.VideoParameters{
		AspectRatio:    aspect,
		Resolution:     resolution,
		NumberOfVideos: 1,
		Loop:           params.Loop,
	}
}

func modelOrDefault(model string) string {
	if model == "" {
		return config.DefaultVideoModel
	}
	return model
}

func encodeImage(payload *relaymodel.MediaPayload) *gemini.VideoImage {
	return &gemini.VideoImage{
		BytesBase64Encoded: base64.StdEncoding.EncodeToString(payload.Data),
		MimeType:           payload.MimeType,
	}
}
