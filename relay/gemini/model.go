package gemini

// Request/response shapes for the generativelanguage REST API. Only the
// fields the studio touches are modeled; everything else stays opaque.

type ChatRequest struct {
	Contents          []ChatContent        `json:"contents"`
	SystemInstruction *SystemInstruction   `json:"systemInstruction,omitempty"`
	SafetySettings    []ChatSafetySettings `json:"safetySettings,omitempty"`
	GenerationConfig  ChatGenerationConfig `json:"generationConfig,omitempty"`
}

type SystemInstruction struct {
	Parts []Part `json:"parts"`
}

type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

type ChatContent struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type ChatSafetySettings struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type ChatGenerationConfig struct {
	Temperature        float64      `json:"temperature,omitempty"`
	TopP               float64      `json:"topP,omitempty"`
	TopK               float64      `json:"topK,omitempty"`
	MaxOutputTokens    int          `json:"maxOutputTokens,omitempty"`
	CandidateCount     int          `json:"candidateCount,omitempty"`
	StopSequences      []string     `json:"stopSequences,omitempty"`
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ResponseMimeType   string       `json:"responseMimeType,omitempty"`
	ImageConfig        *ImageConfig `json:"imageConfig,omitempty"`
}

type ImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

type ChatResponse struct {
	Candidates []ChatCandidate `json:"candidates"`
	Error      *APIError       `json:"error,omitempty"`
}

type ChatCandidate struct {
	Content      ChatContent `json:"content"`
	FinishReason string      `json:"finishReason,omitempty"`
}

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Video generation (predictLongRunning) shapes.

type VideoGenerationRequest struct {
	Instances  []VideoInstance `json:"instances"`
	Parameters VideoParameters `json:"parameters"`
}

type VideoInstance struct {
	Prompt          string           `json:"prompt,omitempty"`
	Image           *VideoImage      `json:"image,omitempty"`
	LastFrame       *VideoImage      `json:"lastFrame,omitempty"`
	ReferenceImages []ReferenceImage `json:"referenceImages,omitempty"`
	Video           *VideoSource     `json:"video,omitempty"`
}

type VideoImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded,omitempty"`
	MimeType           string `json:"mimeType,omitempty"`
}

type ReferenceImage struct {
	Image         *VideoImage `json:"image"`
	ReferenceType string      `json:"referenceType,omitempty"`
}

type VideoSource struct {
	URI string `json:"uri"`
}

type VideoParameters struct {
	AspectRatio    string `json:"aspectRatio,omitempty"`
	Resolution     string `json:"resolution,omitempty"`
	NumberOfVideos int    `json:"numberOfVideos,omitempty"`
	Loop           bool   `json:"loop,omitempty"`
}

// Operation is the long-running job handle returned by predictLongRunning
// and refreshed by polling until Done.
type Operation struct {
	Name     string             `json:"name"`
	Done     bool               `json:"done"`
	Error    *APIError          `json:"error,omitempty"`
	Response *OperationResponse `json:"response,omitempty"`
}

type OperationResponse struct {
	GenerateVideoResponse *GenerateVideoResponse `json:"generateVideoResponse,omitempty"`
}

type GenerateVideoResponse struct {
	GeneratedSamples []GeneratedSample `json:"generatedSamples,omitempty"`
}

type GeneratedSample struct {
	Video *VideoSource `json:"video,omitempty"`
}

// FirstVideoURI returns the media URI of the first generated sample, or ""
// when the operation finished without producing one.
func (op *Operation) FirstVideoURI() string {
	if op == nil || op.Response == nil || op.Response.GenerateVideoResponse == nil {
		return ""
	}
	for _, sample := range op.Response.GenerateVideoResponse.GeneratedSamples {
		if sample.Video != nil && sample.Video.URI != "" {
			return sample.Video.URI
		}
	}
	return ""
}
