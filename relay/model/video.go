package model

// GenerationMode is the input modality for video synthesis.
type GenerationMode string

const (
	ModeTextToVideo       GenerationMode = "text-to-video"
	ModeFramesToVideo     GenerationMode = "frames-to-video"
	ModeReferencesToVideo GenerationMode = "references-to-video"
	ModeExtendVideo       GenerationMode = "extend-video"
)

// MediaPayload is a raw binary payload with its MIME type. Once attached to
// an Asset or Scene the record owns it exclusively.
type MediaPayload struct {
	MimeType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

// VideoRef is the opaque backend reference to a generated clip. It is the
// only valid handle for requesting an extension of that exact clip.
type VideoRef struct {
	URI       string `json:"uri"`
	Operation string `json:"operation,omitempty"`
}

// GenerateVideoParams is the fully-resolved request description passed from
// composition to the lifecycle manager. Constructed fresh per submission and
// not retained afterwards.
type GenerateVideoParams struct {
	Prompt      string
	Model       string
	AspectRatio string
	Resolution  string
	Mode        GenerationMode

	StartFrame *MediaPayload
	EndFrame   *MediaPayload
	References []MediaPayload
	InputVideo *VideoRef
	Loop       bool
}
