package gemini

// Video model variants selectable from the studio. The standard variant is
// also the forced choice for references-to-video requests.
const (
	VideoModelStandard = "veo-2.0-generate-001"
	VideoModelFast     = "veo-2.0-fast-generate-001"
)

const ImageGenerationModel = "gemini-2.0-flash-exp-image-generation"

var ModelList = []string{
	"gemini-2.0-flash",
	"gemini-2.0-flash-exp-image-generation",
	"veo-2.0-generate-001",
	"veo-2.0-fast-generate-001",
}
