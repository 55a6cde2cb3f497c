package domain

// Resolution is the requested output tier for image generation.
type Resolution string

const (
	Resolution1K Resolution = "1K"
	Resolution2K Resolution = "2K"
	Resolution4K Resolution = "4K"
)

// DefaultResolution is the smallest tier, used when the client does not
// choose one.
const DefaultResolution = Resolution1K

// ParseResolution validates a resolution string, defaulting to the
// smallest tier for the empty string.
func ParseResolution(s string) (Resolution, error) {
	switch Resolution(s) {
	case "":
		return DefaultResolution, nil
	case Resolution1K, Resolution2K, Resolution4K:
		return Resolution(s), nil
	default:
		return "", ErrInvalidResolution
	}
}

// ImagePhase names one of the image pipeline's states.
type ImagePhase string

const (
	ImageEmpty   ImagePhase = "empty"
	ImageLoading ImagePhase = "loading"
	ImageReady   ImagePhase = "ready"
	ImageFailed  ImagePhase = "failed"
)

// ImageState is the pipeline's current state. Exactly one of DataURI
// and Error is populated, and only in the ready and failed phases
// respectively. Prompt holds the fully synthesized prompt of the most
// recent generation.
type ImageState struct {
	Phase   ImagePhase `json:"phase"`
	Prompt  string     `json:"prompt,omitempty"`
	DataURI string     `json:"data_uri,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// GenerateImageRequest is the request to generate an image.
type GenerateImageRequest struct {
	Prompt     string `json:"prompt" binding:"required"`
	Resolution string `json:"resolution,omitempty"`
}
