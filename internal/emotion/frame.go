package emotion

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/moodlens/moodlens/internal/models"
)

// DecodeFrame unpacks a browser-captured data URL
// (data:image/jpeg;base64,...) into raw image bytes, verifying the payload
// actually decodes as an image before it is sent to the collaborator.
func DecodeFrame(dataURL string) ([]byte, string, error) {
	payload := dataURL
	if i := strings.Index(dataURL, ","); i >= 0 {
		payload = dataURL[i+1:]
	}
	if strings.TrimSpace(payload) == "" {
		return nil, "", fmt.Errorf("%w: no image data provided", models.ErrInvalidInput)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: image data is not valid base64", models.ErrInvalidInput)
	}

	_, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("%w: frame is not a decodable image: %v", models.ErrFaceAnalysisFailed, err)
	}

	return raw, format, nil
}
