package emotion

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/moodlens/moodlens/internal/models"
)

func pngDataURL(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeFrame(t *testing.T) {
	raw, format, err := DecodeFrame(pngDataURL(t))
	if err != nil {
		t.Fatalf("DecodeFrame() error: %v", err)
	}
	if format != "png" {
		t.Errorf("DecodeFrame() format = %q, want png", format)
	}
	if len(raw) == 0 {
		t.Error("DecodeFrame() returned no bytes")
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "empty payload",
			input:   "data:image/jpeg;base64,",
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "invalid base64",
			input:   "data:image/jpeg;base64,not-!-base64",
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "valid base64 but not an image",
			input:   "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("just text")),
			wantErr: models.ErrFaceAnalysisFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeFrame(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeFrame(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			}
		})
	}
}
