package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAssetKind(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		want        AssetKind
	}{
		{"video mime", "video/mp4", "clip.mp4", AssetVideo},
		{"audio mime", "audio/mpeg", "track.mp3", AssetAudio},
		{"glb wins over generic mime", "application/octet-stream", "model.glb", AssetModel},
		{"gltf wins over generic mime", "application/octet-stream", "scene.gltf", AssetModel},
		{"glb wins even with case", "application/octet-stream", "Duck.GLB", AssetModel},
		{"png falls back to image", "image/png", "logo.png", AssetImage},
		{"unknown falls back to image", "application/octet-stream", "notes.txt", AssetImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAssetKind(tt.contentType, tt.filename))
		})
	}
}

func TestFormatSizeLabel(t *testing.T) {
	assert.Equal(t, "1.00 MB", FormatSizeLabel(1024*1024))
	assert.Equal(t, "0.50 MB", FormatSizeLabel(512*1024))
}
