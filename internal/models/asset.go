package models

import (
	"fmt"
	"strings"
	"time"
)

// AssetKind classifies an uploaded media file.
type AssetKind string

const (
	AssetModel AssetKind = "MODEL"
	AssetImage AssetKind = "IMAGE"
	AssetVideo AssetKind = "VIDEO"
	AssetAudio AssetKind = "AUDIO"
)

// Asset is the metadata record of an uploaded media file. Assets are
// immutable after creation; a re-upload creates a new asset and leaves old
// references dangling.
type Asset struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Kind         AssetKind `json:"type" gorm:"column:kind;not null"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail"`
	SizeLabel    string    `json:"size"`
	StorageKey   string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// ClassifyAssetKind infers the asset kind from MIME type and filename.
// Precedence is fixed: video MIME, then audio MIME, then a .glb/.gltf
// suffix, then IMAGE as the fallback. The suffix check runs last on
// purpose so model files win even under a generic MIME type.
func ClassifyAssetKind(contentType, filename string) AssetKind {
	kind := AssetImage
	if strings.Contains(contentType, "video") {
		kind = AssetVideo
	}
	if strings.Contains(contentType, "audio") {
		kind = AssetAudio
	}
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".glb") || strings.HasSuffix(lower, ".gltf") {
		kind = AssetModel
	}
	return kind
}

// FormatSizeLabel renders a byte count the way the asset panel shows it.
func FormatSizeLabel(sizeBytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(sizeBytes)/1024/1024)
}
