package models

import (
	"fmt"
	"time"
)

// ObjectKind is the closed set of things that can be placed in a scene.
// MODEL/IMAGE/VIDEO/AUDIO alias the asset kinds; PRIMITIVE and TEXT carry
// their payload inline.
type ObjectKind string

const (
	KindPrimitive ObjectKind = "PRIMITIVE"
	KindText      ObjectKind = "TEXT"
	KindModel     ObjectKind = "MODEL"
	KindImage     ObjectKind = "IMAGE"
	KindVideo     ObjectKind = "VIDEO"
	KindAudio     ObjectKind = "AUDIO"
)

// PrimitiveType selects the geometry of a PRIMITIVE object.
type PrimitiveType string

const (
	PrimitiveCube     PrimitiveType = "CUBE"
	PrimitiveSphere   PrimitiveType = "SPHERE"
	PrimitiveCylinder PrimitiveType = "CYLINDER"
	PrimitivePlane    PrimitiveType = "PLANE"
)

// Vector3 is a plain x/y/z triple. Rotation vectors are radians,
// intrinsic XYZ Euler.
type Vector3 struct {
	X float64 `json:"x" gorm:"type:decimal(10,6)"`
	Y float64 `json:"y" gorm:"type:decimal(10,6)"`
	Z float64 `json:"z" gorm:"type:decimal(10,6)"`
}

// VideoProps holds playback settings for VIDEO objects. Threshold is the
// chroma-key tolerance in [0,1].
type VideoProps struct {
	Loop        bool    `json:"loop"`
	Autoplay    bool    `json:"autoplay"`
	ChromaKey   bool    `json:"chromaKey"`
	ChromaColor string  `json:"chromaColor"`
	Threshold   float64 `json:"threshold" gorm:"type:decimal(10,6)"`
}

// AudioProps holds playback settings for AUDIO objects. Volume is in [0,1].
type AudioProps struct {
	Loop     bool    `json:"loop"`
	Autoplay bool    `json:"autoplay"`
	Volume   float64 `json:"volume" gorm:"type:decimal(10,6)"`
}

// SceneObject is one placed item in a project's scene. Exactly one shape
// payload is populated depending on Kind: PrimitiveType for PRIMITIVE,
// Content+FontSize for TEXT, AssetID for the media kinds. VideoProps is
// present iff Kind is VIDEO and AudioProps iff Kind is AUDIO.
type SceneObject struct {
	ID        string     `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID string     `json:"projectId,omitempty" gorm:"type:uuid;index;not null"`
	Name      string     `json:"name"`
	Kind      ObjectKind `json:"type" gorm:"column:kind;not null"`

	PrimitiveType PrimitiveType `json:"primitiveType,omitempty"`
	AssetID       string        `json:"assetId,omitempty" gorm:"type:uuid"`
	Content       string        `json:"content,omitempty"`
	FontSize      float64       `json:"fontSize,omitempty" gorm:"type:decimal(10,6)"`

	Position Vector3 `json:"position" gorm:"embedded;embedded_prefix:pos_"`
	Rotation Vector3 `json:"rotation" gorm:"embedded;embedded_prefix:rot_"`
	Scale    Vector3 `json:"scale" gorm:"embedded;embedded_prefix:scale_"`

	Color   string `json:"color,omitempty"`
	Visible bool   `json:"visible"`

	VideoProps *VideoProps `json:"videoProps,omitempty" gorm:"embedded;embedded_prefix:video_"`
	AudioProps *AudioProps `json:"audioProps,omitempty" gorm:"embedded;embedded_prefix:audio_"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// DefaultTransform returns the transform every new object starts with.
func DefaultTransform() (position, rotation, scale Vector3) {
	return Vector3{X: 0, Y: 0.5, Z: 0}, Vector3{}, Vector3{X: 1, Y: 1, Z: 1}
}

// NewSceneObject builds an object of the given kind with the default
// transform, color and visibility applied.
func NewSceneObject(id, name string, kind ObjectKind) SceneObject {
	pos, rot, scale := DefaultTransform()
	obj := SceneObject{
		ID:       id,
		Name:     name,
		Kind:     kind,
		Position: pos,
		Rotation: rot,
		Scale:    scale,
		Color:    "#ffffff",
		Visible:  true,
	}
	switch kind {
	case KindVideo:
		obj.VideoProps = &VideoProps{Loop: true, Autoplay: true, ChromaColor: "#00ff00", Threshold: 0.4}
	case KindAudio:
		obj.AudioProps = &AudioProps{Loop: true, Autoplay: true, Volume: 1}
	}
	return obj
}

// ValidationError reports a malformed object or mutation. It is raised
// before any state is touched.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// Validate checks the exactly-one-payload invariant and the media-props
// pairing rules.
func (o *SceneObject) Validate() error {
	switch o.Kind {
	case KindPrimitive:
		switch o.PrimitiveType {
		case PrimitiveCube, PrimitiveSphere, PrimitiveCylinder, PrimitivePlane:
		default:
			return &ValidationError{Field: "primitiveType", Msg: fmt.Sprintf("unknown primitive %q", o.PrimitiveType)}
		}
	case KindText:
		if o.Content == "" {
			return &ValidationError{Field: "content", Msg: "text object requires content"}
		}
	case KindModel, KindImage, KindVideo, KindAudio:
		if o.AssetID == "" {
			return &ValidationError{Field: "assetId", Msg: fmt.Sprintf("%s object requires an asset reference", o.Kind)}
		}
	default:
		return &ValidationError{Field: "type", Msg: fmt.Sprintf("unknown object kind %q", o.Kind)}
	}
	if o.VideoProps != nil && o.Kind != KindVideo {
		return &ValidationError{Field: "videoProps", Msg: "only video objects carry video props"}
	}
	if o.AudioProps != nil && o.Kind != KindAudio {
		return &ValidationError{Field: "audioProps", Msg: "only audio objects carry audio props"}
	}
	if o.VideoProps != nil && (o.VideoProps.Threshold < 0 || o.VideoProps.Threshold > 1) {
		return &ValidationError{Field: "videoProps.threshold", Msg: "threshold must be within [0,1]"}
	}
	if o.AudioProps != nil && (o.AudioProps.Volume < 0 || o.AudioProps.Volume > 1) {
		return &ValidationError{Field: "audioProps.volume", Msg: "volume must be within [0,1]"}
	}
	return nil
}
