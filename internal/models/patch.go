package models

// Vector3Patch updates individual axes of a vector. Omitted axes keep
// their current value, so patching position.y leaves x and z alone.
type Vector3Patch struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	Z *float64 `json:"z,omitempty"`
}

// Apply merges the patch into v.
func (p *Vector3Patch) Apply(v *Vector3) {
	if p == nil {
		return
	}
	if p.X != nil {
		v.X = *p.X
	}
	if p.Y != nil {
		v.Y = *p.Y
	}
	if p.Z != nil {
		v.Z = *p.Z
	}
}

// VideoPropsPatch updates individual video playback settings.
type VideoPropsPatch struct {
	Loop        *bool    `json:"loop,omitempty"`
	Autoplay    *bool    `json:"autoplay,omitempty"`
	ChromaKey   *bool    `json:"chromaKey,omitempty"`
	ChromaColor *string  `json:"chromaColor,omitempty"`
	Threshold   *float64 `json:"threshold,omitempty"`
}

func (p *VideoPropsPatch) Apply(v *VideoProps) {
	if p == nil || v == nil {
		return
	}
	if p.Loop != nil {
		v.Loop = *p.Loop
	}
	if p.Autoplay != nil {
		v.Autoplay = *p.Autoplay
	}
	if p.ChromaKey != nil {
		v.ChromaKey = *p.ChromaKey
	}
	if p.ChromaColor != nil {
		v.ChromaColor = *p.ChromaColor
	}
	if p.Threshold != nil {
		v.Threshold = *p.Threshold
	}
}

// AudioPropsPatch updates individual audio playback settings.
type AudioPropsPatch struct {
	Loop     *bool    `json:"loop,omitempty"`
	Autoplay *bool    `json:"autoplay,omitempty"`
	Volume   *float64 `json:"volume,omitempty"`
}

func (p *AudioPropsPatch) Apply(a *AudioProps) {
	if p == nil || a == nil {
		return
	}
	if p.Loop != nil {
		a.Loop = *p.Loop
	}
	if p.Autoplay != nil {
		a.Autoplay = *p.Autoplay
	}
	if p.Volume != nil {
		a.Volume = *p.Volume
	}
}

// SceneObjectPatch is a partial update of a scene object. Top-level fields
// merge shallowly; the nested transform and media-prop patches merge one
// level down.
type SceneObjectPatch struct {
	Name     *string  `json:"name,omitempty"`
	Content  *string  `json:"content,omitempty"`
	FontSize *float64 `json:"fontSize,omitempty"`
	Color    *string  `json:"color,omitempty"`
	Visible  *bool    `json:"visible,omitempty"`
	AssetID  *string  `json:"assetId,omitempty"`

	Position *Vector3Patch `json:"position,omitempty"`
	Rotation *Vector3Patch `json:"rotation,omitempty"`
	Scale    *Vector3Patch `json:"scale,omitempty"`

	VideoProps *VideoPropsPatch `json:"videoProps,omitempty"`
	AudioProps *AudioPropsPatch `json:"audioProps,omitempty"`
}

// Apply merges the patch into obj.
func (p *SceneObjectPatch) Apply(obj *SceneObject) {
	if p == nil {
		return
	}
	if p.Name != nil {
		obj.Name = *p.Name
	}
	if p.Content != nil {
		obj.Content = *p.Content
	}
	if p.FontSize != nil {
		obj.FontSize = *p.FontSize
	}
	if p.Color != nil {
		obj.Color = *p.Color
	}
	if p.Visible != nil {
		obj.Visible = *p.Visible
	}
	if p.AssetID != nil {
		obj.AssetID = *p.AssetID
	}
	p.Position.Apply(&obj.Position)
	p.Rotation.Apply(&obj.Rotation)
	p.Scale.Apply(&obj.Scale)
	p.VideoProps.Apply(obj.VideoProps)
	p.AudioProps.Apply(obj.AudioProps)
}
