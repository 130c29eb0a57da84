package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSceneObjectDefaults(t *testing.T) {
	obj := NewSceneObject("obj-1", "Cube", KindPrimitive)
	assert.Equal(t, Vector3{X: 0, Y: 0.5, Z: 0}, obj.Position)
	assert.Equal(t, Vector3{}, obj.Rotation)
	assert.Equal(t, Vector3{X: 1, Y: 1, Z: 1}, obj.Scale)
	assert.Equal(t, "#ffffff", obj.Color)
	assert.True(t, obj.Visible)
	assert.Nil(t, obj.VideoProps)
	assert.Nil(t, obj.AudioProps)
}

func TestNewSceneObjectMediaProps(t *testing.T) {
	video := NewSceneObject("obj-v", "Clip", KindVideo)
	require.NotNil(t, video.VideoProps)
	assert.Nil(t, video.AudioProps)

	audio := NewSceneObject("obj-a", "Track", KindAudio)
	require.NotNil(t, audio.AudioProps)
	assert.Nil(t, audio.VideoProps)
}

func TestSceneObjectValidate(t *testing.T) {
	cube := NewSceneObject("obj-1", "Cube", KindPrimitive)
	cube.PrimitiveType = PrimitiveCube
	require.NoError(t, cube.Validate())

	missingPrimitive := NewSceneObject("obj-2", "Broken", KindPrimitive)
	var verr *ValidationError
	require.ErrorAs(t, missingPrimitive.Validate(), &verr)
	assert.Equal(t, "primitiveType", verr.Field)

	text := NewSceneObject("obj-3", "Label", KindText)
	require.Error(t, text.Validate())
	text.Content = "Hello"
	require.NoError(t, text.Validate())

	model := NewSceneObject("obj-4", "Duck", KindModel)
	require.Error(t, model.Validate())
	model.AssetID = "a1"
	require.NoError(t, model.Validate())

	// a video object never carries audio props and vice versa
	video := NewSceneObject("obj-5", "Clip", KindVideo)
	video.AssetID = "a2"
	video.AudioProps = &AudioProps{}
	require.ErrorAs(t, video.Validate(), &verr)
	assert.Equal(t, "audioProps", verr.Field)

	cube.VideoProps = &VideoProps{}
	require.ErrorAs(t, cube.Validate(), &verr)
	assert.Equal(t, "videoProps", verr.Field)
}

func TestSceneObjectValidateRanges(t *testing.T) {
	video := NewSceneObject("obj-1", "Clip", KindVideo)
	video.AssetID = "a1"
	video.VideoProps.Threshold = 1.5
	require.Error(t, video.Validate())
	video.VideoProps.Threshold = 0.4
	require.NoError(t, video.Validate())

	audio := NewSceneObject("obj-2", "Track", KindAudio)
	audio.AssetID = "a2"
	audio.AudioProps.Volume = -0.1
	require.Error(t, audio.Validate())
	audio.AudioProps.Volume = 0.8
	require.NoError(t, audio.Validate())
}

func TestSceneObjectPatchPartialMerge(t *testing.T) {
	obj := NewSceneObject("obj-1", "Cube", KindPrimitive)
	obj.PrimitiveType = PrimitiveCube
	obj.Position = Vector3{X: 1, Y: 2, Z: 3}

	y := 5.0
	patch := SceneObjectPatch{Position: &Vector3Patch{Y: &y}}
	patch.Apply(&obj)

	assert.Equal(t, Vector3{X: 1, Y: 5, Z: 3}, obj.Position)
	// untouched nested structures stay put
	assert.Equal(t, Vector3{X: 1, Y: 1, Z: 1}, obj.Scale)
}

func TestSceneObjectPatchMediaProps(t *testing.T) {
	obj := NewSceneObject("obj-1", "Clip", KindVideo)
	obj.AssetID = "a1"

	key := true
	color := "#ff00ff"
	patch := SceneObjectPatch{VideoProps: &VideoPropsPatch{ChromaKey: &key, ChromaColor: &color}}
	patch.Apply(&obj)

	assert.True(t, obj.VideoProps.ChromaKey)
	assert.Equal(t, "#ff00ff", obj.VideoProps.ChromaColor)
	// loop/autoplay defaults survive the partial merge
	assert.True(t, obj.VideoProps.Loop)
	assert.True(t, obj.VideoProps.Autoplay)
}

func TestProjectPatchKeepsDormantTarget(t *testing.T) {
	p := NewDraftProject("p1", "u1", "untitled-1")
	img := "https://cdn.example.com/target.png"
	typ := ExperienceImage
	(&ProjectPatch{ExperienceType: &typ, TargetImageURL: &img}).Apply(&p)
	require.Equal(t, ExperienceImage, p.ExperienceType)

	geo := ExperienceGeo
	(&ProjectPatch{ExperienceType: &geo}).Apply(&p)
	assert.Equal(t, ExperienceGeo, p.ExperienceType)
	// switching type does not clear the image target
	assert.Equal(t, img, p.TargetImageURL)
}
