package compiler

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arstudio/internal/models"
)

func testProject() *models.Project {
	p := models.NewDraftProject("p1", "u1", "demo")
	p.Name = "Demo Scene"
	return &p
}

func cube(id string) models.SceneObject {
	obj := models.NewSceneObject(id, "Cube", models.KindPrimitive)
	obj.PrimitiveType = models.PrimitiveCube
	return obj
}

func TestCompileDeterministic(t *testing.T) {
	objects := []models.SceneObject{cube("obj-1"), cube("obj-2")}
	assets := map[string]models.Asset{}

	first, warns1 := Compile(testProject(), objects, assets)
	second, warns2 := Compile(testProject(), objects, assets)

	assert.Equal(t, first, second)
	assert.Empty(t, warns1)
	assert.Empty(t, warns2)
}

func TestCompileDefaultCubeScenario(t *testing.T) {
	out, warns := Compile(testProject(), []models.SceneObject{cube("obj-1")}, nil)

	require.Empty(t, warns)
	assert.Contains(t, out, `geometry="primitive: cube"`)
	assert.Contains(t, out, `scale="1 1 1"`)
	assert.Contains(t, out, `position="0 0.5 0"`)
	assert.NotContains(t, out, "<a-video")
	assert.NotContains(t, out, "<a-image")
	assert.NotContains(t, out, "chromakey")
	assert.Contains(t, out, aframeScript)
	assert.Contains(t, out, mindarScript)
}

func TestCompileSkipsInvisible(t *testing.T) {
	hidden := cube("obj-1")
	hidden.Name = "Hidden Cube"
	hidden.Visible = false

	out, warns := Compile(testProject(), []models.SceneObject{hidden}, nil)

	assert.Empty(t, warns)
	assert.NotContains(t, out, "a-entity geometry")
}

func TestCompileRotationDegrees(t *testing.T) {
	obj := cube("obj-1")
	obj.Rotation = models.Vector3{X: math.Pi / 2, Y: 0, Z: 0}

	out, _ := Compile(testProject(), []models.SceneObject{obj}, nil)

	assert.Contains(t, out, `rotation="90 0 0"`)
}

func TestCompileChromaKey(t *testing.T) {
	assets := map[string]models.Asset{
		"a1": {ID: "a1", Kind: models.AssetVideo, URL: "https://cdn.example.com/clip.mp4"},
	}

	video := models.NewSceneObject("obj-1", "Clip", models.KindVideo)
	video.AssetID = "a1"
	video.VideoProps.ChromaKey = false

	out, warns := Compile(testProject(), []models.SceneObject{video}, assets)
	require.Empty(t, warns)
	assert.Contains(t, out, "<a-video")
	assert.NotContains(t, out, "chromakey")

	video.VideoProps.ChromaKey = true
	video.VideoProps.ChromaColor = "#00ff00"
	video.VideoProps.Threshold = 0.35

	out, warns = Compile(testProject(), []models.SceneObject{video}, assets)
	require.Empty(t, warns)
	assert.Contains(t, out, `chromakey="color: #00ff00; threshold: 0.35"`)
}

func TestCompileDanglingAssetSkipped(t *testing.T) {
	model := models.NewSceneObject("obj-1", "Duck", models.KindModel)
	model.AssetID = "gone"

	out, warns := Compile(testProject(), []models.SceneObject{model}, map[string]models.Asset{})

	require.Len(t, warns, 1)
	assert.Equal(t, "obj-1", warns[0].ObjectID)
	assert.Contains(t, warns[0].Message, "dangling")
	assert.NotContains(t, out, "a-gltf-model")
}

func TestCompileInvalidPayloadReported(t *testing.T) {
	broken := models.NewSceneObject("obj-1", "Broken", models.KindPrimitive)

	out, warns := Compile(testProject(), []models.SceneObject{broken}, nil)

	require.Len(t, warns, 1)
	assert.NotContains(t, out, "a-entity geometry")
}

func TestCompileAudioHasNoTransform(t *testing.T) {
	assets := map[string]models.Asset{
		"a1": {ID: "a1", Kind: models.AssetAudio, URL: "https://cdn.example.com/track.mp3"},
	}
	audio := models.NewSceneObject("obj-1", "Track", models.KindAudio)
	audio.AssetID = "a1"
	audio.AudioProps.Volume = 0.5

	out, warns := Compile(testProject(), []models.SceneObject{audio}, assets)

	require.Empty(t, warns)
	assert.Contains(t, out, "volume: 0.5")
	line := ""
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "sound=") {
			line = l
		}
	}
	require.NotEmpty(t, line)
	assert.NotContains(t, line, "position=")
}

func TestCompilePreservesCreationOrder(t *testing.T) {
	first := cube("obj-1")
	first.Color = "#111111"
	second := cube("obj-2")
	second.Color = "#222222"

	out, _ := Compile(testProject(), []models.SceneObject{first, second}, nil)

	assert.Less(t, strings.Index(out, "#111111"), strings.Index(out, "#222222"))
}

func TestCompileTextNode(t *testing.T) {
	text := models.NewSceneObject("obj-1", "Label", models.KindText)
	text.Content = `Say "hi"`
	text.FontSize = 1.5

	out, warns := Compile(testProject(), []models.SceneObject{text}, nil)

	require.Empty(t, warns)
	assert.Contains(t, out, "<a-text")
	assert.Contains(t, out, "&#34;hi&#34;")
	assert.Contains(t, out, `width="1.5"`)
}
