// Package compiler lowers a project snapshot into the self-contained
// A-Frame/MindAR document the browser runtime executes. Compilation is a
// pure function of its inputs: the same snapshot always produces
// byte-identical output, and nothing is ever mutated.
package compiler

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"arstudio/internal/models"
)

const (
	aframeScript = "https://aframe.io/releases/1.4.2/aframe.min.js"
	mindarScript = "https://cdn.jsdelivr.net/npm/mind-ar@1.2.2/dist/mindar-image-aframe.prod.js"
)

// Warning reports an object the compiler skipped instead of emitting.
// Skips are best-effort downgrades, never hard failures, so the user still
// gets an export.
type Warning struct {
	ObjectID string
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("object %s: %s", w.ObjectID, w.Message)
}

// Compile renders the project and its ordered scene objects into markup.
// Objects compile in slice order (creation order). Invisible objects are
// skipped silently; objects with an invalid payload or a dangling asset
// reference are skipped with a warning.
//
// All four experience types currently compile through the same
// mindar-image-target wrapper. That is a known gap in the document
// structure, kept deliberately until a per-type wrapper strategy exists.
func Compile(project *models.Project, objects []models.SceneObject, assets map[string]models.Asset) (string, []Warning) {
	var warnings []Warning
	var nodes []string

	for i := range objects {
		obj := &objects[i]
		if !obj.Visible {
			continue
		}
		if err := obj.Validate(); err != nil {
			warnings = append(warnings, Warning{ObjectID: obj.ID, Message: err.Error()})
			continue
		}
		node, warn := emit(obj, assets)
		if warn != nil {
			warnings = append(warnings, *warn)
			continue
		}
		nodes = append(nodes, node)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n  <head>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", html.EscapeString(project.Name))
	fmt.Fprintf(&b, "    <script src=%q></script>\n", aframeScript)
	fmt.Fprintf(&b, "    <script src=%q></script>\n", mindarScript)
	b.WriteString("  </head>\n  <body>\n")
	b.WriteString(`    <a-scene mindar-image="imageTargetSrc: ./targets.mind;" color-space="sRGB" renderer="colorManagement: true, physicallyCorrectLights" vr-mode-ui="enabled: false" device-orientation-permission-ui="enabled: false">` + "\n")
	b.WriteString("      <a-camera position=\"0 0 0\" look-controls=\"enabled: false\"></a-camera>\n")
	b.WriteString("      <a-entity mindar-image-target=\"targetIndex: 0\">\n")
	for _, n := range nodes {
		b.WriteString("        ")
		b.WriteString(n)
		b.WriteString("\n")
	}
	b.WriteString("      </a-entity>\n    </a-scene>\n  </body>\n</html>\n")
	return b.String(), warnings
}

func emit(obj *models.SceneObject, assets map[string]models.Asset) (string, *Warning) {
	pos := vec(obj.Position)
	rot := degrees(obj.Rotation)
	scale := vec(obj.Scale)

	switch obj.Kind {
	case models.KindPrimitive:
		return fmt.Sprintf(`<a-entity geometry="primitive: %s" material="color: %s" position=%q rotation=%q scale=%q></a-entity>`,
			strings.ToLower(string(obj.PrimitiveType)), obj.Color, pos, rot, scale), nil

	case models.KindText:
		return fmt.Sprintf(`<a-text value=%s color=%q width=%q position=%q rotation=%q scale=%q></a-text>`,
			attr(obj.Content), obj.Color, num(obj.FontSize), pos, rot, scale), nil
	}

	asset, ok := assets[obj.AssetID]
	if !ok {
		return "", &Warning{ObjectID: obj.ID, Message: fmt.Sprintf("dangling asset reference %q", obj.AssetID)}
	}

	switch obj.Kind {
	case models.KindModel:
		return fmt.Sprintf(`<a-gltf-model src=%s position=%q rotation=%q scale=%q></a-gltf-model>`,
			attr(asset.URL), pos, rot, scale), nil

	case models.KindImage:
		return fmt.Sprintf(`<a-image src=%s position=%q rotation=%q scale=%q></a-image>`,
			attr(asset.URL), pos, rot, scale), nil

	case models.KindVideo:
		vp := obj.VideoProps
		node := fmt.Sprintf(`<a-video src=%s loop=%q autoplay=%q position=%q rotation=%q scale=%q`,
			attr(asset.URL), boolAttr(vp.Loop), boolAttr(vp.Autoplay), pos, rot, scale)
		if vp.ChromaKey {
			node += fmt.Sprintf(` chromakey="color: %s; threshold: %s"`, vp.ChromaColor, num(vp.Threshold))
		}
		return node + "></a-video>", nil

	case models.KindAudio:
		// audio is not spatially visualized; no transform on the node
		ap := obj.AudioProps
		return fmt.Sprintf(`<a-entity sound="src: url(%s); autoplay: %s; loop: %s; volume: %s"></a-entity>`,
			html.EscapeString(asset.URL), boolAttr(ap.Autoplay), boolAttr(ap.Loop), num(ap.Volume)), nil
	}

	return "", &Warning{ObjectID: obj.ID, Message: fmt.Sprintf("unknown object kind %q", obj.Kind)}
}

// degrees renders a radian rotation vector in the degrees the runtime
// expects. Skipping this conversion would leave orientations off by a
// factor of ~57.3.
func degrees(v models.Vector3) string {
	const radToDeg = 180 / math.Pi
	return fmt.Sprintf("%s %s %s", num(v.X*radToDeg), num(v.Y*radToDeg), num(v.Z*radToDeg))
}

func vec(v models.Vector3) string {
	return fmt.Sprintf("%s %s %s", num(v.X), num(v.Y), num(v.Z))
}

// num formats a float compactly and stably: rounded to 4 decimals so unit
// conversions land on exact values, no trailing zeros, no negative zero.
func num(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		return "0" // avoid "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func boolAttr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// attr quotes a user-controlled string for use as an HTML attribute value.
func attr(s string) string {
	return `"` + html.EscapeString(s) + `"`
}
