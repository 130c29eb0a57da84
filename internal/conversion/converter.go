package conversion

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// NeedsConversion reports whether a model file must be converted before
// serving. GLB plays in the browser directly; everything else goes
// through Assimp first.
func NeedsConversion(ext string) bool {
	switch strings.ToLower(ext) {
	case ".fbx", ".obj", ".dae", ".stl", ".gltf":
		return true
	}
	return false
}

// ToGLB converts a 3D model file to glTF 2.0 binary via the Assimp CLI,
// embedding textures. Returns the path of the produced .glb file.
func ToGLB(inputPath string) (string, error) {
	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".glb"

	cmd := exec.Command("assimp", "export", inputPath, outputPath, "-fglb2", "-embtex")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "assimp export failed: %s", stderr.String())
	}
	return outputPath, nil
}
