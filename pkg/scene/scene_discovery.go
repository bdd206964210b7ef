package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to scene file (file type only)
}

type builtinScene struct {
	info    SceneInfo
	factory func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Five red spheres lit by a single white light",
			Type:        "builtin",
		},
		factory: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "mirror",
			DisplayName: "Mirror",
			Description: "Mirror sphere reflecting colored Phong spheres",
			Type:        "builtin",
		},
		factory: NewMirrorScene,
	},
	{
		info: SceneInfo{
			ID:          "shadow",
			DisplayName: "Shadows",
			Description: "Spheres casting shadows from two colored lights",
			Type:        "builtin",
		},
		factory: NewShadowScene,
	},
	{
		info: SceneInfo{
			ID:          "glass",
			DisplayName: "Glass",
			Description: "Refractive glass sphere in front of colored spheres",
			Type:        "builtin",
		},
		factory: NewGlassScene,
	},
}

// ListBuiltinScenes returns the built-in scenes in a stable order
func ListBuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		infos = append(infos, b.info)
	}
	return infos
}

// NewBuiltinScene creates a fresh built-in scene by ID. The scene still
// needs Preprocess before rendering so that callers can adjust it first.
func NewBuiltinScene(id string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.factory(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// NewSceneByID creates a built-in scene, or for IDs of the form
// "file:<name>" loads <name>.json from sceneDir. File scenes come back
// preprocessed; callers preprocess again after adjusting either kind.
func NewSceneByID(id, sceneDir string) (*Scene, error) {
	if name, ok := strings.CutPrefix(id, "file:"); ok {
		if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
		}
		path := filepath.Join(sceneDir, name+".json")
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
		}
		return NewFileScene(path)
	}
	return NewBuiltinScene(id)
}

// ListSceneFiles scans dir for JSON scene descriptions. A missing
// directory is not an error.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseSceneFileMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneFileMetadata reads the optional "name" and "description"
// fields of a JSON scene file, falling back to the file name. Files that
// do not parse are reported as errors.
func ParseSceneFileMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          "file:" + nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Type:        "file",
		FilePath:    filePath,
	}

	header, err := loaders.LoadSceneFile(filePath)
	if err != nil {
		return info, err
	}

	if header.Name != "" {
		info.DisplayName = header.Name
	}
	info.Description = header.Description

	return info, nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-mirrors" -> "Two Mirrors"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
