package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene reports a scene ID that is neither built in nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
	filePrefix   = "file:"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to JSON file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// builtins maps built-in scene IDs to their configs, in listing order
var builtins = []struct {
	id     string
	config func() Config
}{
	{"default", DefaultConfig},
	{"single-sphere", SingleSphereConfig},
	{"mirrors", MirrorsConfig},
}

// FindScenesDir returns the first existing scenes directory, or "" when there is none
func FindScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListBuiltinScenes returns the scenes compiled into the binary
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		cfg := b.config()
		scenes = append(scenes, SceneInfo{
			ID:          b.id,
			Name:        cfg.Name,
			DisplayName: titleCase(cfg.Name),
			Description: cfg.Description,
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}
	return scenes
}

// ListFileScenes scans dir for *.json scene files. An empty dir lists nothing.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a scene
// file, falling back to values derived from the file name
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          filePrefix + nameWithoutExt,
		Name:        nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Group:       fileGroup,
		Type:        "file",
		FilePath:    filePath,
	}

	cfg, err := Load(filePath)
	if err != nil {
		return info, err
	}

	if cfg.Name != "" {
		info.Name = cfg.Name
		info.DisplayName = titleCase(cfg.Name)
	}
	info.Description = cfg.Description
	if cfg.Group != "" {
		info.Group = cfg.Group
	}
	return info, nil
}

// ListAllScenes returns built-in and file scenes, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	groupMap := make(map[string][]SceneInfo)
	for _, s := range append(ListBuiltinScenes(), fileScenes...) {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtinGroup,
		Scenes: groupMap[builtinGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// Resolve builds the scene named by id: a built-in ID, "file:<name>" for
// <dir>/<name>.json, or a path to a .json file
func Resolve(id, dir string) (*Scene, error) {
	for _, b := range builtins {
		if b.id == id {
			return b.config().Build()
		}
	}

	if name, ok := strings.CutPrefix(id, filePrefix); ok {
		if dir == "" || name == "" || strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
		}
		return loadExisting(filepath.Join(dir, name+".json"), id)
	}

	if strings.HasSuffix(id, ".json") {
		return loadExisting(id, id)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

func loadExisting(path, id string) (*Scene, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return LoadScene(path)
}

// titleCase converts a filename-style string to title case
// e.g., "single-sphere" -> "Single Sphere"
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
