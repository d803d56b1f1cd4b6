package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/output"
)

const tinySceneJSON = `{
	"name": "tiny",
	"width": 4,
	"height": 2,
	"camera": {"position": [0, 0, 0], "up": [0, 1, 0], "look": [0, 0, 1], "focalLength": 8, "sensor": [16, 9]},
	"light": {"direction": [0, 0, 1]},
	"surfaces": [
		{"type": "sphere", "center": [0, 0, 30], "radius": 10, "material": {"color": [1, 1, 0], "diffuse": 1}}
	]
}`

func writeTinyScene(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "tiny.json")
	if err := os.WriteFile(path, []byte(tinySceneJSON), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}
	return dir, path
}

func TestCreateScene(t *testing.T) {
	dir, path := writeTinyScene(t)

	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"single-sphere scene", "single-sphere", false},
		{"mirrors scene", "mirrors", false},

		// Scene files
		{"file scene by name", "file:tiny", false},
		{"file scene by path", path, false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing file scene", "file:nonexistent", true},
		{"missing scene path", filepath.Join(dir, "nonexistent.json"), true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, dir)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.Width <= 0 || s.Height <= 0 {
				t.Errorf("Scene resolution should be positive, got %dx%d", s.Width, s.Height)
			}
			if s.Camera == nil || s.World == nil || s.Light == nil {
				t.Errorf("Scene is missing components: %+v", s)
			}
		})
	}
}

func TestSceneSlug(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"default", "default"},
		{"file:tiny", "file-tiny"},
		{"scenes/tiny.json", "tiny"},
	}

	for _, tt := range tests {
		if got := sceneSlug(tt.id); got != tt.want {
			t.Errorf("sceneSlug(%q): expected %q, got %q", tt.id, tt.want, got)
		}
	}
}

func TestBatchOutputPath(t *testing.T) {
	tests := []struct {
		base   string
		format output.Format
		want   string
	}{
		{"raytraced.ppm", output.FormatPPM, "raytraced-mirrors.ppm"},
		{"out/render.ppm.zst", output.FormatPPMZstd, "out/render-mirrors.ppm.zst"},
		{"RENDER.PNG", output.FormatPNG, "RENDER-mirrors.PNG"},
		{"render", output.FormatWebP, "render-mirrors.webp"},
	}

	for _, tt := range tests {
		if got := batchOutputPath(tt.base, "mirrors", tt.format); got != tt.want {
			t.Errorf("batchOutputPath(%q): expected %q, got %q", tt.base, tt.want, got)
		}
	}
}

func TestRun_SingleScene(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "frames", "sphere.png")
	var stdout bytes.Buffer

	err := run([]string{"-scene", "single-sphere", "-width", "8", "-height", "6", "-output", outPath, "-preview", "4"}, &stdout)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, stdout.String())
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("Expected 8x6 output, got %v", b)
	}

	previewPath := strings.TrimSuffix(outPath, ".png") + ".preview.png"
	pf, err := os.Open(previewPath)
	if err != nil {
		t.Fatalf("Preview not written: %v", err)
	}
	defer pf.Close()
	preview, err := png.Decode(pf)
	if err != nil {
		t.Fatalf("Preview is not a PNG: %v", err)
	}
	if b := preview.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("Expected 4x3 preview, got %v", b)
	}

	if !strings.Contains(stdout.String(), "Render saved as "+outPath) {
		t.Errorf("Expected save message, got:\n%s", stdout.String())
	}
}

func TestRun_Batch(t *testing.T) {
	_, scenePath := writeTinyScene(t)
	dir := t.TempDir()
	base := filepath.Join(dir, "batch.ppm")

	err := run([]string{"-scene", "single-sphere, " + scenePath, "-width", "4", "-height", "2", "-bounces", "1", "-workers", "2", "-output", base}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range []string{"batch-single-sphere.ppm", "batch-tiny.ppm"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("Missing batch output %s: %v", name, err)
			continue
		}
		if !strings.HasPrefix(string(data), "P3\n4 2\n255\n") {
			t.Errorf("%s: unexpected header %q", name, string(data[:min(len(data), 16)]))
		}
	}
}

func TestBuildTasks_RepeatedScenesGetDistinctNames(t *testing.T) {
	_, scenePath := writeTinyScene(t)

	tasks, err := buildTasks(options{scenes: []string{"default", "default", "default-1", scenePath, scenePath}})
	if err != nil {
		t.Fatalf("buildTasks failed: %v", err)
	}

	expected := []string{"default", "default-1", "default-1-2", "tiny", "tiny-4"}
	if len(tasks) != len(expected) {
		t.Fatalf("Expected %d tasks, got %d", len(expected), len(tasks))
	}
	for i, task := range tasks {
		if task.TaskID != i || task.Name != expected[i] {
			t.Errorf("Task %d: expected %q, got %d %q", i, expected[i], task.TaskID, task.Name)
		}
	}
}

func TestRun_BatchRepeatedScene(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "twice.ppm")

	err := run([]string{"-scene", "single-sphere,single-sphere", "-width", "4", "-height", "2", "-output", base}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range []string{"twice-single-sphere.ppm", "twice-single-sphere-1.ppm"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Missing batch output %s: %v", name, err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 files, got %d", len(entries))
	}
}

func TestRun_ConfigOverridesScene(t *testing.T) {
	_, scenePath := writeTinyScene(t)
	outPath := filepath.Join(t.TempDir(), "tiny.ppm")

	if err := run([]string{"-scene", "nonexistent", "-config", scenePath, "-output", outPath}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	// The file's own 4x2 resolution is kept
	if !strings.HasPrefix(string(data), "P3\n4 2\n255\n") {
		t.Errorf("Unexpected header %q", string(data[:min(len(data), 16)]))
	}
}

func TestRun_Errors(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.ppm")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"-scene", "nonexistent", "-output", outPath}},
		{"empty scene list", []string{"-scene", " , ", "-output", outPath}},
		{"negative width", []string{"-width", "-1", "-output", outPath}},
		{"negative bounces", []string{"-bounces", "-2", "-output", outPath}},
		{"unknown format", []string{"-format", "gif", "-output", outPath}},
		{"unknown extension", []string{"-output", "render.gif"}},
		{"bad flag", []string{"-no-such-flag"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.args, &bytes.Buffer{}); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}

	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Errorf("No output should be written on error, got %v", err)
	}
}

func TestRun_HelpAndList(t *testing.T) {
	var help bytes.Buffer
	if err := run([]string{"-help"}, &help); err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, want := range []string{"Usage:", "-scene", "single-sphere", "ppm.zst"} {
		if !strings.Contains(help.String(), want) {
			t.Errorf("Help output missing %q", want)
		}
	}

	var list bytes.Buffer
	if err := run([]string{"-list"}, &list); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.HasPrefix(list.String(), "Built-in Scenes:") || !strings.Contains(list.String(), "mirrors") {
		t.Errorf("Unexpected scene list:\n%s", list.String())
	}
}
