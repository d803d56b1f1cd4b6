package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("Error: %v", err)
	}
}

// options holds the parsed command line
type options struct {
	scenes     []string
	configPath string
	width      int
	height     int
	bounces    int
	output     string
	format     output.Format
	workers    int
	preview    int
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stdout)

	sceneIDs := fs.String("scene", "default", "Scene ID, file:<name>, path to a .json scene, or a comma-separated list of these")
	configPath := fs.String("config", "", "JSON scene file to render (overrides -scene)")
	width := fs.Int("width", 0, "Image width (0 keeps the scene's own)")
	height := fs.Int("height", 0, "Image height (0 keeps the scene's own)")
	bounces := fs.Int("bounces", 0, "Mirror reflection budget (0 keeps the scene's own)")
	outputPath := fs.String("output", "raytraced.ppm", "Output file; batch renders insert the scene name")
	format := fs.String("format", "", "Output format (default: from the -output extension)")
	workers := fs.Int("workers", 0, "Frames rendered concurrently in a batch (0 = number of CPUs)")
	preview := fs.Int("preview", 0, "Also write a PNG preview at most this many pixels wide")
	list := fs.Bool("list", false, "List available scenes and exit")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *help {
		printHelp(fs, stdout)
		return nil
	}
	if *list {
		return listScenes(stdout)
	}

	opts := options{
		configPath: *configPath,
		width:      *width,
		height:     *height,
		bounces:    *bounces,
		output:     *outputPath,
		workers:    *workers,
		preview:    *preview,
	}
	for _, id := range strings.Split(*sceneIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			opts.scenes = append(opts.scenes, id)
		}
	}

	if opts.width < 0 || opts.height < 0 {
		return fmt.Errorf("resolution must not be negative, got %dx%d", opts.width, opts.height)
	}
	if opts.bounces < 0 {
		return fmt.Errorf("bounces must not be negative, got %d", opts.bounces)
	}
	if opts.preview < 0 {
		return fmt.Errorf("preview width must not be negative, got %d", opts.preview)
	}

	var err error
	if *format != "" {
		opts.format, err = output.ParseFormat(*format)
	} else {
		opts.format, err = output.FormatFromPath(opts.output)
	}
	if err != nil {
		return err
	}

	return render(opts, log.New(stdout, "", 0))
}

// render builds every requested scene, renders them as one batch and
// saves the frames
func render(opts options, logger *log.Logger) error {
	tasks, err := buildTasks(opts)
	if err != nil {
		return err
	}

	logger.Printf("Starting Recursive Raytracer with %d scene(s)...", len(tasks))
	startTime := time.Now()
	results := renderer.RenderAll(tasks, opts.workers, logger)
	logger.Printf("Render completed in %v", time.Since(startTime))

	var errs []error
	for _, result := range results {
		if result.Error != nil {
			errs = append(errs, fmt.Errorf("%s: %w", result.Name, result.Error))
			continue
		}

		path := opts.output
		if len(tasks) > 1 {
			path = batchOutputPath(opts.output, result.Name, opts.format)
		}

		if err := output.SaveFile(path, result.Screen, opts.format); err != nil {
			errs = append(errs, err)
			continue
		}
		logger.Printf("Render saved as %s (%s)", path, result.Stats)

		if opts.preview > 0 {
			previewPath := strings.TrimSuffix(path, "."+string(opts.format)) + ".preview.png"
			if err := savePreview(previewPath, result.Screen, opts.preview); err != nil {
				errs = append(errs, err)
				continue
			}
			logger.Printf("Preview saved as %s", previewPath)
		}
	}
	return errors.Join(errs...)
}

// buildTasks resolves the requested scenes and applies the overrides
func buildTasks(opts options) ([]renderer.FrameTask, error) {
	ids := opts.scenes
	if opts.configPath != "" {
		ids = []string{opts.configPath}
	}
	if len(ids) == 0 {
		return nil, errors.New("no scene given")
	}

	scenesDir := scene.FindScenesDir()
	tasks := make([]renderer.FrameTask, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		s, err := createScene(id, scenesDir)
		if err != nil {
			return nil, err
		}
		if opts.bounces > 0 {
			s.Camera.MaxBounces = opts.bounces
		}
		// Batch file names come from Name, so a repeated slug gets the task ID
		name := sceneSlug(id)
		for seen[name] {
			name = fmt.Sprintf("%s-%d", name, i)
		}
		seen[name] = true

		tasks = append(tasks, renderer.FrameTask{
			TaskID: i,
			Name:   name,
			Scene:  s.WithResolution(opts.width, opts.height),
		})
	}
	return tasks, nil
}

// createScene resolves a built-in ID, file:<name> from scenesDir, or a
// path to a .json scene
func createScene(id, scenesDir string) (*scene.Scene, error) {
	if id == "" {
		return nil, errors.New("empty scene name")
	}
	s, err := scene.Resolve(id, scenesDir)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", id, err)
	}
	return s, nil
}

// sceneSlug turns a scene ID into something usable inside a file name
func sceneSlug(id string) string {
	if strings.HasSuffix(id, ".json") {
		base := filepath.Base(id)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return strings.NewReplacer(":", "-", "/", "-", `\`, "-").Replace(id)
}

// batchOutputPath inserts the scene name before the format extension:
// out/render.ppm.zst -> out/render-mirrors.ppm.zst
func batchOutputPath(base, name string, format output.Format) string {
	ext := "." + string(format)
	if strings.HasSuffix(strings.ToLower(base), ext) {
		return base[:len(base)-len(ext)] + "-" + name + ext
	}
	return base + "-" + name + ext
}

func savePreview(path string, screen *renderer.Screen, maxWidth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := output.EncodeImage(f, output.Thumbnail(screen.Image(), maxWidth), output.FormatPNG); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Recursive Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Built-in scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Output formats: %v\n", output.Formats())
}

func listScenes(w io.Writer) error {
	response, err := scene.ListAllScenes(scene.FindScenesDir())
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-20s %s\n", info.ID, info.Description)
		}
	}
	return nil
}
