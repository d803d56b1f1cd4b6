package renderer

import (
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
)

func TestNewWorkerPool_DefaultsToCPUCount(t *testing.T) {
	wp := NewWorkerPool(0, 1, nil)
	if wp.GetNumWorkers() <= 0 {
		t.Errorf("Expected a positive worker count, got %d", wp.GetNumWorkers())
	}

	wp = NewWorkerPool(3, 1, nil)
	if wp.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", wp.GetNumWorkers())
	}
}

func TestRenderAll_OrdersResultsAndMatchesSerialRender(t *testing.T) {
	sizes := [][2]int{{8, 6}, {5, 5}, {12, 3}, {1, 1}}
	tasks := make([]FrameTask, len(sizes))
	for i, size := range sizes {
		tasks[i] = FrameTask{TaskID: i, Name: "frame", Scene: threeSphereScene(t, size[0], size[1])}
	}

	results := RenderAll(tasks, 2, nil)
	if len(results) != len(tasks) {
		t.Fatalf("Expected %d results, got %d", len(tasks), len(results))
	}

	for i, result := range results {
		if result.TaskID != i {
			t.Errorf("Result %d: expected TaskID %d, got %d", i, i, result.TaskID)
		}
		if result.Error != nil {
			t.Fatalf("Result %d failed: %v", i, result.Error)
		}

		scene := tasks[i].Scene.(*testScene)
		serial := NewScreen(scene.width, scene.height, core.Black)
		if _, err := scene.camera.RenderFrame(scene.surface, scene.light, serial); err != nil {
			t.Fatalf("Serial render failed: %v", err)
		}
		for x, y := range serial.Pixels() {
			a, _ := serial.ColorAt(x, y)
			b, _ := result.Screen.ColorAt(x, y)
			if a != b {
				t.Fatalf("Result %d pixel (%d, %d) differs: %v vs %v", i, x, y, a, b)
			}
		}
	}
}

func TestRenderAll_EmptySceneStillSucceeds(t *testing.T) {
	scene := &testScene{
		camera:  testCamera(t),
		surface: geometry.NewMultiSurface(),
		light:   testLight(t, core.NewVec3(0, -1, 0)),
		width:   2,
		height:  2,
	}

	results := RenderAll([]FrameTask{{TaskID: 7, Name: "empty", Scene: scene}}, 1, &capturingLogger{})
	if len(results) != 1 || results[0].Error != nil {
		t.Fatalf("Unexpected results: %+v", results)
	}
	if results[0].Stats.PrimaryMisses != 4 {
		t.Errorf("Expected 4 misses, got %d", results[0].Stats.PrimaryMisses)
	}
}
