package renderer

import (
	"runtime"
	"sort"
	"sync"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// FrameTask is one independent frame to render
type FrameTask struct {
	TaskID int // For deterministic ordering
	Name   string
	Scene  Scene
}

// FrameResult contains the result from rendering a frame
type FrameResult struct {
	TaskID int
	Name   string
	Screen *Screen
	Stats  RenderStats
	Error  error
}

// WorkerPool renders whole frames in parallel. Each frame is rendered by
// a single worker, so every frame stays single threaded and deterministic.
type WorkerPool struct {
	taskQueue   chan FrameTask
	resultQueue chan FrameResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual frame rendering tasks
type Worker struct {
	ID          int
	taskQueue   chan FrameTask
	resultQueue chan FrameResult
	logger      core.Logger
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize bounds the number of queued tasks and undelivered results.
func NewWorkerPool(numWorkers, queueSize int, logger core.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	wp := &WorkerPool{
		taskQueue:   make(chan FrameTask, queueSize),
		resultQueue: make(chan FrameResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			logger:      logger,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a frame task to the worker pool
func (wp *WorkerPool) SubmitTask(task FrameTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed frame result
func (wp *WorkerPool) GetResult() (FrameResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// RenderAll renders every task and returns the results ordered by TaskID
func RenderAll(tasks []FrameTask, numWorkers int, logger core.Logger) []FrameResult {
	wp := NewWorkerPool(numWorkers, len(tasks), logger)
	wp.Start()

	for _, task := range tasks {
		wp.SubmitTask(task)
	}
	go wp.Stop()

	results := make([]FrameResult, 0, len(tasks))
	for {
		result, ok := wp.GetResult()
		if !ok {
			break
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].TaskID < results[j].TaskID
	})
	return results
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.logger.Printf("Worker %d: rendering %s\n", w.ID, task.Name)
		screen, stats, err := RenderScene(task.Scene, w.logger)

		w.resultQueue <- FrameResult{
			TaskID: task.TaskID,
			Name:   task.Name,
			Screen: screen,
			Stats:  stats,
			Error:  err,
		}
	}
}
