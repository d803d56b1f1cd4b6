package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// BandUpdate represents one finished band of rows
type BandUpdate struct {
	BandNumber int    `json:"bandNumber"` // 1-based
	TotalBands int    `json:"totalBands"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"` // Base64 encoded PNG of just this band
	Stats      Stats  `json:"stats"`     // Cumulative
	IsLast     bool   `json:"isLast"`
}

// CompleteUpdate is sent once after the last band
type CompleteUpdate struct {
	Scene      string `json:"scene"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	MaxBounces int    `json:"maxBounces"`
	Stats      Stats  `json:"stats"`
}

// StreamEvent is one message of a live render. The SSE and websocket
// endpoints carry the same events.
type StreamEvent struct {
	Type string          `json:"type"` // "console", "band", "complete", "error"
	Data json.RawMessage `json:"data"`
}

// handleRender streams a progressive render via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Single writer goroutine owns w
	events := make(chan StreamEvent, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writeSSEEvents(ctx, cancel, w, events)
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		sendEvent(ctx, events, "error", fmt.Sprintf("Invalid request: %v", err))
		close(events)
	} else {
		s.streamRender(ctx, req, events)
	}

	// w must not be touched after the handler returns
	<-done
}

// handleRenderWS streams a progressive render over a websocket
func (s *Server) handleRenderWS(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client never sends data; reading only detects that it went away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	events := make(chan StreamEvent, 100)
	go s.streamRender(ctx, req, events)

	failed := false
	for event := range events {
		if failed {
			continue // drain so the producer can finish
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("websocket write failed: %v", err)
			failed = true
			cancel()
		}
	}

	if !failed {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "render finished"))
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine.
// A failed write cancels the render.
func (s *Server) writeSSEEvents(ctx context.Context, cancel context.CancelFunc, w http.ResponseWriter, events <-chan StreamEvent) {
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				cancel()
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards log lines until consoleChan is closed.
// Console output is best effort and dropped when events is full.
func (s *Server) streamConsoleMessages(consoleChan <-chan ConsoleMessage, events chan<- StreamEvent) {
	for msg := range consoleChan {
		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		select {
		case events <- StreamEvent{Type: "console", Data: data}:
		default:
		}
	}
}

// streamRender runs one render and publishes its events, closing events
// when finished
func (s *Server) streamRender(ctx context.Context, req *RenderRequest, events chan<- StreamEvent) {
	defer close(events)

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(consoleChan, events)
	}()

	complete, err := s.runRender(ctx, req, webLogger, events)

	// Console output is flushed before the final event, and the console
	// goroutine must stop sending before events is closed
	close(consoleChan)
	<-consoleDone

	switch {
	case err == nil:
		sendEvent(ctx, events, "complete", complete)
	case ctx.Err() == nil:
		sendEvent(ctx, events, "error", fmt.Sprintf("Render error: %v", err))
	}
}

// runRender renders req band by band, sending a "band" event per band
func (s *Server) runRender(ctx context.Context, req *RenderRequest, logger core.Logger, events chan<- StreamEvent) (CompleteUpdate, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return CompleteUpdate{}, err
	}

	width, height := sceneObj.GetResolution()
	camera := sceneObj.GetCamera()
	screen := renderer.NewScreen(width, height, core.Black)

	logger.Printf("Rendering %s at %dx%d with %d bounces, %d rows per band\n",
		sceneObj.Name, width, height, camera.MaxBounces, req.RowsPerBand)

	config := renderer.ProgressiveConfig{RowsPerBand: req.RowsPerBand}
	stats, err := camera.RenderProgressive(ctx, sceneObj.GetSurface(), sceneObj.GetLight(), screen, config,
		func(band renderer.BandResult) error {
			imageData, err := s.imageToBase64PNG(screen.SubImage(band.Bounds))
			if err != nil {
				return fmt.Errorf("failed to encode band: %w", err)
			}

			return sendEvent(ctx, events, "band", BandUpdate{
				BandNumber: band.BandNumber,
				TotalBands: band.TotalBands,
				X:          band.Bounds.Min.X,
				Y:          band.Bounds.Min.Y,
				Width:      band.Bounds.Dx(),
				Height:     band.Bounds.Dy(),
				ImageData:  imageData,
				Stats:      newStats(band.Stats),
				IsLast:     band.IsLast,
			})
		})
	if err != nil {
		return CompleteUpdate{}, err
	}

	logger.Printf("Rendered %s\n", stats)

	return CompleteUpdate{
		Scene:      req.Scene,
		Width:      width,
		Height:     height,
		MaxBounces: camera.MaxBounces,
		Stats:      newStats(stats),
	}, nil
}

// sendEvent JSON-encodes payload and queues it, giving up when ctx ends
func sendEvent(ctx context.Context, events chan<- StreamEvent, eventType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	select {
	case events <- StreamEvent{Type: eventType, Data: data}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
