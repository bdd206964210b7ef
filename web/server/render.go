package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fogleman/gg"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"` // Pixel coordinates of the tile's top-left corner
	TileY      int    `json:"tileY"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles finished so far (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// CompleteUpdate is the final event of a streamed render
type CompleteUpdate struct {
	ImageData      string `json:"imageData"` // Base64 encoded PNG of the full frame
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	ElapsedMs      int64  `json:"elapsedMs"`
	NumWorkers     int    `json:"numWorkers"`
	PrimitiveCount int    `json:"primitiveCount"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "complete", "error"
	Data string `json:"data"` // JSON-encoded data
}

// newRaytracer wires the Whitted integrator and the tile renderer for a scene
func newRaytracer(sceneObj *scene.Scene, logger core.Logger) *renderer.Raytracer {
	whitted := integrator.NewWhittedIntegrator(integrator.Config{
		MaxDepth: sceneObj.Config.MaxDepth,
		Bias:     integrator.DefaultConfig().Bias,
	})

	config := renderer.DefaultConfig()
	config.TileSize = DefaultTileSize
	return renderer.NewRaytracer(sceneObj, whitted, config, logger)
}

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}

// handleRender renders a scene and responds with the PNG image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, statusForSceneError(err), err.Error())
		return
	}

	raytracer := newRaytracer(sceneObj, NewWebLogger(newRenderID(), nil))
	frame, stats, err := raytracer.Render(r.Context(), nil)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, frame); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders a scene and streams tiles as they finish via SSE
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, statusForSceneError(err), err.Error())
		return
	}

	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Single writer goroutine; it must be finished before the handler returns
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	// Console messages are forwarded until the render ends
	consoleCtx, stopConsole := context.WithCancel(ctx)
	consoleChan := make(chan ConsoleMessage, 50)
	var consoleWG sync.WaitGroup
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(consoleCtx, consoleChan, sseEventChan)
	}()

	startTime := time.Now()
	raytracer := newRaytracer(sceneObj, NewWebLogger(newRenderID(), consoleChan))
	frame, stats, renderErr := raytracer.Render(ctx, func(p renderer.TileProgress) {
		s.handleTileUpdate(ctx, sseEventChan, p)
	})

	stopConsole()
	consoleWG.Wait()

	if renderErr != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", renderErr))
	} else {
		s.handleComplete(ctx, sseEventChan, frame, stats, sceneObj, startTime)
	}

	close(sseEventChan)
	<-writerDone
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages to the SSE channel
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleTileUpdate encodes a finished tile and sends it as a tile event
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan SSEEvent, progress renderer.TileProgress) {
	bounds := progress.Tile.Bounds
	tileData, err := imageToBase64PNG(progress.Frame.SubImage(bounds))
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", bounds.Min.X, bounds.Min.Y, err)
		return
	}

	update := TileUpdate{
		TileX:      bounds.Min.X,
		TileY:      bounds.Min.Y,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		ImageData:  tileData,
		TileNumber: progress.TileNumber,
		TotalTiles: progress.TotalTiles,
	}
	s.sendEvent(ctx, sseEventChan, "tile", update)
}

// handleComplete sends the final frame
func (s *Server) handleComplete(ctx context.Context, sseEventChan chan SSEEvent, frame *renderer.Frame, stats renderer.RenderStats, sceneObj *scene.Scene, startTime time.Time) {
	imageData, err := imageToBase64PNG(frame.ToRGBA())
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	update := CompleteUpdate{
		ImageData:      imageData,
		Width:          frame.Width,
		Height:         frame.Height,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		NumWorkers:     stats.NumWorkers,
		PrimitiveCount: sceneObj.GetPrimitiveCount(),
	}
	s.sendEvent(ctx, sseEventChan, "complete", update)
}

// sendEvent marshals data and queues it for the SSE writer
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, eventType string, data interface{}) {
	encoded, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(encoded)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img *image.RGBA) (string, error) {
	var buf bytes.Buffer
	if err := gg.NewContextForRGBA(img).EncodePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
