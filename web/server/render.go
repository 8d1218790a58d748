package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// RenderComplete is the final event of a render stream
type RenderComplete struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

// renderOutcome carries the renderer's result back to the handler goroutine
type renderOutcome struct {
	fb    *renderer.Framebuffer
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene on the worker pool and streams progress via SSE.
// Only the handler goroutine writes to the response.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}

	var integ integrator.Integrator = integrator.NewPathTracingIntegrator(sceneObj.SamplingConfig)
	if req.Integrator == "normals" {
		integ = integrator.NewNormalIntegrator(sceneObj.SamplingConfig)
	}

	consoleChan := make(chan ConsoleMessage, 100)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan, nil)

	config := renderer.ParallelConfig{TileSize: DefaultTileSize}
	parallelRenderer := renderer.NewParallelRenderer(sceneObj, integ, config, webLogger)

	startTime := time.Now()
	done := make(chan renderOutcome, 1)
	go func() {
		fb, stats, err := parallelRenderer.Render(ctx)
		done <- renderOutcome{fb: fb, stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)

		case outcome := <-done:
			// Flush progress logged before the render finished
			for len(consoleChan) > 0 {
				s.sendConsoleMessage(w, <-consoleChan)
			}

			if outcome.err != nil {
				s.sendSSEEvent(w, "error", fmt.Sprintf("Rendering failed: %v", outcome.err))
				return
			}

			complete, err := s.buildRenderComplete(outcome, sceneObj.GetPrimitiveCount(), time.Since(startTime))
			if err != nil {
				s.sendSSEEvent(w, "error", err.Error())
				return
			}
			data, err := json.Marshal(complete)
			if err != nil {
				s.sendSSEEvent(w, "error", err.Error())
				return
			}
			s.sendSSEEvent(w, "complete", string(data))
			return

		case <-ctx.Done():
			// Client disconnected; the renderer sees the same context and stops
			return
		}
	}
}

// buildRenderComplete encodes the finished image and its statistics
func (s *Server) buildRenderComplete(outcome renderOutcome, primitiveCount int, elapsed time.Duration) (RenderComplete, error) {
	var buf bytes.Buffer
	if err := output.WritePNG(&buf, outcome.fb); err != nil {
		return RenderComplete{}, err
	}

	return RenderComplete{
		Width:     outcome.fb.Width,
		Height:    outcome.fb.Height,
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats: Stats{
			TotalPixels:    outcome.stats.TotalPixels,
			TotalSamples:   int64(outcome.stats.TotalSamples),
			AverageSamples: outcome.stats.AverageSamples,
			ElapsedMs:      elapsed.Milliseconds(),
			PrimitiveCount: primitiveCount,
		},
	}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendConsoleMessage forwards a renderer log line as a console event
func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return
	}
	s.sendSSEEvent(w, "console", string(data))
}

// sendSSEEvent writes one SSE event and flushes it to the client
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}
