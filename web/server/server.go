package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/loaders"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// DefaultTileSize is the tile edge used for web renders
const DefaultTileSize = 32

// Server serves renders and scene metadata over HTTP
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string `json:"scene"`           // Built-in scene ID or scene file name
	Width           int    `json:"width"`           // Image width; height follows the scene's aspect ratio
	SamplesPerPixel int    `json:"samplesPerPixel"` // Rays per pixel
	MaxDepth        int    `json:"maxDepth"`        // Maximum bounce depth
	Seed            int64  `json:"seed"`            // Seed for scene layout and sampling
	Integrator      string `json:"integrator"`      // "path" or "normals"
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	ElapsedMs      int64   `json:"elapsedMs"`
	PrimitiveCount int     `json:"primitiveCount"`
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	scenes := append(scene.BuiltInScenes(), files...)
	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := loaders.CreateScene(sceneName, s.scenesDir, scene.DefaultSamplingConfig().Seed)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.SamplingConfig
	camera := sceneObj.Camera.GetConfig()
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"seed":            config.Seed,
			"lookFrom":        [3]float64{camera.Center.X, camera.Center.Y, camera.Center.Z},
			"lookAt":          [3]float64{camera.LookAt.X, camera.LookAt.Y, camera.LookAt.Z},
			"vfov":            camera.VFov,
			"aperture":        camera.Aperture,
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": minWidth, "max": maxWidth},
			"samplesPerPixel": map[string]int{"min": 1, "max": 10000},
			"maxDepth":        map[string]int{"min": 1, "max": 100},
		},
		"primitiveCount": sceneObj.GetPrimitiveCount(),
	}

	writeJSON(w, http.StatusOK, response)
}

const (
	minWidth = 16
	maxWidth = 2000
)

// parseCommonSceneParams parses the parameters shared by render and inspect requests
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, minWidth, maxWidth); err != nil {
		return err
	}

	seed, err := parseIntParam(query, "seed", int(scene.DefaultSamplingConfig().Seed), 0, 1<<31-1)
	if err != nil {
		return err
	}
	req.Seed = int64(seed)

	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.SamplesPerPixel, err = parseIntParam(query, "samplesPerPixel", 16, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 50, 1, 100); err != nil {
		return nil, err
	}

	req.Integrator = query.Get("integrator")
	switch req.Integrator {
	case "":
		req.Integrator = "path"
	case "path", "normals":
	default:
		return nil, fmt.Errorf("unknown integrator: %s", req.Integrator)
	}

	// Performance warning
	if req.Width > 800 && req.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// createScene builds the requested scene and applies the request's size and sampling
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := loaders.CreateScene(req.Scene, s.scenesDir, req.Seed)
	if err != nil {
		return nil, err
	}

	sceneObj.SetCameraConfig(geometry.MergeCameraConfig(sceneObj.CameraConfig, geometry.CameraConfig{Width: req.Width}))
	if req.SamplesPerPixel > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.SamplesPerPixel
	}
	if req.MaxDepth > 0 {
		sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	}
	sceneObj.SamplingConfig.Seed = req.Seed

	return sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
