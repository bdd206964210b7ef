package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// DefaultTileSize is the tile size used for web renders
	DefaultTileSize = 32
	maxImageSize    = 2000
	maxDepthLimit   = 50
)

// Server handles web requests for the raytracer
type Server struct {
	port     int
	sceneDir string
}

// NewServer creates a new web server. Scene files are discovered in sceneDir.
func NewServer(port int, sceneDir string) *Server {
	return &Server{port: port, sceneDir: sceneDir}
}

// RenderRequest represents a render request from the client. Zero values
// keep the scene's own settings.
type RenderRequest struct {
	Scene    string `json:"scene"`    // Scene ID (e.g., "default" or "file:mirror-hall")
	Width    int    `json:"width"`    // Image width
	Height   int    `json:"height"`   // Image height
	MaxDepth int    `json:"maxDepth"` // Maximum reflection/refraction depth, -1 = scene value
}

// Handler returns the HTTP handler with all API routes registered
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
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

// handleScenes lists the built-in scenes followed by the scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes := scene.ListBuiltinScenes()

	files, err := scene.ListSceneFiles(s.sceneDir)
	if err != nil {
		log.Printf("Error listing scene files: %v", err)
	}
	scenes = append(scenes, files...)

	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}

	sceneObj, err := scene.NewSceneByID(sceneID, s.sceneDir)
	if err != nil {
		writeError(w, statusForSceneError(err), err.Error())
		return
	}

	response := map[string]interface{}{
		"scene": sceneID,
		"defaults": map[string]interface{}{
			"width":      sceneObj.Config.Width,
			"height":     sceneObj.Config.Height,
			"maxDepth":   sceneObj.Config.MaxDepth,
			"primitives": sceneObj.GetPrimitiveCount(),
			"lights":     len(sceneObj.Lights),
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": 1, "max": maxImageSize},
			"height":   map[string]int{"min": 1, "max": maxImageSize},
			"maxDepth": map[string]int{"min": 0, "max": maxDepthLimit},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the scene selection and size parameters
// shared by render and inspect requests
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, maxImageSize); err != nil {
		return err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", -1, 0, maxDepthLimit); err != nil {
		return err
	}
	return nil
}

// createScene builds the requested scene with the request's overrides applied
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.NewSceneByID(req.Scene, s.sceneDir)
	if err != nil {
		return nil, err
	}

	if req.Width > 0 {
		sceneObj.Config.Width = req.Width
	}
	if req.Height > 0 {
		sceneObj.Config.Height = req.Height
	}
	if req.MaxDepth >= 0 {
		sceneObj.Config.MaxDepth = req.MaxDepth
	}

	if err := sceneObj.Preprocess(); err != nil {
		return nil, err
	}
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

// statusForSceneError maps scene construction errors to HTTP status codes
func statusForSceneError(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
