package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult describes the first surface seen through a pixel
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Sphere    *geometry.Sphere // The sphere that was hit, nil if it is not a plain sphere
}

// extractMaterialInfo describes a material with type assertions
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case nil:
		return "normals", properties

	case *material.Lambertian:
		properties["albedo"] = vecToArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecToArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo describes the sphere that was hit
func (s *Server) extractGeometryInfo(sphere *geometry.Sphere) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	if sphere == nil {
		return "unknown", properties
	}

	properties["center"] = vecToArray(sphere.Center)
	properties["radius"] = sphere.Radius
	if sphere.Radius < 0 {
		properties["hollow"] = true
	}
	return "sphere", properties
}

// inspectPixel casts a ray through the center of pixel (x, y), y = 0 at the top,
// and reports the first object hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	config := sceneObj.SamplingConfig
	s := pixelCenter(pixelX, config.Width)
	t := pixelCenter(config.Height-1-pixelY, config.Height)

	// A fixed seed keeps the lens sample, and so the answer, stable between requests
	sampler := core.NewSeededSampler(0)
	ray := sceneObj.Camera.GetRay(s, t, sampler)

	tMin := config.TMin
	hit, isHit := sceneObj.World.Hit(ray, tMin, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The list only reports the record, so find the sphere that produced it
	for _, object := range sceneObj.World.Objects {
		sphere, ok := object.(*geometry.Sphere)
		if !ok {
			continue
		}
		if sphereHit, ok := sphere.Hit(ray, tMin, hit.T+1e-9); ok && sphereHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Sphere: sphere}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// pixelCenter maps a pixel index to its viewport coordinate
func pixelCenter(index, size int) float64 {
	if size <= 1 {
		return 0.5
	}
	return (float64(index) + 0.5) / float64(size-1)
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.SamplingConfig
	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := s.extractGeometryInfo(result.Sphere)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecToArray(result.HitRecord.Point),
		Normal:       vecToArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}

	writeJSON(w, http.StatusOK, response)
}

func vecToArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor formats a [0,1] color as #rrggbb
func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}
