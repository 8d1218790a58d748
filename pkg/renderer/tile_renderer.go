package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds, y = 0 at the top of the image
	Random *rand.Rand      // Tile-specific random generator for deterministic results
}

// NewTile creates a tile whose random stream depends only on the render seed and the tile ID
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(tileSeed(seed, id))),
	}
}

func tileSeed(seed int64, id int) int64 {
	return seed*1000003 + int64(id) + 1
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(sc *scene.Scene, integ integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      sc,
		integrator: integ,
	}
}

// RenderTileBounds renders the pixels within bounds into pixelStats, indexed [y][x] in image coordinates.
// Callers must give concurrent calls disjoint bounds.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, samplesPerPixel int) RenderStats {
	height := tr.scene.SamplingConfig.Height
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixelStats[y][x]
			before := ps.SampleCount
			samplePixel(tr.scene, tr.integrator, x, height-1-y, ps, sampler, samplesPerPixel)
			stats.TotalSamples += ps.SampleCount - before
		}
	}

	return stats
}
