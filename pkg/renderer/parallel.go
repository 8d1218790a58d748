package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// ParallelConfig contains configuration for tiled parallel rendering
type ParallelConfig struct {
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// ParallelRenderer splits the image into tiles and renders them on a worker pool.
// Output depends only on the scene and its seed, not on the number of workers.
type ParallelRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     ParallelConfig
	logger     core.Logger
}

// NewParallelRenderer creates a tiled renderer
func NewParallelRenderer(sc *scene.Scene, integ integrator.Integrator, config ParallelConfig, logger core.Logger) *ParallelRenderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultParallelConfig().TileSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &ParallelRenderer{
		scene:      sc,
		integrator: integ,
		config:     config,
		logger:     logger,
	}
}

// Render renders every tile and assembles the framebuffer.
// If ctx is cancelled before all tiles finish, it returns ctx.Err().
func (pr *ParallelRenderer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	config := pr.scene.SamplingConfig
	width, height := config.Width, config.Height

	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	tiles := NewTileGrid(width, height, pr.config.TileSize, config.Seed)
	workerPool := NewWorkerPool(pr.scene, pr.integrator, pr.config.NumWorkers, len(tiles))
	workerPool.Start(ctx)

	pr.logger.Printf("Rendering %d tiles with %d workers...\n", len(tiles), workerPool.GetNumWorkers())

	submitted := 0
	for _, tile := range tiles {
		if ctx.Err() != nil {
			break
		}
		workerPool.SubmitTask(TileTask{
			Tile:            tile,
			SamplesPerPixel: config.SamplesPerPixel,
			TaskID:          tile.ID,
			PixelStats:      pixelStats,
		})
		submitted++
	}

	var stats RenderStats
	var renderErr error
	for remaining := submitted; remaining > 0; remaining-- {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.add(result.Stats)
		pr.logger.Printf("Tiles remaining: %d\n", remaining-1)
	}
	workerPool.Stop()

	if renderErr == nil && submitted < len(tiles) {
		renderErr = ctx.Err()
	}
	if renderErr != nil {
		return nil, stats, fmt.Errorf("render cancelled: %w", renderErr)
	}

	fb := NewFramebuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fb.Set(x, y, pixelStats[y][x].GetColor())
		}
	}

	stats.finalize(start)
	return fb, stats, nil
}
