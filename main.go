package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/loaders"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneType  string
	scenesDir  string
	width      int
	spp        int
	depth      int
	seed       int64
	aperture   float64
	output     string
	save       bool
	parallel   bool
	workers    int
	tileSize   int
	integrator string
	sky        string
	caption    string
	list       bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.sceneType, "scene", "random", "Scene: built-in name (default, random, spheregrid, normals), scene file name, or path to a .json file")
	fs.StringVar(&opts.scenesDir, "scenes-dir", loaders.DefaultScenesDir, "Directory searched for scene files by name")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.Int64Var(&opts.seed, "seed", -1, "Random seed for scene generation and sampling (-1 = scene default)")
	fs.Float64Var(&opts.aperture, "aperture", -1, "Lens aperture, 0 = pinhole (-1 = scene default)")
	fs.StringVar(&opts.output, "output", "", "Output file (.ppm, .png, .bmp, .tiff); empty writes PPM to stdout")
	fs.BoolVar(&opts.save, "save", false, "Save a PNG under output/<scene>/render_<timestamp>.png")
	fs.BoolVar(&opts.parallel, "parallel", false, "Render tiles on a worker pool")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&opts.tileSize, "tile", renderer.DefaultParallelConfig().TileSize, "Tile size for parallel rendering")
	fs.StringVar(&opts.integrator, "integrator", "path", "Integrator: 'path' or 'normals'")
	fs.StringVar(&opts.sky, "sky", "", "Color at the top of the background gradient (name or #rrggbb)")
	fs.StringVar(&opts.caption, "caption", "", "Text drawn along the bottom of PNG, BMP and TIFF output")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "", 0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout, logger); err != nil {
		logger.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// run renders the selected scene and writes the image
func run(ctx context.Context, opts options, stdout io.Writer, logger core.Logger) error {
	if opts.list {
		return listScenes(stdout, opts.scenesDir)
	}

	selectedScene, err := createScene(opts.sceneType, opts.scenesDir, opts.seed)
	if err != nil {
		return err
	}
	if err := applyOverrides(selectedScene, opts); err != nil {
		return err
	}

	integ, err := createIntegrator(opts.integrator, selectedScene.SamplingConfig)
	if err != nil {
		return err
	}

	config := selectedScene.SamplingConfig
	logger.Printf("Rendering %s: %dx%d, %d samples per pixel, max depth %d, %d objects\n",
		opts.sceneType, config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth, selectedScene.GetPrimitiveCount())

	var fb *renderer.Framebuffer
	var stats renderer.RenderStats
	if opts.parallel {
		parallelConfig := renderer.ParallelConfig{TileSize: opts.tileSize, NumWorkers: opts.workers}
		fb, stats, err = renderer.NewParallelRenderer(selectedScene, integ, parallelConfig, logger).Render(ctx)
		if err != nil {
			return err
		}
	} else {
		fb, stats = renderer.NewRaytracer(selectedScene, integ, logger).Render()
	}

	logger.Printf("Render completed in %v (%d pixels, %.1f samples per pixel)\n",
		stats.Elapsed.Round(time.Millisecond), stats.TotalPixels, stats.AverageSamples)

	if err := writeOutput(fb, opts, stdout, logger); err != nil {
		return err
	}

	logger.Printf("Done.\n")
	return nil
}

// createScene resolves a scene name or file path
func createScene(sceneType, scenesDir string, seed int64) (*scene.Scene, error) {
	layoutSeed := seed
	if layoutSeed < 0 {
		layoutSeed = scene.DefaultSamplingConfig().Seed
	}

	selectedScene, err := loaders.CreateScene(sceneType, scenesDir, layoutSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	return selectedScene, nil
}

// applyOverrides applies the command line settings on top of the scene defaults
func applyOverrides(sc *scene.Scene, opts options) error {
	if opts.width < 0 || opts.spp < 0 || opts.depth < 0 {
		return fmt.Errorf("width, spp and depth must not be negative")
	}

	cameraConfig := geometry.MergeCameraConfig(sc.CameraConfig, geometry.CameraConfig{Width: opts.width})
	if opts.aperture >= 0 {
		cameraConfig.Aperture = opts.aperture
	}
	sc.SetCameraConfig(cameraConfig)

	if opts.spp > 0 {
		sc.SamplingConfig.SamplesPerPixel = opts.spp
	}
	if opts.depth > 0 {
		sc.SamplingConfig.MaxDepth = opts.depth
	}
	if opts.seed >= 0 {
		sc.SamplingConfig.Seed = opts.seed
	}

	if opts.sky != "" {
		sky, err := scene.ParseColor(opts.sky)
		if err != nil {
			return fmt.Errorf("invalid sky color: %w", err)
		}
		sc.Background.Top = sky
	}

	return nil
}

// createIntegrator selects the light transport algorithm
func createIntegrator(name string, config scene.SamplingConfig) (integrator.Integrator, error) {
	switch name {
	case "path":
		return integrator.NewPathTracingIntegrator(config), nil
	case "normals":
		return integrator.NewNormalIntegrator(config), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q", name)
	}
}

// writeOutput writes the image to stdout, an explicit file or the timestamped output directory
func writeOutput(fb *renderer.Framebuffer, opts options, stdout io.Writer, logger core.Logger) error {
	filename := opts.output
	if opts.save && filename == "" {
		outputDir := createOutputDir(opts.sceneType)
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	if filename == "" {
		return output.WriteCaptioned(stdout, fb, output.FormatPPM, opts.caption)
	}

	format, err := output.FormatFromPath(filename)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := output.WriteCaptioned(file, fb, format, opts.caption); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// createOutputDir returns the directory renders of a scene are saved to
func createOutputDir(sceneType string) string {
	base := filepath.Base(sceneType)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join("output", base)
}

// listScenes prints the built-in scenes followed by the scene files in dir
func listScenes(w io.Writer, dir string) error {
	files, err := scene.ListSceneFiles(dir)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Built-in scenes:")
	for _, info := range scene.BuiltInScenes() {
		fmt.Fprintf(w, "  %-12s %s\n", info.ID, info.Description)
	}

	if len(files) > 0 {
		fmt.Fprintf(w, "\nScene files in %s:\n", dir)
		for _, info := range files {
			fmt.Fprintf(w, "  %-12s %s\n", info.FilePath, info.Name)
		}
	}
	return nil
}
