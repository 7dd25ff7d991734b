// Command iplfilter applies raster filters to image files.
//
// Usage:
//
//	iplfilter [flags] <tool> <input> [input...]
//
// Tools: gauss (Gaussian blur), median (median denoise), edge (Sobel
// edge map), gray (grayscale). Defaults come from an optional YAML
// config and IPL_* environment variables; flags win over both.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/goraster/ipl"
	"github.com/goraster/ipl/imageio"
	"github.com/goraster/ipl/internal/parallel"
)

var tools = []string{"gauss", "median", "edge", "gray"}

type result struct {
	input   string
	output  string
	elapsed time.Duration
	err     error
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		sigma      = flag.Float64("sigma", 0, "gaussian blur sigma (gauss)")
		radius     = flag.Int("radius", 0, "median window radius (median)")
		output     = flag.String("o", "", "output path (single input only)")
		outDir     = flag.String("outdir", "", "output directory for batch runs")
		workers    = flag.Int("workers", 0, "worker goroutines for batch and per-filter work")
		configPath = flag.String("config", "", "YAML config file")
		verbose    = flag.Bool("v", false, "verbose: debug logging with console echo")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 2 {
		usage()
		return 2
	}
	tool := flag.Arg(0)
	inputs := flag.Args()[1:]
	if !validTool(tool) {
		fmt.Fprintf(os.Stderr, "iplfilter: unknown tool %q (want one of %s)\n",
			tool, strings.Join(tools, ", "))
		return 2
	}
	if *output != "" && len(inputs) > 1 {
		fmt.Fprintln(os.Stderr, "iplfilter: -o needs a single input; use -outdir for batches")
		return 2
	}

	cfg, err := resolveConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "iplfilter: %v\n", err)
		return 1
	}
	// Flags win; only the ones actually given override.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sigma":
			cfg.Sigma = *sigma
		case "radius":
			cfg.Radius = *radius
		case "outdir":
			cfg.OutDir = *outDir
		case "workers":
			cfg.Workers = *workers
		case "v":
			cfg.DevMode = *verbose
		}
	})

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "iplfilter: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	if cfg.DevMode {
		ipl.SetLogger(debugLibraryLogger())
	}

	logger.Info("starting",
		zap.String("tool", tool),
		zap.Strings("inputs", inputs),
		zap.Float64("sigma", cfg.Sigma),
		zap.Int("radius", cfg.Radius),
		zap.Int("workers", cfg.Workers),
		zap.String("outdir", cfg.OutDir),
		zap.Bool("dev_mode", cfg.DevMode),
	)

	results := make([]result, len(inputs))
	jobs := make([]func(), len(inputs))
	for i, input := range inputs {
		i, input := i, input
		jobs[i] = func() {
			start := time.Now()
			out, err := processFile(tool, input, *output, cfg)
			results[i] = result{
				input:   input,
				output:  out,
				elapsed: time.Since(start),
				err:     err,
			}
			if err != nil {
				logger.Error("file failed",
					zap.String("input", input), zap.Error(err))
				return
			}
			logger.Info("file done",
				zap.String("input", input),
				zap.String("output", out),
				zap.Duration("elapsed", results[i].elapsed))
		}
	}

	pool := parallel.NewPool(cfg.Workers)
	pool.ExecuteAll(jobs)
	pool.Close()

	failed := printSummary(tool, results)
	if failed > 0 {
		return 1
	}
	return 0
}

// processFile loads one image, applies the tool and saves the result.
// Per-file failures stay inside the file's own job.
func processFile(tool, input, explicitOut string, cfg Config) (string, error) {
	buf, err := imageio.Load(input)
	if err != nil {
		return "", err
	}
	if err := applyTool(buf, tool, cfg); err != nil {
		return "", err
	}
	out := outputPath(input, tool, explicitOut, cfg.OutDir)
	if err := imageio.Save(out, buf); err != nil {
		return "", err
	}
	return out, nil
}

func applyTool(buf *ipl.Buffer, tool string, cfg Config) error {
	switch tool {
	case "gauss":
		return ipl.GaussianBlur(buf, cfg.Sigma, ipl.WithWorkers(cfg.Workers))
	case "median":
		return ipl.MedianFilter(buf, cfg.Radius, ipl.WithWorkers(cfg.Workers))
	case "edge":
		return ipl.SobelEdges(buf, ipl.WithWorkers(cfg.Workers))
	case "gray":
		return ipl.Grayscale(buf)
	default:
		return fmt.Errorf("unknown tool %q", tool)
	}
}

// outputPath picks the destination file: the explicit -o path if given,
// otherwise <dir>/<stem>_<tool><ext> where dir is -outdir or the input's
// own directory.
func outputPath(input, tool, explicit, outDir string) string {
	if explicit != "" {
		return explicit
	}
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(dir, stem+"_"+tool+ext)
}

// printSummary prints the per-file outcome table and returns the number
// of failed files.
func printSummary(tool string, results []result) int {
	header := color.New(color.FgCyan, color.Bold)
	okMark := color.New(color.FgGreen).Sprint("ok")
	failMark := color.New(color.FgRed).Sprint("FAIL")

	header.Printf("iplfilter %s: %d file(s)\n", tool, len(results))

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Printf("  %s  %s: %v\n", failMark, r.input, r.err)
			continue
		}
		fmt.Printf("  %s    %s -> %s (%s)\n", okMark, r.input, r.output,
			r.elapsed.Round(time.Millisecond))
	}
	if failed > 0 {
		color.New(color.FgRed).Printf("%d of %d failed\n", failed, len(results))
	}
	return failed
}

func validTool(tool string) bool {
	for _, t := range tools {
		if t == tool {
			return true
		}
	}
	return false
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: iplfilter [flags] <tool> <input> [input...]\n")
	fmt.Fprintf(os.Stderr, "tools: %s\n", strings.Join(tools, ", "))
	fmt.Fprintf(os.Stderr, "flags:\n")
	flag.PrintDefaults()
}
