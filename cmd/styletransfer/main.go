// Command styletransfer synthesizes an image that keeps one photo's
// layout while taking on another's color and texture statistics, by
// optimizing pixels against a frozen VGG-19 feature stack.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/autodiff"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/backend/cpu"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/imageio"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/loader"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/nn"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/optim"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/transfer"
)

type backendT = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func main() {
	defaults := transfer.DefaultConfig()

	contentPath := flag.String("content", "", "Content image (JPEG or PNG)")
	stylePath := flag.String("style", "", "Style image (JPEG or PNG)")
	weightsPath := flag.String("weights", "", "VGG-19 feature weights (safetensors)")
	outPath := flag.String("out", "out.png", "Output image path (.png, .jpg)")
	steps := flag.Int("steps", defaults.Steps, "Optimization steps")
	showEvery := flag.Int("show-every", defaults.ShowEvery, "Steps between progress reports")
	lr := flag.Float64("lr", defaults.LearningRate, "Learning rate")
	contentWeight := flag.Float64("content-weight", defaults.ContentWeight, "Content loss weight (alpha)")
	styleWeight := flag.Float64("style-weight", defaults.StyleWeight, "Style loss weight (beta)")
	styleWeightsPath := flag.String("style-weights", "", "YAML file overriding the per-layer style weights")
	size := flag.Int("size", imageio.DefaultMaxSide, "Maximum side length for the content image")
	optimizerName := flag.String("optimizer", "adam", "Optimizer: adam or sgd")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for a PNG snapshot at every progress report")
	checksum := flag.String("checksum", "", "Expected SHA-256 of the weight file payload (hex, optional)")
	flag.Parse()

	if *contentPath == "" || *stylePath == "" || *weightsPath == "" {
		fmt.Fprintln(os.Stderr, "styletransfer: -content, -style and -weights are required")
		flag.Usage()
		os.Exit(2)
	}

	backend := autodiff.New(cpu.New())

	content, err := imageio.Load(*contentPath, *size, backend)
	if err != nil {
		log.Fatalf("Failed to load content image: %v", err)
	}
	shape := content.Shape()
	fmt.Printf("Content: %s (%dx%d)\n", *contentPath, shape[3], shape[2])

	style, err := imageio.LoadMatching(*stylePath, shape[2], shape[3], backend)
	if err != nil {
		log.Fatalf("Failed to load style image: %v", err)
	}
	fmt.Printf("Style:   %s (resized to %dx%d)\n", *stylePath, shape[3], shape[2])

	var loadOpts []loader.Option
	if *checksum != "" {
		loadOpts = append(loadOpts, loader.WithChecksum(*checksum))
	}
	net, err := loader.LoadVGG19(*weightsPath, backend, loadOpts...)
	if err != nil {
		log.Fatalf("Failed to load VGG-19 weights: %v", err)
	}
	net.Freeze(backend.Tape())
	fmt.Printf("Network: %s\n", net)

	cfg := transfer.DefaultConfig()
	cfg.Steps = *steps
	cfg.ShowEvery = *showEvery
	cfg.LearningRate = *lr
	cfg.ContentWeight = *contentWeight
	cfg.StyleWeight = *styleWeight
	if *styleWeightsPath != "" {
		cfg.StyleWeights, err = transfer.LoadStyleWeights(*styleWeightsPath)
		if err != nil {
			log.Fatalf("Failed to load style weights: %v", err)
		}
	}

	if *snapshotDir != "" {
		if err := os.MkdirAll(*snapshotDir, 0o755); err != nil {
			log.Fatalf("Failed to create snapshot directory: %v", err)
		}
	}

	opts := []transfer.EngineOption[backendT]{
		transfer.WithProgress[backendT](func(p transfer.Progress[backendT]) {
			fmt.Printf("step %d/%d: content=%.4e style=%.4e total=%.4e\n",
				p.Step, *steps, p.Content, p.Style, p.Total)
			if *snapshotDir != "" {
				writeSnapshot(*snapshotDir, p)
			}
		}),
	}

	switch *optimizerName {
	case "adam":
		// Engine default.
	case "sgd":
		opts = append(opts, transfer.WithOptimizer[backendT](
			func(params []*nn.Parameter[backendT], b backendT) optim.Optimizer {
				return optim.NewSGD(params, optim.SGDConfig{LR: *lr}, b)
			}))
	default:
		log.Fatalf("Unknown optimizer %q (want adam or sgd)", *optimizerName)
	}

	engine, err := transfer.NewEngine(net, backend, cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to configure engine: %v", err)
	}

	fmt.Printf("Optimizing for %d steps (%s, lr=%g)...\n", *steps, *optimizerName, *lr)
	result, err := engine.Run(content, style)
	if err != nil {
		log.Fatalf("Optimization failed: %v", err)
	}

	img, err := imageio.FromTensor(result.Target)
	if err != nil {
		log.Fatalf("Failed to render result: %v", err)
	}
	if err := imageio.Save(*outPath, img); err != nil {
		log.Fatalf("Failed to save result: %v", err)
	}

	fmt.Printf("Done: %d steps in %s, final total loss %.4e\n",
		result.Steps, result.Elapsed.Round(time.Millisecond), result.Total)
	fmt.Printf("Wrote %s\n", *outPath)
}

// writeSnapshot renders the in-progress target. A failed snapshot is
// worth a warning, not an aborted run.
func writeSnapshot(dir string, p transfer.Progress[backendT]) {
	img, err := imageio.FromTensor(p.Target)
	if err != nil {
		log.Printf("snapshot at step %d skipped: %v", p.Step, err)
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("step_%04d.png", p.Step))
	if err := imageio.Save(path, img); err != nil {
		log.Printf("snapshot at step %d skipped: %v", p.Step, err)
	}
}
