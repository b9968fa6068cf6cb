// Command dimrender loads a YAML scene description and ray-traces it to a
// bitmap file, wiring the render package's Future/worker-pool/shader/canvas
// pipeline to a minimal CLI front end.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dimension/dimension/render"
)

func main() {
	os.Exit(run())
}

func run() int {
	scenePath := flag.String("scene", "", "path to a YAML scene description")
	outPath := flag.String("out", "out.bmp", "path to write the rendered bitmap")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "dimrender: -scene is required")
		return 2
	}

	cfg, err := loadConfig(*scenePath)
	if err != nil {
		slog.Error("loading scene", "err", err)
		return 1
	}

	sc := cfg.build()
	if err := sc.Validate(); err != nil {
		slog.Error("invalid scene", "err", err)
		return 1
	}
	sc.Precompute()

	canvas := render.NewCanvas(sc.Width, sc.Height)
	preview := render.NewRGBA8Optimizer(canvas)
	canvas.Register(preview)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	future := render.Scene(sc, canvas)

	go func() {
		<-ctx.Done()
		future.Cancel()
	}()

	if err := future.Join(); err != nil {
		slog.Error("render failed", "err", err)
		return 1
	}

	f, err := os.Create(*outPath)
	if err != nil {
		slog.Error("creating output file", "err", err)
		return 1
	}
	defer f.Close()
	if err := bmp.Encode(f, preview.Image); err != nil {
		slog.Error("encoding bitmap", "err", err)
		return 1
	}

	p := message.NewPrinter(language.English)
	p.Printf("rendered %d x %d pixels in %v -> %s\n", sc.Width, sc.Height, time.Since(start).Round(time.Millisecond), *outPath)
	return 0
}
