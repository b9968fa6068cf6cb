package render

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sys/cpu"

	"github.com/dimension/dimension/bvh"
	"github.com/dimension/dimension/scene"
)

func init() {
	slog.Debug("cpu features detected",
		"amd64_avx2", cpu.X86.HasAVX2,
		"arm64_neon", cpu.ARM64.HasASIMD,
	)
}

// Scene starts a concurrent render of sc into canvas and returns
// immediately with a Future the caller can Wait/Join on -- the Go
// analogue of trace_scene(scene) -> Future from spec.md §6, built on top
// of ExecuteConcurrently the same way dmnsn_raytrace_scene_concurrent
// sits on the pthread fork-join pool in raytrace.c. sc.Precompute must
// have already been called.
//
// Rows are divided round-robin across workers (worker i handles
// y = i, i+nworkers, i+2*nworkers, ...), matching the reference's
// row-interleaved partitioning rather than contiguous row blocks, so a
// slow row (a cluster of reflective/transparent geometry) doesn't strand
// one worker with a disproportionate share of the image.
func Scene(sc *scene.Scene, canvas *Canvas) *Future {
	future := New()
	future.SetTotal(uint64(sc.Height))

	nthreads := sc.NThreads
	if nthreads <= 0 {
		nthreads = runtime.NumCPU()
	}

	regionX, regionY, outerW, outerH := 0, 0, sc.Width, sc.Height
	if sc.Region != nil {
		regionX, regionY = sc.Region.X, sc.Region.Y
		outerW, outerH = sc.Region.OuterWidth, sc.Region.OuterHeight
	}

	stats := &Stats{}

	go func() {
		var mu sync.Mutex // canvas optimizers run on the writing goroutine; serialize across workers
		err := ExecuteConcurrently(future, nthreads, func(ctx context.Context, worker, nworkers int) error {
			cache := &bvh.Cache{}
			for y := worker; y < sc.Height; y += nworkers {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				for x := 0; x < sc.Width; x++ {
					u := float64(x+regionX) / float64(outerW-1)
					v := float64(y+regionY) / float64(outerH-1)
					ray := sc.Camera.Ray(u, v)
					tc := Shade(sc, ray, cache, stats)

					mu.Lock()
					canvas.SetPixel(x, y, tc)
					mu.Unlock()
				}
				if err := future.Increment(); err != nil {
					return err
				}
			}
			return nil
		})

		slog.Info("render complete",
			"rows", sc.Height,
			"reflections", stats.Reflections.Load(),
			"refractions", stats.Refractions.Load(),
		)
		future.finish(err)
	}()

	return future
}
