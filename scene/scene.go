package scene

import (
	"fmt"

	"github.com/dimension/dimension/bvh"
)

// Quality is a bit-set of shading stages to evaluate, letting a caller
// cheaply disable expensive stages (reflection, transparency) for a
// preview render without rebuilding the scene.
type Quality uint

const (
	QualityPigment Quality = 1 << iota
	QualityLights
	QualityFinish
	QualityTransparency
	QualityReflection

	// QualityAll is the default: every stage enabled.
	QualityAll = QualityPigment | QualityLights | QualityFinish | QualityTransparency | QualityReflection
)

func (q Quality) Has(flag Quality) bool { return q&flag != 0 }

// defaultReclimit and defaultADCBailout match the reference renderer's
// own defaults (reclimit 5, adc_bailout ~= 1/255, the smallest
// contribution that can move an 8-bit channel).
const (
	defaultReclimit   = 5
	defaultADCBailout = 1.0 / 255.0
)

// Region restricts a render to a sub-rectangle of a larger virtual
// image, for tiled/distributed rendering: pixel (x,y) within the tile
// maps to camera coordinates ((X+x)/(OuterWidth-1), (Y+y)/(OuterHeight-1)).
type Region struct {
	X, Y                    int
	OuterWidth, OuterHeight int
}

// Scene bundles everything a render needs: the camera, the object and
// light lists, render quality/recursion parameters, and the canvas
// dimensions, matching the aggregate spec.md §3 describes.
type Scene struct {
	Camera  Camera
	Objects []*Object
	Lights  []Light

	Background Pigment

	Quality     Quality
	Reclimit    int
	ADCBailout  float64
	NThreads    int // 0 = autodetect (runtime.NumCPU()).

	Width, Height int
	Region        *Region // nil for a full (untiled) render.

	tree *bvh.Tree
}

// NewScene returns a scene with the reference renderer's defaults:
// every quality stage on, reclimit 5, adc_bailout ~= 1/255, and
// autodetected thread count.
func NewScene(width, height int) *Scene {
	return &Scene{
		Quality:    QualityAll,
		Reclimit:   defaultReclimit,
		ADCBailout: defaultADCBailout,
		Width:      width,
		Height:     height,
	}
}

// Validate reports a descriptive error for any field that would make
// the scene impossible to render, surfaced to the caller instead of
// allowed to become a fatal error mid-render: an empty camera or
// negative dimensions are configuration mistakes from the collaborator
// layer, not programming errors internal to the core.
func (s *Scene) Validate() error {
	switch {
	case s.Camera == nil:
		return fmt.Errorf("scene has no camera")
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("scene canvas dimensions must be positive, got %dx%d", s.Width, s.Height)
	case s.Reclimit < 0:
		return fmt.Errorf("scene reclimit must be non-negative, got %d", s.Reclimit)
	case s.NThreads < 0:
		return fmt.Errorf("scene nthreads must be non-negative, got %d", s.NThreads)
	default:
		return nil
	}
}

// Precompute cascades transforms/textures through every top-level object
// and bulk-builds the scene-wide PR-tree, hoisting any top-level union's
// children in directly via Object.Split the same way a nested union's
// children flatten into it. It must be called exactly once before the
// first Render.
func (s *Scene) Precompute() {
	items := make([]bvh.Bounded, len(s.Objects))
	for i, o := range s.Objects {
		o.Precompute(o.Trans.Inv())
		items[i] = o
	}
	s.tree = bvh.Build(items)
}

// Tree returns the scene's bulk-built PR-tree. Valid only after Precompute.
func (s *Scene) Tree() *bvh.Tree { return s.tree }
