package scene

import (
	"github.com/dimension/dimension/internal/fatal"
	"github.com/dimension/dimension/math/lin"
)

// Texture bundles a pigment, a finish, and its own pattern-space
// transform. A texture with no pigment cascades its parent's pigment
// wholesale (texture_cascade), while its finish cascades component by
// component (finish_cascade).
type Texture struct {
	Pigment Pigment
	Finish  Finish
	Trans   *lin.Affine

	initialized bool
	transInv    *lin.Affine
}

func (t *Texture) initialize() {
	fatal.Assert(!t.initialized, "texture double-initialized")
	t.initialized = true
	if t.Trans == nil {
		t.Trans = lin.NewAffineI()
	}
	t.transInv = t.Trans.Inv()
}

// cascadeTexture fills in child from parent the way dmnsn_texture_cascade
// does: if child is nil, it becomes parent outright; otherwise only its
// missing pigment and missing finish components are filled in.
func cascadeTexture(parent, child *Texture) *Texture {
	if child == nil {
		return parent
	}
	if child.Pigment == nil {
		child.Pigment = parent.Pigment
	}
	cascadeFinish(&parent.Finish, &child.Finish)
	return child
}
