// Package integrator implements the light transport algorithms: from a
// camera ray and a built scene, estimate the radiance arriving back
// along that ray (and, for bidirectional strategies, any splats that
// land on other pixels of the film entirely).
package integrator

import (
	"context"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/dwlcj/sortgo/pkg/sampler"
	"github.com/dwlcj/sortgo/pkg/scene"
)

// Integrator estimates the radiance along ray in sc, drawing whatever
// light/BSDF samples it needs from samp. Splats are only ever non-empty
// for integrators that deposit contributions on pixels other than the
// one ray was generated for (BDPT's light subpath, light tracing).
type Integrator interface {
	Li(ctx context.Context, ray core.Ray, sc *scene.Scene, samp sampler.Sampler) (core.Spectrum, []scene.Splat)
}
