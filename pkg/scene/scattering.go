package scene

import (
	"github.com/pkg/errors"

	"github.com/dwlcj/sortgo/pkg/bxdf"
	"github.com/dwlcj/sortgo/pkg/core"
)

// ErrNoBSSRDF is returned by ScatteringEvent.RequireBSSRDF when the
// event's BSSRDF is nil — a documented gap (§9 open question (a)): no
// diffusion-based BSSRDF solver is implemented and BuildScatteringEvent
// never attaches one. None of the shipped integrators call
// RequireBSSRDF; they shade an SSS closure with the Lambertian lobe
// BuildBSDF gives it.
var ErrNoBSSRDF = errors.New("scene: scattering event has no BSSRDF")

// BSSRDF is the diffusion-profile contract a subsurface-scattering
// material would supply; no concrete implementation ships (see
// ErrNoBSSRDF), but the interface is specified so a material can declare
// intent and an integrator can detect it.
type BSSRDF interface {
	// S evaluates the diffusion profile between the outgoing point po
	// (with normal no) and the incident point pi (with normal ni).
	S(po, no, pi, ni core.Vec3) core.Spectrum
}

// ScatteringEvent is everything an integrator needs at a surface hit:
// the BSDF built from the material's closure tree, an optional BSSRDF
// (nil unless the material supplied a diffusion profile), and any
// emission the hit primitive itself carries (for light primitives hit
// directly by a camera or BSDF-sampled ray).
type ScatteringEvent struct {
	BSDF     *bxdf.BSDF
	BSSRDF   BSSRDF
	Emission core.Spectrum
}

// RequireBSSRDF returns the event's BSSRDF or ErrNoBSSRDF if none was
// supplied.
func (e *ScatteringEvent) RequireBSSRDF() (BSSRDF, error) {
	if e.BSSRDF == nil {
		return nil, ErrNoBSSRDF
	}
	return e.BSSRDF, nil
}
