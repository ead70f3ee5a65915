// Package bxdf implements the BxDF library: individual scattering
// distributions (diffuse, microfacet, specular, hair, measured) and the
// BSDF aggregate that composites several of them under one shading
// frame. All directions passed to F/SampleF/PDF are in local shading
// space, where the surface normal is +Z; the BSDF aggregate's own
// F/SampleF/PDF take world-space directions and transform them to and
// from that local frame.
package bxdf

import "github.com/dwlcj/sortgo/pkg/core"

// Kind is a bitmask describing a BxDF's scattering type, used by the
// integrators to decide which lobes a given light-transport strategy
// should sample (e.g. BDPT light tracing skips specular-only BSDFs).
type Kind int

const (
	Reflection Kind = 1 << iota
	Transmission
	Diffuse
	Glossy
	Specular
)

// All is the union of every scattering-type bit.
const All = Reflection | Transmission | Diffuse | Glossy | Specular

// IsNonSpecular reports whether kind contains anything a finite-PDF
// strategy (light sampling, MIS) can usefully importance-sample.
func (k Kind) IsNonSpecular() bool { return k&Specular == 0 }

// BxDF is one scattering distribution evaluated in local shading space
// (incident/outgoing directions measured from the shading normal +Z).
type BxDF interface {
	// Kind reports which reflection/transmission/diffuse/specular bits
	// this BxDF exhibits.
	Kind() Kind

	// F evaluates the distribution for a given pair of directions. Delta
	// distributions (mirror, dielectric) return the zero spectrum here;
	// their entire contribution comes through SampleF.
	F(wo, wi core.Vec3) core.Spectrum

	// SampleF draws wi given wo and a 2D sample u, returning the
	// distribution value, the sampled direction, its PDF, and whether a
	// sample was produced at all (false on total internal reflection or
	// a degenerate configuration).
	SampleF(wo core.Vec3, u core.Vec2) (f core.Spectrum, wi core.Vec3, pdf float64, ok bool)

	// PDF returns the solid-angle density SampleF would have produced
	// for this (wo, wi) pair; 0 for delta distributions.
	PDF(wo, wi core.Vec3) float64
}

// sameHemisphere reports whether two local-space directions lie in the
// same hemisphere relative to the shading normal (+Z).
func sameHemisphere(a, b core.Vec3) bool { return a.Z*b.Z > 0 }

func absCosTheta(w core.Vec3) float64 {
	if w.Z < 0 {
		return -w.Z
	}
	return w.Z
}

func cosTheta(w core.Vec3) float64 { return w.Z }
