package scene

import "github.com/dwlcj/sortgo/pkg/core"

// Splat is a contribution a light-transport path deposits onto a pixel
// other than the one currently being integrated — the mechanism BDPT and
// light tracing use to inject light-subpath contributions that never
// pass back through the pixel's own camera ray. Defined here rather than
// in pkg/render so both pkg/integrator and pkg/render can depend on it
// without integrator depending on render.
type Splat struct {
	Pixel [2]int
	Value core.Spectrum
}
