package scene

import (
	"math"

	"github.com/dwlcj/sortgo/pkg/core"
)

// CameraConfig parameterizes a thin-lens perspective camera: position,
// look direction, vertical field of view, and an optional aperture for
// depth of field.
type CameraConfig struct {
	Center        core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	Width         int
	AspectRatio   float64
	VFov          float64 // vertical field of view, degrees
	Aperture      float64 // lens diameter; 0 is a pinhole
	FocusDistance float64
}

// Camera generates primary rays for pixels and importance-samples itself
// from an arbitrary scene point for light-tracing/BDPT camera
// connections.
type Camera struct {
	cfg                        CameraConfig
	origin                     core.Vec3
	lowerLeftCorner            core.Vec3
	horizontal, vertical       core.Vec3
	u, v, w                    core.Vec3 // camera basis: right, up, -forward
	lensRadius                 float64
	height                     int
	halfWidth, halfHeight      float64 // viewport half-extents at unit distance from the lens
}

// NewCamera builds a Camera from cfg.
func NewCamera(cfg CameraConfig) *Camera {
	theta := cfg.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := cfg.AspectRatio * halfHeight

	w := cfg.Center.Subtract(cfg.LookAt).Normalize()
	u := cfg.Up.Cross(w).Normalize()
	v := w.Cross(u)

	height := int(float64(cfg.Width) / cfg.AspectRatio)
	if height < 1 {
		height = 1
	}

	horizontal := u.Multiply(2 * halfWidth * cfg.FocusDistance)
	vertical := v.Multiply(2 * halfHeight * cfg.FocusDistance)
	lowerLeftCorner := cfg.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(cfg.FocusDistance))

	return &Camera{
		cfg: cfg, origin: cfg.Center, lowerLeftCorner: lowerLeftCorner,
		horizontal: horizontal, vertical: vertical,
		u: u, v: v, w: w,
		lensRadius: cfg.Aperture / 2, height: height,
		halfWidth: halfWidth, halfHeight: halfHeight,
	}
}

// Width and Height report the camera's image dimensions in pixels.
func (c *Camera) Width() int  { return c.cfg.Width }
func (c *Camera) Height() int { return c.height }

// GetRay returns a primary ray for pixel (px, py), jittered within the
// pixel by pixelSample and across the lens by lensSample (depth of
// field).
func (c *Camera) GetRay(px, py int, lensSample, pixelSample core.Vec2) core.Ray {
	s := (float64(px) + pixelSample.X) / float64(c.cfg.Width)
	t := 1 - (float64(py)+pixelSample.Y)/float64(c.height)

	rd := core.ConcentricSampleDisk(lensSample).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	origin := c.origin.Add(offset)
	target := c.lowerLeftCorner.Add(c.horizontal.Multiply(s)).Add(c.vertical.Multiply(t))
	direction := target.Subtract(origin).Normalize()
	return core.NewRay(origin, direction)
}

// CameraSample is a camera-importance sample for connecting a light
// subpath directly to the camera (light tracing / BDPT's t=1 strategy).
type CameraSample struct {
	Ray    core.Ray
	PDF    float64
	Weight core.Spectrum
	Pixel  [2]int
}

// SampleCameraFromPoint returns the camera sample visible from
// refPoint, or nil if refPoint is behind the camera or the projected
// pixel falls outside the image.
func (c *Camera) SampleCameraFromPoint(refPoint core.Vec3, u core.Vec2) *CameraSample {
	rd := core.ConcentricSampleDisk(u).Multiply(c.lensRadius)
	lensPoint := c.origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))

	toRef := refPoint.Subtract(lensPoint)
	if toRef.Dot(c.w) >= 0 {
		return nil // behind the camera: w points backward (toward the eye)
	}
	distance := toRef.Length()
	direction := toRef.Multiply(1 / distance)

	ray := core.NewRay(lensPoint, direction)
	px, py, ok := c.MapRayToPixel(ray)
	if !ok {
		return nil
	}

	lensArea := math.Pi * c.lensRadius * c.lensRadius
	if c.lensRadius == 0 {
		lensArea = 1
	}
	cosTheta := math.Abs(direction.Dot(c.w.Multiply(-1)))
	pdf := (distance * distance) / (cosTheta * lensArea)

	return &CameraSample{
		Ray:    ray,
		PDF:    pdf,
		Weight: core.Splat(1 / (lensArea * cosTheta * cosTheta * cosTheta * cosTheta)),
		Pixel:  [2]int{px, py},
	}
}

// MapRayToPixel inverts GetRay: given a ray leaving the camera, returns
// the pixel it was generated for, or ok=false if it falls outside the
// image or isn't forward-facing.
func (c *Camera) MapRayToPixel(ray core.Ray) (x, y int, ok bool) {
	denom := ray.Direction.Dot(c.w)
	if denom >= 0 {
		return 0, 0, false
	}
	planePoint := c.planeIntersection(ray)
	rel := planePoint.Subtract(c.lowerLeftCorner)

	s := rel.Dot(c.u.Normalize()) / c.horizontal.Length()
	tcoord := rel.Dot(c.v.Normalize()) / c.vertical.Length()

	px := int(s * float64(c.cfg.Width))
	py := int((1 - tcoord) * float64(c.height))
	if px < 0 || px >= c.cfg.Width || py < 0 || py >= c.height {
		return 0, 0, false
	}
	return px, py, true
}

// planeIntersection finds where ray crosses the camera's focal plane
// (the plane through origin+w*-FocusDistance with normal w).
func (c *Camera) planeIntersection(ray core.Ray) core.Vec3 {
	planePoint := c.origin.Subtract(c.w.Multiply(c.cfg.FocusDistance))
	denom := ray.Direction.Dot(c.w)
	t := planePoint.Subtract(ray.Origin).Dot(c.w) / denom
	return ray.At(t)
}
