// Package config loads the renderer's own TOML configuration — worker
// count, tile size, depth/Russian-roulette thresholds, integrator
// selection, wide-BVH lane width — distinct from scene-file parsing,
// which stays outside this repository's scope.
package config

import (
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// RenderConfig is the top-level TOML document cmd/sort reads before
// building a scene.SamplingConfig and render.ProgressiveRenderer.
type RenderConfig struct {
	Workers    int    `toml:"workers"`     // 0 means runtime.NumCPU()
	TileSize   int    `toml:"tile_size"`   // pixels per tile edge
	MaxDepth   int    `toml:"max_depth"`   // path length cap
	MinBounces int    `toml:"min_bounces"` // Russian-roulette floor
	Integrator string `toml:"integrator"`  // "path", "bdpt", "light", "whitted", "direct", "ao", "instant-radiosity"
	BVHWidth   int    `toml:"bvh_width"`   // must be 4 or 8; validated only, the tree's width is core.WideWidth
}

// Default returns the renderer's baseline configuration, used when no
// config file is supplied.
func Default() RenderConfig {
	return RenderConfig{
		Workers:    0,
		TileSize:   32,
		MaxDepth:   16,
		MinBounces: 3,
		Integrator: "path",
		BVHWidth:   8,
	}
}

// Load decodes a RenderConfig from TOML, starting from Default() so an
// omitted field keeps its default rather than zeroing out.
func Load(r io.Reader) (RenderConfig, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return RenderConfig{}, errors.Wrap(err, "config: decoding TOML")
	}
	if err := cfg.Validate(); err != nil {
		return RenderConfig{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the render driver can't act on.
func (c RenderConfig) Validate() error {
	if c.Workers < 0 {
		return errors.New("config: workers must be >= 0")
	}
	if c.TileSize <= 0 {
		return errors.New("config: tile_size must be > 0")
	}
	if c.MaxDepth <= 0 {
		return errors.New("config: max_depth must be > 0")
	}
	if c.MinBounces < 0 || c.MinBounces > c.MaxDepth {
		return errors.New("config: min_bounces must be between 0 and max_depth")
	}
	if c.BVHWidth != 4 && c.BVHWidth != 8 {
		return errors.New("config: bvh_width must be 4 or 8")
	}
	switch c.Integrator {
	case "path", "bdpt", "light", "whitted", "direct", "ao", "instant-radiosity":
	default:
		return errors.Errorf("config: unknown integrator %q", c.Integrator)
	}
	return nil
}
