package core

import "github.com/klauspost/cpuid/v2"

// WideWidth is the accelerator's default child fan-out, and so the
// largest SoA child-bounds width of a BVH node: 8 on a CPU with AVX2,
// 4 otherwise. This only changes the *shape* of the tree, never the
// arithmetic: every width runs the same portable float64 slab-test
// math, and the scalar per-primitive loop is always the correctness
// oracle the accelerated path is checked against.
var WideWidth = detectWideWidth()

func detectWideWidth() int {
	if cpuid.CPU.Supports(cpuid.AVX2) {
		return 8
	}
	return 4
}
