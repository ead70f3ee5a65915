package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVec3Reflect(t *testing.T) {
	v := NewVec3(1, -1, 0).Normalize()
	n := NewVec3(0, 1, 0)
	r := v.Reflect(n)
	require.InDelta(t, v.X, r.X, 1e-9)
	require.InDelta(t, -v.Y, r.Y, 1e-9)
	require.InDelta(t, v.Z, r.Z, 1e-9)
}

func TestFaceforward(t *testing.T) {
	n := NewVec3(0, 0, 1)
	v := NewVec3(0, 0, -1)
	flipped := Faceforward(n, v)
	require.Equal(t, n.Negate(), flipped)

	same := Faceforward(n, n)
	require.Equal(t, n, same)
}

func TestHasNaN(t *testing.T) {
	require.False(t, NewVec3(1, 2, 3).HasNaN())
	require.True(t, NewVec3(0, 0, 0).DivideVec(NewVec3(0, 1, 1)).HasNaN())
}

func TestVec3Luminance(t *testing.T) {
	white := Splat(1)
	require.InDelta(t, 1.0, white.Luminance(), 1e-9)
}
