package main

import (
	"testing"

	"github.com/dwlcj/sortgo/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestBuildSceneKnownNames(t *testing.T) {
	cfg := config.Default()
	for _, name := range []string{"cornell", "furnace"} {
		sc, err := buildScene(name, cfg)
		require.NoError(t, err, name)
		require.NotNil(t, sc.Tree)
	}
}

func TestBuildSceneRejectsUnknownName(t *testing.T) {
	_, err := buildScene("nonexistent", config.Default())
	require.Error(t, err)
}

func TestBuildIntegratorEveryKnownKind(t *testing.T) {
	cfg := config.Default()
	for _, kind := range []string{"path", "bdpt", "light", "whitted", "direct", "ao", "instant-radiosity"} {
		cfg.Integrator = kind
		integ, err := buildIntegrator(cfg)
		require.NoError(t, err, kind)
		require.NotNil(t, integ)
	}
}

func TestBuildIntegratorRejectsUnknownKind(t *testing.T) {
	cfg := config.Default()
	cfg.Integrator = "nonexistent"
	_, err := buildIntegrator(cfg)
	require.Error(t, err)
}

func TestToSRGB8ClampsAndGammaCorrects(t *testing.T) {
	require.Equal(t, uint8(0), toSRGB8(-1))
	require.Equal(t, uint8(255), toSRGB8(2))
	require.Greater(t, toSRGB8(0.5), uint8(150)) // gamma-corrected mid-gray is brighter than linear 0.5*255
}

func TestNewRootCmdHasExpectedFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"scene", "output", "config", "unittest"} {
		require.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
