package logx

import (
	"testing"

	"github.com/dwlcj/sortgo/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestLoggerSatisfiesCoreLogger(t *testing.T) {
	l, err := NewDevelopment()
	require.NoError(t, err)

	var _ core.Logger = l
	l.Printf("render: %d tiles", 4)
	_ = l.Sync() // zap.Sync can fail harmlessly on some stdout/stderr targets
}
