package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/warroom/internal/app"
	_ "github.com/odyssey-erp/warroom/testing"
)

func TestMainSkipsStartupInTestMode(t *testing.T) {
	require.True(t, app.InTestMode())
	require.NotPanics(t, main)
}
