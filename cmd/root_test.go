package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRootCmdRegistersFlags(t *testing.T) {
	cmd := NewRootCmd()
	require.NotNil(t, cmd.Flags().Lookup("seq"))
	require.NotNil(t, cmd.Flags().Lookup("workers"))
	require.NotNil(t, cmd.Flags().Lookup("verbose"))
	require.NotNil(t, cmd.Flags().Lookup("verify-weak"))
}
