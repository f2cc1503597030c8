package cmd

import (
	"testing"

	"github.com/gnames/bookshelf/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetServeCmd verifies flags of the serve command.
func TestGetServeCmd(t *testing.T) {
	cmd := getServeCmd()
	assert.Equal(t, "serve", cmd.Use)
	assert.Contains(t, cmd.Long, "/authors/")

	for _, v := range []string{"port", "page-size"} {
		f := cmd.Flags().Lookup(v)
		require.NotNil(t, f, v)
		assert.Equal(t, "0", f.DefValue, v)
	}
}

// TestServeFlagOptions verifies that only explicitly set flags change
// the configuration.
func TestServeFlagOptions(t *testing.T) {
	cmd := getServeCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--port", "9001"}))

	c := config.New()
	c.Update(flagOptions(cmd, portFlag, pageSizeFlag))
	assert.Equal(t, 9001, c.Server.Port)
	assert.Equal(t, 10, c.Server.PageSize)
}
