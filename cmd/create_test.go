package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCreateCmd_ForceFlag verifies --force flag exists.
func TestGetCreateCmd_ForceFlag(t *testing.T) {
	cmd := getCreateCmd()
	assert.Equal(t, "create", cmd.Use)

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag, "--force flag should exist")

	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
	assert.Contains(t, forceFlag.Usage, "drop")
}

// TestGetCreateCmd_HelpText verifies help text content.
func TestGetCreateCmd_HelpText(t *testing.T) {
	cmd := getCreateCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "GORM AutoMigrate")
	assert.Contains(t, helpText, "bookshelf create --force")
	assert.Contains(t, helpText, "-f")
}

// TestRunCreate verifies schema creation and the confirmation prompt.
func TestRunCreate(t *testing.T) {
	dbPath := setupHome(t)

	_, _, err := runCmd(t, "", "create")
	require.NoError(t, err)
	assert.Equal(t, int64(0), countAuthors(t, dbPath))

	_, _, err = runCmd(t, "", "populate-authors", writeCSV(t, "name\ntest1\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), countAuthors(t, dbPath))

	t.Run("declined prompt keeps data", func(t *testing.T) {
		stdout, _, err := runCmd(t, "no\n", "create")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Do you want to continue?")
		assert.Equal(t, int64(1), countAuthors(t, dbPath))
	})

	t.Run("confirmed prompt recreates schema", func(t *testing.T) {
		_, _, err := runCmd(t, "yes\n", "create")
		require.NoError(t, err)
		assert.Equal(t, int64(0), countAuthors(t, dbPath))
	})
}
