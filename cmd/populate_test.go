package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetPopulateCmd_Exists verifies getPopulateCmd returns
// a valid command.
func TestGetPopulateCmd_Exists(t *testing.T) {
	cmd := getPopulateCmd()
	require.NotNil(t, cmd, "Populate command should exist")
	assert.Equal(t, "populate", cmd.Use,
		"Command name should be populate")
	assert.Contains(t, cmd.Aliases, "import")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetPopulateCmd_Descriptions verifies short and long
// descriptions.
func TestGetPopulateCmd_Descriptions(t *testing.T) {
	cmd := getPopulateCmd()

	assert.Contains(t, cmd.Short, "SQLite",
		"Short description should mention SQLite")
	assert.Contains(t, cmd.Long, "database.batch_size",
		"Long description should mention batch size setting")
	assert.Contains(t, cmd.Long, "parents first",
		"Long description should mention import order")
}

// TestGetPopulateCmd_SourceFlag verifies --source flag exists
// and is required.
func TestGetPopulateCmd_SourceFlag(t *testing.T) {
	cmd := getPopulateCmd()

	flag := cmd.Flags().Lookup("source")
	require.NotNil(t, flag, "--source flag should exist")
	assert.Equal(t, "s", flag.Shorthand,
		"Short form should be -s")
	assert.Contains(t, flag.Usage, "SQLite")
	assert.Contains(t, flag.Annotations, cobra.BashCompOneRequiredFlag,
		"--source should be required")
}

// TestGetPopulateCmd_TruncateFlag verifies --truncate flag exists.
func TestGetPopulateCmd_TruncateFlag(t *testing.T) {
	cmd := getPopulateCmd()

	flag := cmd.Flags().Lookup("truncate")
	require.NotNil(t, flag, "--truncate flag should exist")
	assert.Equal(t, "t", flag.Shorthand,
		"Short form should be -t")
	assert.Equal(t, "false", flag.DefValue,
		"Default should be false")
}

// TestGetPopulateCmd_MissingSource verifies the command refuses
// to run without --source.
func TestGetPopulateCmd_MissingSource(t *testing.T) {
	cmd := getPopulateCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source")
}
