package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetAskCmd_Exists verifies getAskCmd returns
// a valid command.
func TestGetAskCmd_Exists(t *testing.T) {
	cmd := getAskCmd()
	require.NotNil(t, cmd, "Ask command should exist")
	assert.Equal(t, "ask", cmd.Name())
	assert.NotNil(t, cmd.RunE, "RunE should be set")
	assert.Contains(t, cmd.Long, "POST /query",
		"Long description should compare output with the API")
}

// TestGetAskCmd_SQLOnlyFlag verifies --sql-only flag exists.
func TestGetAskCmd_SQLOnlyFlag(t *testing.T) {
	cmd := getAskCmd()

	flag := cmd.Flags().Lookup("sql-only")
	require.NotNil(t, flag, "--sql-only flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}

// TestGetAskCmd_NoQuestion verifies a question is required.
func TestGetAskCmd_NoQuestion(t *testing.T) {
	cmd := getAskCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.Error(t, err, "Should error without a question")
}
