package cmd

import (
	"context"
	"testing"

	"github.com/bikeq/bikeq/pkg/config"
	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildService(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	saved := cfg
	t.Cleanup(func() { cfg = saved })

	cfg = config.New()
	cfg.Update([]config.Option{
		config.OptLLMBaseURL("http://localhost:11434/v1"),
		config.OptQueryReferenceDate("2025-07-15"),
	})
	svc, err := buildService(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)

	cfg = config.New()
	cfg.Update([]config.Option{config.OptLLMProvider("gemini")})
	_, err = buildService(context.Background(), nil)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.LLMConfigError, gnErr.Code)
}
