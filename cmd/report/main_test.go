package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReport_PrintsDefaultReportWithoutCredentials(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DATAFORSEO_LOGIN", "")
	t.Setenv("DATAFORSEO_PASSWORD", "")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("PROBE_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--company", "Acme", "--website", "acme.io"})

	require.NoError(t, rootCmd.Execute())

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "Acme", report["company_name"])
	assert.Equal(t, float64(16), report["ai_visibility_score"])
}
