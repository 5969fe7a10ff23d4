package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/kgate/experiment"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs a fresh command tree and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func findCmd(t *testing.T, name string) *cobra.Command {
	t.Helper()
	cmd, _, err := newRootCmd().Find([]string{name})
	require.NoError(t, err)
	return cmd
}

func TestRootCmd_Definition(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "kgate", root.Use)

	format := root.PersistentFlags().Lookup("log-format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	verbose := root.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
}

func TestRunCmd_Definition(t *testing.T) {
	run := findCmd(t, "run")
	assert.Equal(t, "run", run.Use)
	assert.NotNil(t, run.RunE)

	flags := run.Flags()
	for name, def := range map[string]string{
		"samples": "6",
		"models":  "2",
		"tries":   "3",
		"std":     "0.5",
		"seed":    "1",
		"timeout": "0s",
		"method":  "powell",
		"config":  "",
	} {
		f := flags.Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, def, f.DefValue, name)
	}
	assert.Equal(t, "n", flags.Lookup("samples").Shorthand)
	assert.Equal(t, "c", flags.Lookup("config").Shorthand)
}

func TestConfigCmd_PrintsDefaults(t *testing.T) {
	out, _, err := execute(t, "config")
	require.NoError(t, err)

	cfg, err := experiment.ParseConfig(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.Equal(t, experiment.DefaultConfig(), cfg)
	assert.Contains(t, out, "samples: 6")
}

func TestConfigCmd_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("samples: 40\ntries: 9\n"), 0o600))

	out, _, err := execute(t, "config", "--config", path, "--tries", "2", "--method", "neldermead")
	require.NoError(t, err)

	cfg, err := experiment.ParseConfig(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Samples, "file value kept")
	assert.Equal(t, 2, cfg.Tries, "explicit flag wins over the file")
	assert.Equal(t, "neldermead", cfg.Method)
	assert.Equal(t, 2, cfg.Models, "default kept")
}

func TestRunCmd_SmallRun(t *testing.T) {
	out, logs, err := execute(t, "run", "--samples", "12", "--models", "3", "--tries", "1", "--std", "0.2", "--log-format", "json")
	require.NoError(t, err)

	assert.Contains(t, out, "Trials completed:  1")
	assert.Contains(t, out, "linear")
	assert.Contains(t, out, "knn")
	for _, s := range experiment.Strategies(3) {
		assert.Contains(t, out, s.String())
	}
	assert.Contains(t, logs, `"msg":"trial done"`)
}

func TestRunCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown method", []string{"run", "--method", "simplex"}},
		{"zero tries", []string{"run", "--tries", "0"}},
		{"negative std", []string{"run", "--std", "-1"}},
		{"missing config file", []string{"run", "--config", filepath.Join(t.TempDir(), "none.yaml")}},
		{"bad log format", []string{"run", "--tries", "1", "--log-format", "xml"}},
		{"positional argument", []string{"run", "extra"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, tc.args...)
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, logFormatText, false)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=1")

	buf.Reset()
	logger, err = newLogger(&buf, logFormatJSON, true)
	require.NoError(t, err)
	logger.Debug("detail")
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)

	_, err = newLogger(&buf, "xml", false)
	assert.Error(t, err)
}

func TestPrintSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, experiment.Summary{}))
	assert.Equal(t, "Trials completed:  0\n", buf.String())
}
