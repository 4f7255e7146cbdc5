package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogrus(t *testing.T) {
	t.Helper()
	std := logrus.StandardLogger()
	out, level, formatter := std.Out, std.GetLevel(), std.Formatter
	t.Cleanup(func() {
		logrus.SetOutput(out)
		logrus.SetLevel(level)
		logrus.SetFormatter(formatter)
	})
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	restoreLogrus(t)
	dir := filepath.Join(t.TempDir(), "logs")

	logFile, err := setupLogging(false, dir)
	require.NoError(t, err)
	assert.Nil(t, logFile, "expected nil log file when debug=false")

	assert.Equal(t, io.Discard, logrus.StandardLogger().Out)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "log dir must not be created when disabled")
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	restoreLogrus(t)
	dir := filepath.Join(t.TempDir(), "logs")

	logFile, err := setupLogging(true, dir)
	require.NoError(t, err)
	require.NotNil(t, logFile)
	defer logFile.Close()

	logPath := filepath.Join(dir, logFileName)
	_, err = os.Stat(logPath)
	require.NoError(t, err, "expected log file to be created")

	logrus.WithField("run", "test").Debug("test log message")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "test log message")
	assert.Contains(t, string(data), "run=test")
}

func TestSetupLogging_BadDir(t *testing.T) {
	restoreLogrus(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := setupLogging(true, filepath.Join(blocker, "logs"))
	assert.Error(t, err)
}
