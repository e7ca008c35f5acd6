package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTestFile creates a test file with the given content
func CreateTestFile(fileName string, content []byte) error {
	err := os.WriteFile(fileName, content, 0600)
	if err != nil {
		return fmt.Errorf("failed to create test file: %w", err)
	}
	return nil
}

// CreateTestScript writes an executable shell script into dir and
// returns its path.
func CreateTestScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0700)
	require.NoError(t, err)

	return path
}

// CreateTestGitRepo lays out a minimal .git directory with HEAD pointing
// at the given branch and returns the repo root.
func CreateTestGitRepo(t *testing.T, branch string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0700))

	head := "ref: refs/heads/" + branch + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte(head), 0600))

	return dir
}
