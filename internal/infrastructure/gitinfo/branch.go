package gitinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const refPrefix = "ref: refs/heads/"

// Resolver implements provision.BranchResolver by parsing .git/HEAD.
type Resolver struct{}

// NewResolver creates a branch resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// CurrentBranch returns the checked-out branch of the working tree at
// dir. A detached HEAD yields an empty branch name and no error.
func (r *Resolver) CurrentBranch(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}

	headPath := filepath.Join(dir, ".git", "HEAD")
	data, err := os.ReadFile(filepath.Clean(headPath))
	if err != nil {
		// A gitdir redirect file is used by worktrees and submodules.
		if redirected, redirectErr := resolveGitDir(dir); redirectErr == nil {
			data, err = os.ReadFile(filepath.Clean(filepath.Join(redirected, "HEAD")))
		}
		if err != nil {
			return "", fmt.Errorf("failed to read git HEAD in %s: %w", dir, err)
		}
	}

	head := strings.TrimSpace(string(data))
	if strings.HasPrefix(head, refPrefix) {
		return strings.TrimPrefix(head, refPrefix), nil
	}

	// Detached HEAD holds a raw commit hash.
	return "", nil
}

// resolveGitDir follows a ".git" file of the form "gitdir: <path>".
func resolveGitDir(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(filepath.Join(dir, ".git")))
	if err != nil {
		return "", err
	}

	line := strings.TrimSpace(string(data))
	const prefix = "gitdir: "
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("unexpected .git file format in %s", dir)
	}

	gitDir := strings.TrimPrefix(line, prefix)
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(dir, gitDir)
	}
	return gitDir, nil
}
