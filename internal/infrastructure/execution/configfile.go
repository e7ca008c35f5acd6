package execution

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kemaleren/lazyflow/internal/domain/provision"

	"gopkg.in/ini.v1"
)

// writeConfigFile bootstraps an INI-like config file, creating parent
// directories as needed. Rewriting an existing file is idempotent.
func (e *Executor) writeConfigFile(step provision.Step) (*provision.StepOutcome, error) {
	started := time.Now()

	command, err := e.Render(step)
	if err != nil {
		return nil, err
	}
	outcome := &provision.StepOutcome{Command: command}

	path, err := ExpandHome(step.ConfigPath)
	if err != nil {
		return outcome, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return outcome, fmt.Errorf("failed to create config directory: %w", err)
	}

	file := ini.Empty()
	for _, section := range step.ConfigSections {
		sec, err := file.NewSection(section.Name)
		if err != nil {
			return outcome, fmt.Errorf("failed to create section %q: %w", section.Name, err)
		}
		for _, entry := range section.Entries {
			if _, err := sec.NewKey(entry.Key, entry.Value); err != nil {
				return outcome, fmt.Errorf("failed to set key %q: %w", entry.Key, err)
			}
		}
	}

	if err := file.SaveTo(path); err != nil {
		return outcome, fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	e.logger.Info("Wrote config file ", path)
	outcome.Output = fmt.Sprintf("wrote %s", path)
	outcome.Duration = time.Since(started)
	return outcome, nil
}

// ExpandHome resolves a leading "~/" against the current user's home
// directory. Other paths pass through unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
