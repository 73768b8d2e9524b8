package usecase

import (
	"fmt"
	"os"
	"path/filepath"

	"freq/internal/port"
)

// Preflight checks, in the order they run.
const (
	CheckGit     = "git"
	CheckWorkdir = "workdir"
	CheckInputs  = "inputs"
)

// PreflightError reports a failed environment check of the batch driver.
type PreflightError struct {
	Check  string
	Path   string
	Reason string
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("preflight %s check failed: %s: %s", e.Check, e.Path, e.Reason)
}

// ExitCode keeps the driver's historical codes: 1 git, 2 directory, 3 inputs.
func (e *PreflightError) ExitCode() int {
	switch e.Check {
	case CheckGit:
		return 1
	case CheckWorkdir:
		return 2
	case CheckInputs:
		return 3
	default:
		return 1
	}
}

// PreflightOptions configures Preflight.
type PreflightOptions struct {
	Root       string
	OutputDir  string
	RequireGit bool
}

// Preflight validates the batch environment and returns the inputs to count.
func Preflight(opts PreflightOptions, walker port.FileWalker) ([]port.FileInfo, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, &PreflightError{Check: CheckWorkdir, Path: opts.Root, Reason: err.Error()}
	}

	if opts.RequireGit {
		if _, ok := FindGitRoot(root); !ok {
			return nil, &PreflightError{Check: CheckGit, Path: root, Reason: "not inside a git working tree"}
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, &PreflightError{Check: CheckWorkdir, Path: root, Reason: "directory does not exist"}
	}
	if !info.IsDir() {
		return nil, &PreflightError{Check: CheckWorkdir, Path: root, Reason: "not a directory"}
	}

	if err := checkWritableDir(opts.OutputDir); err != nil {
		return nil, &PreflightError{Check: CheckWorkdir, Path: opts.OutputDir, Reason: err.Error()}
	}

	files, err := walker.Walk(root)
	if err != nil {
		return nil, &PreflightError{Check: CheckInputs, Path: root, Reason: err.Error()}
	}
	if len(files) == 0 {
		return nil, &PreflightError{Check: CheckInputs, Path: root, Reason: "no input files matched"}
	}

	return files, nil
}

// FindGitRoot walks up from dir looking for a .git entry.
func FindGitRoot(dir string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func checkWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".freq-check-*")
	if err != nil {
		return fmt.Errorf("output directory is not writable: %w", err)
	}
	name := tmp.Name()
	tmp.Close()
	return os.Remove(name)
}
