package diff

import (
	"fmt"
	"os/exec"
	"strings"
)

// FromGit runs `git diff` for the given revision range (e.g. "HEAD~1",
// "origin/main..HEAD") in repoDir and parses the output into entries.
func FromGit(repoDir, revRange string) ([]Entry, error) {
	args := []string{"diff"}
	if strings.TrimSpace(revRange) != "" {
		args = append(args, revRange)
	}
	cmd := exec.Command("git", args...)
	cmd.Dir = repoDir

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff: %w", err)
	}
	if strings.TrimSpace(string(out)) == "" {
		return nil, nil
	}
	return ParsePatch(strings.NewReader(string(out)))
}
