// Package diff defines the diff entries a review runs over and the parsers
// that produce them from JSON payloads, raw unified diffs, or git itself.
package diff

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// Change statuses for an Entry.
const (
	StatusAdded    = "added"
	StatusModified = "modified"
	StatusDeleted  = "deleted"
	StatusRenamed  = "renamed"
)

// Entry is one file's change record in a reviewed changeset. Entries are
// owned by the caller and never mutated by the review pipeline.
type Entry struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Patch     string `json:"patch,omitempty"`
}

// Changes returns the human-readable change-size summary, e.g. "+45, -12".
func (e Entry) Changes() string {
	return fmt.Sprintf("+%d, -%d", e.Additions, e.Deletions)
}

// ParseJSON decodes diff entries from either a bare JSON array or a
// {"files": [...]} envelope.
func ParseJSON(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}

	var envelope struct {
		Files []Entry `json:"files"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parsing diff JSON: %w", err)
	}
	if envelope.Files == nil {
		return nil, fmt.Errorf("diff JSON has no entries")
	}
	return envelope.Files, nil
}

// ParsePatch reads a raw unified diff (git diff output) and converts each
// file section into an Entry.
func ParsePatch(r io.Reader) ([]Entry, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing patch: %w", err)
	}

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		e := Entry{
			Filename: fileName(f),
			Status:   fileStatus(f),
		}
		var patch strings.Builder
		for _, frag := range f.TextFragments {
			patch.WriteString(fragmentHeader(frag))
			patch.WriteByte('\n')
			for _, line := range frag.Lines {
				switch line.Op {
				case gitdiff.OpAdd:
					e.Additions++
				case gitdiff.OpDelete:
					e.Deletions++
				}
				patch.WriteString(line.Op.String())
				patch.WriteString(strings.TrimRight(line.Line, "\n"))
				patch.WriteByte('\n')
			}
		}
		if f.IsBinary {
			patch.WriteString("Binary file changed\n")
		}
		e.Patch = patch.String()
		entries = append(entries, e)
	}
	return entries, nil
}

func fileName(f *gitdiff.File) string {
	if f.NewName != "" {
		return f.NewName
	}
	return f.OldName
}

func fileStatus(f *gitdiff.File) string {
	switch {
	case f.IsNew:
		return StatusAdded
	case f.IsDelete:
		return StatusDeleted
	case f.IsRename:
		return StatusRenamed
	default:
		return StatusModified
	}
}

func fragmentHeader(frag *gitdiff.TextFragment) string {
	old := fmt.Sprintf("-%d", frag.OldPosition)
	if frag.OldLines != 1 {
		old += fmt.Sprintf(",%d", frag.OldLines)
	}
	new := fmt.Sprintf("+%d", frag.NewPosition)
	if frag.NewLines != 1 {
		new += fmt.Sprintf(",%d", frag.NewLines)
	}
	header := fmt.Sprintf("@@ %s %s @@", old, new)
	if frag.Comment != "" {
		header += " " + frag.Comment
	}
	return header
}
