package differ

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// LineKind represents the kind of change a line carries.
type LineKind string

const (
	// Unchanged indicates a line present in both snapshots.
	Unchanged LineKind = "equal"
	// Added indicates a line only the updated snapshot has.
	Added LineKind = "add"
	// Removed indicates a line only the existing snapshot has.
	Removed LineKind = "remove"
)

// Line is a single line of a compared snapshot.
type Line struct {
	Kind LineKind
	Text string
}

// Changeset represents the line-level difference between two snapshots.
type Changeset struct {
	Lines   []Line
	Summary Summary

	context int
}

// Summary provides line counts for a changeset.
type Summary struct {
	Added     int
	Removed   int
	Unchanged int
}

func (c *Changeset) append(line Line) {
	c.Lines = append(c.Lines, line)
	switch line.Kind {
	case Added:
		c.Summary.Added++
	case Removed:
		c.Summary.Removed++
	case Unchanged:
		c.Summary.Unchanged++
	}
}

// HasChanges returns true if the snapshots differ.
func (c *Changeset) HasChanges() bool {
	return c.Summary.Added > 0 || c.Summary.Removed > 0
}

// IsEmpty returns true if the snapshots are identical.
func (c *Changeset) IsEmpty() bool {
	return !c.HasChanges()
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}
	return fmt.Sprintf("Changeset: %d lines added, %d lines removed", c.Summary.Added, c.Summary.Removed)
}

var (
	headerColor = color.New(color.FgCyan).SprintFunc()
	addColor    = color.New(color.FgGreen).SprintFunc()
	removeColor = color.New(color.FgRed).SprintFunc()
)

// Render writes the changeset to w as a unified diff, folding runs of
// unchanged lines beyond the configured context.
func (c *Changeset) Render(w io.Writer) error {
	if c.IsEmpty() {
		return nil
	}

	for _, h := range c.hunks() {
		if _, err := fmt.Fprintln(w, headerColor(h.header())); err != nil {
			return err
		}
		for _, line := range h.lines {
			var rendered string
			switch line.Kind {
			case Added:
				rendered = addColor("+" + line.Text)
			case Removed:
				rendered = removeColor("-" + line.Text)
			case Unchanged:
				rendered = " " + line.Text
			}
			if _, err := fmt.Fprintln(w, rendered); err != nil {
				return err
			}
		}
	}

	return nil
}

// hunk is a contiguous run of rendered lines with its position in each
// snapshot.
type hunk struct {
	oldStart, oldLines int
	newStart, newLines int
	lines              []Line
}

// header formats the position marker. Zero-length ranges anchor after the
// preceding line, matching the usual unified-diff convention.
func (h hunk) header() string {
	oldStart, newStart := h.oldStart, h.newStart
	if h.oldLines == 0 {
		oldStart--
	}
	if h.newLines == 0 {
		newStart--
	}
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, h.oldLines, newStart, h.newLines)
}

// hunks groups the changed lines with surrounding context.
func (c *Changeset) hunks() []hunk {
	keep := make([]bool, len(c.Lines))
	for i, line := range c.Lines {
		if line.Kind == Unchanged {
			continue
		}
		lo := max(i-c.context, 0)
		hi := min(i+c.context, len(c.Lines)-1)
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}

	var hunks []hunk
	var current hunk
	open := false
	flush := func() {
		if open {
			hunks = append(hunks, current)
			open = false
		}
	}

	oldLine, newLine := 1, 1
	for i, line := range c.Lines {
		if !keep[i] {
			flush()
		} else {
			if !open {
				current = hunk{oldStart: oldLine, newStart: newLine}
				open = true
			}
			current.lines = append(current.lines, line)
			switch line.Kind {
			case Added:
				current.newLines++
			case Removed:
				current.oldLines++
			case Unchanged:
				current.oldLines++
				current.newLines++
			}
		}

		switch line.Kind {
		case Added:
			newLine++
		case Removed:
			oldLine++
		case Unchanged:
			oldLine++
			newLine++
		}
	}
	flush()

	return hunks
}
