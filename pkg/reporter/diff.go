package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/bbast"
)

// DiffOp is the kind of a diff line.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffLine is one line of a tree dump diff.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// TreeDiff is a line diff between two tree dumps.
type TreeDiff struct {
	Lines      []DiffLine
	Insertions int
	Deletions  int
}

// Equal reports whether the two trees dumped identically.
func (d *TreeDiff) Equal() bool {
	return d.Insertions == 0 && d.Deletions == 0
}

// DiffTrees compares the dumps of a and b line by line.
func DiffTrees(a, b *bbast.Node, maxTextWidth int) *TreeDiff {
	return DiffText(DumpTree(a, maxTextWidth), DumpTree(b, maxTextWidth))
}

// DiffText computes a line diff between two texts.
func DiffText(a, b string) *TreeDiff {
	dmp := diffmatchpatch.New()
	charsA, charsB, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(charsA, charsB, false), lines)

	out := &TreeDiff{}
	for _, diff := range diffs {
		op := DiffEqual
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		case diffmatchpatch.DiffEqual:
		}

		for _, line := range splitLines(diff.Text) {
			out.Lines = append(out.Lines, DiffLine{Op: op, Text: line})
			switch op {
			case DiffInsert:
				out.Insertions++
			case DiffDelete:
				out.Deletions++
			case DiffEqual:
			}
		}
	}
	return out
}

// WriteDiff writes d in unified style: a header naming both sides, then
// every line prefixed with "+", "-" or a space.
func WriteDiff(w io.Writer, styles *pretty.Styles, d *TreeDiff, nameA, nameB string) error {
	var b strings.Builder

	b.WriteString(styles.DiffHeader.Render("--- "+nameA) + "\n")
	b.WriteString(styles.DiffHeader.Render("+++ "+nameB) + "\n")

	for _, line := range d.Lines {
		switch line.Op {
		case DiffInsert:
			b.WriteString(styles.DiffAdd.Render("+"+line.Text) + "\n")
		case DiffDelete:
			b.WriteString(styles.DiffRemove.Render("-"+line.Text) + "\n")
		case DiffEqual:
			b.WriteString(styles.DiffContext.Render(" "+line.Text) + "\n")
		}
	}

	b.WriteString(styles.Dim.Render(fmt.Sprintf("%d insertions(+), %d deletions(-)", d.Insertions, d.Deletions)) + "\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	return nil
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
