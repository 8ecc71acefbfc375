package fix

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines kept around each change.
const contextLines = 2

type lineOp struct {
	kind    diffmatchpatch.Operation
	text    string
	oldLine int // 1-based, 0 for insertions
	newLine int // 1-based, 0 for deletions
}

// unifiedDiff renders a line-level unified diff between before and after.
// It returns "" when the contents are equal.
func unifiedDiff(path, before, after string) string {
	if before == after {
		return ""
	}

	idx := &lineIndex{runes: make(map[string]rune)}
	a, b := idx.encode(before), idx.encode(after)
	diffs := diffmatchpatch.New().DiffMainRunes(a, b, false)

	ops := idx.toLineOps(diffs)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range hunks(ops) {
		writeHunk(&sb, ops[h[0]:h[1]])
	}
	return sb.String()
}

// lineIndex assigns each distinct line its own rune so the character diff
// runs over whole lines. Lines keep their terminator, so a missing final
// newline shows up as a change.
type lineIndex struct {
	lines []string
	runes map[string]rune
}

func (x *lineIndex) encode(text string) []rune {
	var out []rune
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		r, ok := x.runes[line]
		if !ok {
			r = rune(len(x.lines))
			if r >= 0xD800 {
				// Diff texts are strings; surrogates would not survive the round trip.
				r += 0x800
			}
			x.runes[line] = r
			x.lines = append(x.lines, line)
		}
		out = append(out, r)
	}
	return out
}

func (x *lineIndex) line(r rune) string {
	if r >= 0xE000 {
		r -= 0x800
	}
	return strings.TrimSuffix(x.lines[r], "\n")
}

func (x *lineIndex) toLineOps(diffs []diffmatchpatch.Diff) []lineOp {
	var ops []lineOp
	oldLine, newLine := 1, 1
	for _, d := range diffs {
		for _, r := range d.Text {
			op := lineOp{kind: d.Type, text: x.line(r)}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				op.oldLine, op.newLine = oldLine, newLine
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				op.oldLine = oldLine
				oldLine++
			case diffmatchpatch.DiffInsert:
				op.newLine = newLine
				newLine++
			}
			ops = append(ops, op)
		}
	}
	return ops
}

// hunks returns [start, end) ranges of ops to print, merging changes whose
// context overlaps.
func hunks(ops []lineOp) [][2]int {
	var out [][2]int
	for i, op := range ops {
		if op.kind == diffmatchpatch.DiffEqual {
			continue
		}
		start := max(i-contextLines, 0)
		end := min(i+contextLines+1, len(ops))
		if n := len(out); n > 0 && start <= out[n-1][1] {
			out[n-1][1] = max(out[n-1][1], end)
			continue
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

func writeHunk(sb *strings.Builder, ops []lineOp) {
	var oldStart, newStart, oldCount, newCount int
	for _, op := range ops {
		if op.kind != diffmatchpatch.DiffInsert {
			if oldStart == 0 {
				oldStart = op.oldLine
			}
			oldCount++
		}
		if op.kind != diffmatchpatch.DiffDelete {
			if newStart == 0 {
				newStart = op.newLine
			}
			newCount++
		}
	}
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)

	for _, op := range ops {
		prefix := " "
		switch op.kind {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		sb.WriteString(prefix + op.text + "\n")
	}
}
