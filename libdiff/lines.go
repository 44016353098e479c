package libdiff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff renders a line diff of two texts, prefixing removed lines with
// "-", added lines with "+" and unchanged lines with a space. Removed and
// added lines are colored when color output is enabled.
func LineDiff(from, to string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToRunes(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), lines)
	var sb strings.Builder
	for _, d := range diffs {
		prefix, paint := " ", fmt.Sprintf
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "-", color.RedString
		case diffpatch.DiffInsert:
			prefix, paint = "+", color.GreenString
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			sb.WriteString(paint("%s", prefix+strings.TrimSuffix(ln, "\n")))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Render formats changes one per line, colored like LineDiff.
func Render(changes []Change) string {
	var sb strings.Builder
	for _, c := range changes {
		line := c.String()
		switch c.Op {
		case Insert:
			line = color.GreenString("%s", line)
		case Delete:
			line = color.RedString("%s", line)
		default:
			line = color.YellowString("%s", line)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
