package typegen

import (
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/teranos/shapegen/errors"
)

// diffContext is the number of unchanged lines shown around a change
const diffContext = 2

// Comparison is the outcome of checking generated text against a file.
type Comparison struct {
	Path     string
	UpToDate bool
	Missing  bool   // the file does not exist yet
	Diff     string // line diff, "-" for file lines and "+" for generated lines
	Added    int    // lines only in the generated text
	Removed  int    // lines only in the file
}

// Compare reads path and compares it line by line with generated.
// A missing file is not an error; it is reported as Missing.
func Compare(path, generated string) (*Comparison, error) {
	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Comparison{Path: path, Missing: true, Added: countLines(generated)}, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	cmp := &Comparison{Path: path}
	if string(existing) == generated {
		cmp.UpToDate = true
		return cmp, nil
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(existing), generated)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for i, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			cmp.Removed += len(chunk)
			writePrefixed(&sb, "-", chunk)
		case diffmatchpatch.DiffInsert:
			cmp.Added += len(chunk)
			writePrefixed(&sb, "+", chunk)
		case diffmatchpatch.DiffEqual:
			writeContext(&sb, chunk, i > 0, i < len(diffs)-1)
		}
	}
	cmp.Diff = sb.String()

	return cmp, nil
}

// writeContext keeps a few unchanged lines next to each change
func writeContext(sb *strings.Builder, lines []string, afterChange, beforeChange bool) {
	if len(lines) <= 2*diffContext {
		if afterChange || beforeChange {
			writePrefixed(sb, " ", lines)
		}
		return
	}
	if afterChange {
		writePrefixed(sb, " ", lines[:diffContext])
	}
	if afterChange || beforeChange {
		sb.WriteString("@@\n")
	}
	if beforeChange {
		writePrefixed(sb, " ", lines[len(lines)-diffContext:])
	}
}

func writePrefixed(sb *strings.Builder, prefix string, lines []string) {
	for _, line := range lines {
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func countLines(text string) int {
	return len(splitLines(text))
}
