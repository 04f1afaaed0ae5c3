package actions

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/impactlens/ilens/pkg/api"
	"github.com/impactlens/ilens/pkg/diagnostic"
)

type span struct {
	start   int
	end     int
	newText string
}

// lineStarts returns the byte offset of the beginning of each line.
func lineStarts(text string) []int {
	starts := []int{0}
	for i := range len(text) {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offset converts a 0-based line and character position to a byte offset.
// Characters are counted in runes and clamped to the end of the line.
func offset(text string, starts []int, pos diagnostic.Position) int {
	if pos.Line >= len(starts) {
		return len(text)
	}
	lineStart := starts[pos.Line]
	lineEnd := len(text)
	if pos.Line+1 < len(starts) {
		lineEnd = starts[pos.Line+1] - 1
	}
	line := strings.TrimSuffix(text[lineStart:lineEnd], "\r")
	off := lineStart
	for i := 0; i < pos.Character && off < lineStart+len(line); i++ {
		_, size := utf8.DecodeRuneInString(text[off:])
		off += size
	}
	return off
}

func editRange(r *api.Range) diagnostic.Range {
	rng := diagnostic.ConvertRange(r)
	if r == nil || r.End == nil {
		// an edit without an end inserts text
		rng.End = rng.Start
	}
	return rng
}

// ApplyEdits applies non-overlapping edits to text.
func ApplyEdits(text string, edits []*api.TextEdit) (string, error) {
	starts := lineStarts(text)
	spans := make([]*span, 0, len(edits))
	for _, e := range edits {
		if e == nil {
			continue
		}
		rng := editRange(e.Range)
		s := &span{
			start:   offset(text, starts, rng.Start),
			end:     offset(text, starts, rng.End),
			newText: e.NewText,
		}
		if s.end < s.start {
			return "", fmt.Errorf("the end of an edit precedes its start: %d:%d", rng.Start.Line, rng.Start.Character)
		}
		spans = append(spans, s)
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return "", errors.New("edits overlap")
		}
	}
	var b strings.Builder
	prev := 0
	for _, s := range spans {
		b.WriteString(text[prev:s.start])
		b.WriteString(s.newText)
		prev = s.end
	}
	b.WriteString(text[prev:])
	return b.String(), nil
}
