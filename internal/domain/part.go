package domain

import "fmt"

// BatchPart is one contiguous slice of an oversized paste. Parts produced
// from the same source cover its line count exactly: ranges are contiguous,
// non-overlapping, and 1-based inclusive.
type BatchPart struct {
	Content   string
	Number    int
	StartLine int
	EndLine   int
	Format    string
	Filename  string
}

// PartFilename returns the deterministic filename for a part:
// part{N}-lines{start}-{end}.{ext}. Collision-free within one run.
func PartFilename(number, startLine, endLine int, ext string) string {
	return fmt.Sprintf("part%d-lines%d-%d.%s", number, startLine, endLine, ext)
}

// LineCount returns the number of source lines the part spans.
func (p BatchPart) LineCount() int {
	return p.EndLine - p.StartLine + 1
}
