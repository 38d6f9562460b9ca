// Package merge splices the managed block of snippet files into an existing
// crontab text.
//
// The installed crontab is treated as three parts: the text before the first
// start marker (pre), the previous managed block, and the text after the
// first end marker that follows it (post). A rebuild keeps pre and post,
// hoists both above a freshly generated block and drops the old block, so the
// managed block always ends up last and repeated builds are idempotent.
//
// A start marker without a matching end marker discards everything after the
// start marker. This is a known sharp edge kept for compatibility: a
// truncated block is treated as stale and regenerated, and any foreign lines
// that followed it are lost.
//
// Two details of the output format:
//   - pre and post are dropped when they are empty after trimming, not only
//     when empty as read. Otherwise a crontab holding nothing but whitespace
//     around the block would gain a blank line on every build.
//   - the result ends with a single newline after the end marker.
package merge

import (
	"sort"
	"strings"

	"github.com/aatumaykin/crondir/internal/constants"
)

// Snippet is one file contributing job lines to the managed block.
type Snippet struct {
	Name    string // ordering key, unique within the store
	Source  string // path printed in the comment line above the content
	Content string
}

// Split returns the foreign text around the managed block.
// found reports whether a start marker was present.
func Split(existing string) (pre, post string, found bool) {
	pre, rest, found := strings.Cut(existing, constants.StartMarker)
	if !found {
		return existing, "", false
	}
	_, post, _ = strings.Cut(rest, constants.EndMarker)
	return pre, post, true
}

// Compute returns the new crontab text for existing and snippets.
// snippets is not modified; the block lists them sorted by Name.
func Compute(existing string, snippets []Snippet) string {
	pre, post, _ := Split(existing)

	content := make([]string, 0, 4+len(snippets)*3)
	if trimmed := strings.TrimSpace(pre); trimmed != "" {
		content = append(content, trimmed+"\n")
	}
	if trimmed := strings.TrimSpace(post); trimmed != "" {
		content = append(content, trimmed+"\n")
	}

	content = append(content, Block(snippets))
	return strings.Join(content, "\n")
}

// Block renders the managed block alone, markers included, ending with a newline.
func Block(snippets []Snippet) string {
	sorted := make([]Snippet, len(snippets))
	copy(sorted, snippets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	lines := make([]string, 0, 2+len(sorted)*3)
	lines = append(lines, constants.StartMarker)
	for _, s := range sorted {
		lines = append(lines, "# "+s.Source, strings.TrimSpace(s.Content), "")
	}
	lines = append(lines, constants.EndMarker, "")

	return strings.Join(lines, "\n")
}
