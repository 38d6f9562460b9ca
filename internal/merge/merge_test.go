package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aatumaykin/crondir/internal/constants"
)

const (
	sample  = "0 * * * * /home/deploy/project/bin/hourly_refresh.sh"
	sample2 = "1 1 * * * /home/deploy/project/bin/daily_refresh.sh"
)

func testSnippets() []Snippet {
	return []Snippet{
		{Name: "test_cron_1", Source: "/cron.d/test_cron_1", Content: sample},
		{Name: "test_cron_2", Source: "/cron.d/test_cron_2", Content: sample2 + "\n\n"},
	}
}

func TestCompute_NoCrontab(t *testing.T) {
	got := Compute("", testSnippets())

	want := constants.StartMarker + "\n" +
		"# /cron.d/test_cron_1\n" + sample + "\n\n" +
		"# /cron.d/test_cron_2\n" + sample2 + "\n\n" +
		constants.EndMarker + "\n"
	assert.Equal(t, want, got)
}

func TestCompute_ExistingCrontabMerged(t *testing.T) {
	existing := "0 * * * * original_pre\n" +
		constants.StartMarker + "\n" +
		"# /path/to/something\n\n" +
		constants.EndMarker + "\n" +
		"0 * * * * original_post\n"

	got := Compute(existing, testSnippets())

	want := "0 * * * * original_pre\n\n" +
		"0 * * * * original_post\n\n" +
		constants.StartMarker + "\n" +
		"# /cron.d/test_cron_1\n" + sample + "\n\n" +
		"# /cron.d/test_cron_2\n" + sample2 + "\n\n" +
		constants.EndMarker + "\n"
	assert.Equal(t, want, got)
}

func TestCompute_OldBlockReplaced(t *testing.T) {
	existing := "X\n" + constants.StartMarker + "\nold\n" + constants.EndMarker + "\nY\n"
	snippets := []Snippet{{Name: "foo", Source: "/home/me/.cron.d/foo", Content: "* * * * * foo.sh"}}

	got := Compute(existing, snippets)

	want := "X\n\nY\n\n" + constants.StartMarker + "\n" +
		"# /home/me/.cron.d/foo\n* * * * * foo.sh\n\n" +
		constants.EndMarker + "\n"
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "old")
}

func TestCompute_NoMarkersPreservesContent(t *testing.T) {
	existing := "MAILTO=ops@example.com\n\n# nightly\n30 2 * * * /usr/bin/nightly\n   \n"

	got := Compute(existing, testSnippets())

	for _, line := range strings.Split(existing, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		assert.Contains(t, got, line)
	}
	start := strings.Index(got, constants.StartMarker)
	assert.Greater(t, start, strings.Index(got, "/usr/bin/nightly"))
	assert.True(t, strings.HasPrefix(got, "MAILTO=ops@example.com\n\n# nightly\n30 2 * * * /usr/bin/nightly\n\n"))
}

func TestCompute_StartWithoutEndDiscardsTail(t *testing.T) {
	existing := "keep me\n" + constants.StartMarker + "\n* * * * * stale\nlost foreign line\n"

	got := Compute(existing, nil)

	assert.Equal(t, "keep me\n\n"+constants.StartMarker+"\n"+constants.EndMarker+"\n", got)
	assert.NotContains(t, got, "lost foreign line")
}

func TestCompute_ZeroSnippets(t *testing.T) {
	assert.Equal(t, constants.StartMarker+"\n"+constants.EndMarker+"\n", Compute("", nil))
}

func TestCompute_EndMarkerBeforeStartIsForeign(t *testing.T) {
	existing := constants.EndMarker + "\nA\n" + constants.StartMarker + "\nold\n" + constants.EndMarker + "\nB\n"

	got := Compute(existing, nil)

	assert.Equal(t, constants.EndMarker+"\nA\n\nB\n\n"+constants.StartMarker+"\n"+constants.EndMarker+"\n", got)
}

func TestCompute_SortOrder(t *testing.T) {
	snippets := []Snippet{
		{Name: "b", Source: "/d/b", Content: "b"},
		{Name: "a", Source: "/d/a", Content: "a"},
		{Name: "c", Source: "/d/c", Content: "c"},
	}

	got := Compute("", snippets)

	a := strings.Index(got, "# /d/a")
	b := strings.Index(got, "# /d/b")
	c := strings.Index(got, "# /d/c")
	assert.True(t, a < b && b < c, "expected a, b, c order in:\n%s", got)

	// input slice is left untouched
	assert.Equal(t, "b", snippets[0].Name)
}

func TestCompute_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"X\n",
		"  \n\n",
		"X\n" + constants.StartMarker + "\nold\n" + constants.EndMarker + "\nY\n",
		constants.StartMarker + "\nold\n" + constants.EndMarker + "\n",
		"pre\n" + constants.StartMarker + "\ntruncated block\n",
		"MAILTO=root\n\n\n0 0 * * * a\n" + constants.StartMarker + "\n" + constants.EndMarker + "\n\n\n1 1 * * * b\n\n",
	}
	snippetSets := [][]Snippet{nil, testSnippets()}

	for _, in := range inputs {
		for _, snippets := range snippetSets {
			once := Compute(in, snippets)
			twice := Compute(once, snippets)
			assert.Equal(t, once, twice, "input %q", in)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantPre   string
		wantPost  string
		wantFound bool
	}{
		{name: "empty", in: ""},
		{name: "no markers", in: "a\nb\n", wantPre: "a\nb\n"},
		{
			name:      "full block",
			in:        "a\n" + constants.StartMarker + "\nx\n" + constants.EndMarker + "\nb\n",
			wantPre:   "a\n",
			wantPost:  "\nb\n",
			wantFound: true,
		},
		{
			name:      "missing end",
			in:        "a\n" + constants.StartMarker + "\nx\n",
			wantPre:   "a\n",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pre, post, found := Split(tt.in)
			assert.Equal(t, tt.wantPre, pre)
			assert.Equal(t, tt.wantPost, post)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestBlock_TrimsContent(t *testing.T) {
	got := Block([]Snippet{{Name: "x", Source: "/d/x", Content: "\n\n  * * * * * x  \n\n"}})
	assert.Equal(t, constants.StartMarker+"\n# /d/x\n* * * * * x\n\n"+constants.EndMarker+"\n", got)
}

func TestCompute_WhitespaceAroundBlockDropped(t *testing.T) {
	snippets := []Snippet{{Name: "a", Source: "/cron.d/a", Content: sample}}
	block := constants.StartMarker + "\n# /cron.d/a\n" + sample + "\n\n" + constants.EndMarker + "\n"
	existing := " \n\n" + block + "\n\t\n"

	got := Compute(existing, snippets)
	assert.Equal(t, block, got)
	assert.True(t, strings.HasSuffix(got, constants.EndMarker+"\n"))
	assert.False(t, strings.HasSuffix(got, constants.EndMarker+"\n\n"))
	assert.Equal(t, got, Compute(got, snippets))
}
