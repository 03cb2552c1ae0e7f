package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "frontmatter description",
			content: "---\ndescription: From frontmatter\n---\n# Athena\n\nBody line\n",
			want:    "From frontmatter",
		},
		{
			name:    "first line after title",
			content: "# Athena\n\n## Overview\n---\n  Memory architect  \nMore\n",
			want:    "Memory architect",
		},
		{
			name:    "role fallback",
			content: "No title here\n- **Role**: Reviewer\n",
			want:    "Reviewer",
		},
		{
			name:    "expertise fallback",
			content: "**Expertise**: Databases\n",
			want:    "Databases",
		},
		{
			name:    "nothing usable",
			content: "# Title only\n",
			want:    "",
		},
		{
			name:    "empty",
			content: "",
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.content))
		})
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, NoDescription, Summary(""))

	long := "# A\n" + strings.Repeat("x", 100) + "\n"
	got := Summary(long)
	assert.Len(t, got, SummaryWidth)
	assert.True(t, strings.HasSuffix(got, "..."))

	assert.Equal(t, "short", Summary("# A\nshort\n"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "a...", Truncate("abcdef", 4))
	assert.Equal(t, "", Truncate("", 5))
	assert.Equal(t, "日本", Truncate("日本", 4))
}

func TestOverview(t *testing.T) {
	content := "intro ignored\n# Title\n\nl1\nl2\n\nl3\n## Section\nafter\n"
	lines, more := Overview(content)
	assert.Equal(t, []string{"l1", "l2", "l3"}, lines)
	assert.False(t, more)

	content = "# T\n1\n2\n3\n4\n5\n6\n"
	lines, more = Overview(content)
	assert.Len(t, lines, OverviewLines)
	assert.True(t, more)

	lines, more = Overview("no title\n")
	assert.Empty(t, lines)
	assert.False(t, more)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, CountLines(""))
	assert.Equal(t, 1, CountLines("a"))
	assert.Equal(t, 2, CountLines("a\nb\n"))
}
