package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		min  int
		want string
	}{
		{1, "1 minute"},
		{45, "45 minutes"},
		{60, "1 hour"},
		{61, "1 hour 1 minute"},
		{90, "1 hour 30 minutes"},
		{120, "2 hours"},
		{150, "2 hours 30 minutes"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.min), "minutes=%d", tt.min)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "2h 30m", FormatMinutes(150))
}

func TestRelativeDueFrom(t *testing.T) {
	now := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	day := func(n int) time.Time { return domain.CivilDate(now).AddDate(0, 0, n) }

	tests := []struct {
		name string
		due  time.Time
		want string
	}{
		{"today", day(0), "Today"},
		{"tomorrow", day(1), "Tomorrow"},
		{"yesterday", day(-1), "Yesterday"},
		{"days ahead", day(5), "In 5d"},
		{"weeks ahead", day(21), "In 3w"},
		{"days overdue", day(-3), "3d overdue"},
		{"weeks overdue", day(-21), "3w overdue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDueFrom(tt.due, now))
			assert.Equal(t, tt.want, stripANSI(RelativeDueStyled(tt.due, now)))
		})
	}
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "Monday, March 10, 2025", LongDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
}

func TestHourRange(t *testing.T) {
	assert.Equal(t, "09:00-13:00", HourRange(9, 13))
	assert.Equal(t, "21:00-23:00", HourRange(21, 23))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdef12", stripANSI(TruncID("abcdef1234567890")))
	assert.Equal(t, "short", stripANSI(TruncID("short")))
}

func TestPriorityBadge(t *testing.T) {
	assert.Equal(t, "● high", stripANSI(PriorityBadge(domain.PriorityHigh)))
	assert.Equal(t, "● medium", stripANSI(PriorityBadge("")))
}

func TestHeader_Uppercases(t *testing.T) {
	out := stripANSI(Header("Schedule"))
	assert.Equal(t, "SCHEDULE\n────────", out)
}

func TestRenderBox_IncludesTitleAndContent(t *testing.T) {
	out := stripANSI(RenderBox("slots", "body text"))
	assert.Contains(t, out, "SLOTS")
	assert.Contains(t, out, "body text")
	assert.Contains(t, out, "╭")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "LONG"}, [][]string{{"wide cell", "x"}, {"y", StyleRed.Render("z")}}))
	lines := splitLines(out)
	assert.Len(t, lines, 4)
	assert.Equal(t, "A          LONG", lines[0])
	assert.Equal(t, "wide cell  x", lines[2])
	assert.Equal(t, "y          z", lines[3])
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderTable_CutsLongCells(t *testing.T) {
	long := strings.Repeat("x", tableMaxCell+15)
	out := stripANSI(RenderTable([]string{"TITLE", "DUE"}, [][]string{{long, "today"}}))
	lines := splitLines(out)
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Repeat("x", tableMaxCell)+"  today", lines[2])
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
