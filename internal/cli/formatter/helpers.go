package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDueFrom describes a civil due date relative to today's civil date.
func RelativeDueFrom(due, now time.Time) string {
	days := int(domain.CivilDate(due).Sub(domain.CivilDate(now)).Hours() / 24)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0:
		return fmt.Sprintf("In %dw", days/7)
	case days > -14:
		return fmt.Sprintf("%dd overdue", -days)
	default:
		return fmt.Sprintf("%dw overdue", -days/7)
	}
}

// RelativeDueStyled colors RelativeDueFrom by urgency.
func RelativeDueStyled(due, now time.Time) string {
	text := RelativeDueFrom(due, now)
	days := int(domain.CivilDate(due).Sub(domain.CivilDate(now)).Hours() / 24)
	switch {
	case days <= 1:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// LongDate formats a civil date as "Monday, March 10, 2025".
func LongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into a compact form such as "2h 30m".
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatDuration spells minutes out: "45 minutes", "1 hour", "2 hours 30 minutes".
func FormatDuration(min int) string {
	if min < 60 {
		return plural(min, "minute")
	}
	h, m := min/60, min%60
	if m == 0 {
		return plural(h, "hour")
	}
	return plural(h, "hour") + " " + plural(m, "minute")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// HourRange formats slot hours as "09:00-13:00".
func HourRange(start, end int) string {
	return fmt.Sprintf("%02d:00-%02d:00", start, end)
}
