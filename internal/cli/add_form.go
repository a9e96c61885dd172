package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/studyslots/internal/cli/formatter"
	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// studyslotsHuhTheme returns a huh theme built on the formatter palette.
func studyslotsHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// addFormValues are the raw strings bound to the add form fields.
type addFormValues struct {
	Title    string
	Subject  string
	Hours    string
	Minutes  string
	Due      string
	Priority string
}

// newAddTaskForm asks for every task field on one page.
func newAddTaskForm(v *addFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&v.Title).
				Validate(validateRequired("title")),
			huh.NewInput().
				Title("Subject").
				Placeholder(domain.DefaultSubject).
				Value(&v.Subject),
			huh.NewInput().
				Title("Hours").
				Placeholder("0").
				Value(&v.Hours).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Minutes").
				Placeholder("0").
				Value(&v.Minutes).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, today or tomorrow").
				Value(&v.Due).
				Validate(validateDueDate),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Low", string(domain.PriorityLow)),
					huh.NewOption("Medium", string(domain.PriorityMedium)),
					huh.NewOption("High", string(domain.PriorityHigh)),
				).
				Value(&v.Priority),
		),
	).WithTheme(studyslotsHuhTheme()).WithShowHelp(false)
}

// input converts the form strings into a TaskInput. Validation of the task
// itself stays with domain.NewTask.
func (v addFormValues) input(now time.Time) (domain.TaskInput, error) {
	hours, err := atoiOrZero(v.Hours)
	if err != nil {
		return domain.TaskInput{}, fmt.Errorf("hours: %w", err)
	}
	minutes, err := atoiOrZero(v.Minutes)
	if err != nil {
		return domain.TaskInput{}, fmt.Errorf("minutes: %w", err)
	}
	due, err := parseDue(v.Due, now)
	if err != nil {
		return domain.TaskInput{}, err
	}
	return domain.TaskInput{
		Title:       v.Title,
		Subject:     v.Subject,
		DurationMin: domain.DurationFromParts(hours, minutes),
		DueDate:     due,
		Priority:    domain.ParsePriority(v.Priority),
	}, nil
}

// parseDue reads a due date relative to now. Empty input yields nil.
func parseDue(s string, now time.Time) (*time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	var d time.Time
	switch s {
	case "":
		return nil, nil
	case "today":
		d = domain.CivilDate(now)
	case "tomorrow":
		d = domain.CivilDate(now).AddDate(0, 0, 1)
	default:
		parsed, err := domain.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("invalid due date %q: use YYYY-MM-DD format", s)
		}
		d = parsed
	}
	return &d, nil
}

func atoiOrZero(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("enter a non-negative number")
	}
	return v, nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	_, err := atoiOrZero(s)
	return err
}

// validateDueDate accepts YYYY-MM-DD, today or tomorrow.
func validateDueDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("due date is required")
	}
	if _, err := parseDue(s, time.Now()); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}
