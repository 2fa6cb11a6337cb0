package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/relplan/internal/app"
	"github.com/alexanderramin/relplan/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// relplanHuhTheme returns a huh theme in the formatter's palette: blue for
// the field being edited, dim for the rest.
func relplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	f := &t.Focused
	f.Title = fg(formatter.ColorBlue).Bold(true)
	f.Description = fg(formatter.ColorDim)
	f.ErrorMessage = fg(formatter.ColorRed)
	f.SelectSelector = fg(formatter.ColorBlue)
	f.SelectedOption = fg(formatter.ColorGreen)
	f.UnselectedOption = fg(formatter.ColorFg)
	f.TextInput.Cursor = fg(formatter.ColorBlue)
	f.TextInput.Prompt = fg(formatter.ColorBlue)
	f.TextInput.Text = fg(formatter.ColorFg)
	f.TextInput.Placeholder = fg(formatter.ColorDim)

	b := &t.Blurred
	b.Title = fg(formatter.ColorDim)
	b.SelectSelector = fg(formatter.ColorDim)
	b.SelectedOption = fg(formatter.ColorDim)
	b.TextInput.Prompt = fg(formatter.ColorDim)
	b.TextInput.Text = fg(formatter.ColorDim)

	return t
}

// ptoForm asks for the fields of `pto add` that were not given as flags.
// The member is picked from the stored team.
func ptoForm(ctx context.Context, a *App, member, start, end, reason *string) (*huh.Form, error) {
	members, err := a.Team.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("no team members yet; import a plan with a team section first")
	}

	options := make([]huh.Option[string], 0, len(members))
	for _, m := range members {
		label := m.Name
		if m.Role != "" {
			label = fmt.Sprintf("%s (%s)", m.Name, m.Role)
		}
		options = append(options, huh.NewOption(label, m.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Who is away?").
				Options(options...).
				Value(member),
			dateInput("First day off (YYYY-MM-DD)", start, validateRequiredDate),
			dateInput("Last day off (blank for a single day)", end, func(s string) error {
				if err := validateOptionalDate(s); err != nil {
					return err
				}
				return validateNotBefore(*start, s)
			}),
			huh.NewInput().
				Title("Reason (optional)").
				Value(reason),
		),
	).WithTheme(relplanHuhTheme()).WithShowHelp(false), nil
}

func dateInput(title string, value *string, validate func(string) error) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(time.Now().Format(app.DateLayout)).
		Value(value).
		Validate(validate)
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(app.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validateRequiredDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("a date is required")
	}
	return validateOptionalDate(s)
}

// validateNotBefore rejects an end date earlier than start. Blank or
// malformed values are left to the other validators.
func validateNotBefore(start, end string) error {
	s, errS := time.Parse(app.DateLayout, strings.TrimSpace(start))
	e, errE := time.Parse(app.DateLayout, strings.TrimSpace(end))
	if errS != nil || errE != nil {
		return nil
	}
	if e.Before(s) {
		return fmt.Errorf("last day is before the first day")
	}
	return nil
}
