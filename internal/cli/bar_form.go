package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/ganttkit/internal/cli/formatter"
	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tri-state answers for optional boolean bar fields.
const (
	choiceUnset = "unset"
	choiceYes   = "yes"
	choiceNo    = "no"
)

// ganttHuhTheme returns a custom huh theme using the formatter's Gruvbox palette.
func ganttHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
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

// barFormValues holds what the interactive form collects. Everything is a
// string so blank answers can mean "leave the field out".
type barFormValues struct {
	ID            string
	Label         string
	LabelColor    string
	Bundle        string
	Class         string
	HasHandles    string
	Immobile      string
	PushOnOverlap string
	DragLeft      string
	DragRight     string
}

// barForm builds the two-page bar form: identity and label first, then behavior.
func barForm(v *barFormValues) *huh.Form {
	for _, p := range []*string{&v.HasHandles, &v.Immobile, &v.PushOnOverlap} {
		if *p == "" {
			*p = choiceUnset
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Bar ID").Placeholder("bar-1").Value(&v.ID).Validate(validateRequired("bar id")),
			huh.NewInput().Title("Label (blank for none)").Value(&v.Label),
			huh.NewInput().Title("Label Color (blank for default)").Placeholder("white").Value(&v.LabelColor),
			huh.NewInput().Title("Bundle (blank for none)").Value(&v.Bundle),
			huh.NewInput().Title("CSS Class (blank for none)").Value(&v.Class),
		),
		huh.NewGroup(
			triStateSelect("Resize Handles", &v.HasHandles),
			triStateSelect("Immobile", &v.Immobile),
			triStateSelect("Push On Overlap", &v.PushOnOverlap),
			huh.NewInput().Title("Drag Limit Left (blank for none)").Value(&v.DragLeft).Validate(validateOptionalNumber),
			huh.NewInput().Title("Drag Limit Right (blank for none)").Value(&v.DragRight).Validate(validateOptionalNumber),
		),
	).WithTheme(ganttHuhTheme()).WithShowHelp(false)
}

func triStateSelect(title string, value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(choiceUnset, choiceYes, choiceNo)...).
		Value(value)
}

func validateRequired(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

// validateOptionalNumber accepts empty or a finite number.
func validateOptionalNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func (v barFormValues) toBar() (*domain.Bar, error) {
	b := domain.NewBar(strings.TrimSpace(v.ID))
	cfg := &b.Config

	if v.Label != "" || v.LabelColor != "" {
		cfg.Label = &domain.BarLabel{Name: optionalText(v.Label), Color: optionalText(v.LabelColor)}
	}
	cfg.Bundle = optionalText(strings.TrimSpace(v.Bundle))
	cfg.Class = optionalText(strings.TrimSpace(v.Class))
	cfg.HasHandles = parseTriState(v.HasHandles)
	cfg.Immobile = parseTriState(v.Immobile)
	cfg.PushOnOverlap = parseTriState(v.PushOnOverlap)

	var err error
	if cfg.DragLimitLeft, err = parseOptionalNumber("drag limit left", v.DragLeft); err != nil {
		return nil, err
	}
	if cfg.DragLimitRight, err = parseOptionalNumber("drag limit right", v.DragRight); err != nil {
		return nil, err
	}
	return b, nil
}

// optionalText maps a blank answer to an absent field.
func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseTriState(s string) *bool {
	switch s {
	case choiceYes:
		return domain.Ptr(true)
	case choiceNo:
		return domain.Ptr(false)
	default:
		return nil
	}
}

func parseOptionalNumber(field, s string) (*float64, error) {
	if err := validateOptionalNumber(s); err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, _ := strconv.ParseFloat(s, 64)
	return &n, nil
}
