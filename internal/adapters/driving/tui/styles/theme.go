// Package styles holds the TUI palette and the lipgloss styles built on it.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

// Theme is a palette. Category colours double as block chip colours.
type Theme struct {
	Accent  lipgloss.Color
	Heading lipgloss.Color
	Text    lipgloss.Color
	Dim     lipgloss.Color
	Surface lipgloss.Color
	Outline lipgloss.Color
	Good    lipgloss.Color
	Caution lipgloss.Color
	Bad     lipgloss.Color

	// Categories colours badges. Missing entries use CategoryOther.
	Categories map[domain.Category]lipgloss.Color
}

// DefaultTheme is a dark Catppuccin Mocha palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  "#CBA6F7",
		Heading: "#89DCEB",
		Text:    "#CDD6F4",
		Dim:     "#6C7086",
		Surface: "#181825",
		Outline: "#45475A",
		Good:    "#A6E3A1",
		Caution: "#F9E2AF",
		Bad:     "#F38BA8",
		Categories: map[domain.Category]lipgloss.Color{
			domain.CategoryURL:   "#89B4FA",
			domain.CategoryPhone: "#A6E3A1",
			domain.CategoryBank:  "#F9E2AF",
			domain.CategoryEvent: "#F5C2E7",
			domain.CategoryMap:   "#FAB387",
			domain.CategoryNote:  "#94E2D5",
			domain.CategoryOther: "#7F849C",
		},
	}
}

// Styles are the rendered styles shared by every view.
type Styles struct {
	theme *Theme

	Title, Subtitle lipgloss.Style
	Normal, Muted   lipgloss.Style
	Selected        lipgloss.Style
	Error, Warning  lipgloss.Style
	Success         lipgloss.Style
	Help            lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Border     lipgloss.Style

	// Chip is the base of category and block labels; see Category and Block.
	Chip lipgloss.Style
}

// NewStyles builds styles from a theme. A nil theme means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	frame := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Outline)

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Accent).Bold(true),
		Subtitle: fg(theme.Heading).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Dim),
		Selected: fg(theme.Surface).Background(theme.Accent).Bold(true),
		Error:    fg(theme.Bad),
		Warning:  fg(theme.Caution),
		Success:  fg(theme.Good),
		Help:     fg(theme.Dim).Italic(true),

		InputField: frame.Padding(0, 1),
		StatusBar:  fg(theme.Dim).Background(theme.Surface).Padding(0, 1),
		Border:     frame,
		Chip:       fg(theme.Surface).Bold(true).Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Category returns the badge style of a category.
func (s *Styles) Category(c domain.Category) lipgloss.Style {
	return s.Chip.Background(s.theme.color(c))
}

// Block returns the chip style of a block kind, coloured like the category
// it usually produces.
func (s *Styles) Block(k domain.BlockKind) lipgloss.Style {
	return s.Category(blockCategory(k))
}

func (t *Theme) color(c domain.Category) lipgloss.Color {
	if col, ok := t.Categories[c]; ok {
		return col
	}
	return t.Categories[domain.CategoryOther]
}

var defaultTheme = DefaultTheme()

// CategoryColor returns the default theme's colour for a category. The CLI
// uses it for badges outside the TUI.
func CategoryColor(c domain.Category) lipgloss.Color {
	return defaultTheme.color(c)
}

func blockCategory(k domain.BlockKind) domain.Category {
	switch k {
	case domain.BlockQRCode, domain.BlockBankInfo:
		return domain.CategoryBank
	case domain.BlockPhoneNumber:
		return domain.CategoryPhone
	case domain.BlockURLLink:
		return domain.CategoryURL
	case domain.BlockMapLocation:
		return domain.CategoryMap
	default:
		return domain.CategoryOther
	}
}
