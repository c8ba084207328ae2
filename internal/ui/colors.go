package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/tabernacle/internal/models"
)

const gold = "#C5A059"

var (
	darkStyles  = NewPalette(gold, "#F5F5F5", "#04B575", "#FF5F5F", "#FFA500", "#626262", "#1A1A1A")
	lightStyles = NewPalette("#8A6D2F", "#1A1A1A", "#027A48", "#C01818", "#B45309", "#8A8A8A", "#EFE8DA")
)

// PaletteFor returns the stylesheet of a theme.
func PaletteFor(t models.Theme) *Palette {
	if t == models.ThemeLight {
		return lightStyles
	}
	return darkStyles
}

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	accent  lipgloss.Color
	title   lipgloss.Style
	text    lipgloss.Style
	gold    lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	help    lipgloss.Style
	tab     lipgloss.Style
	active  lipgloss.Style
	panel   lipgloss.Style
	anchor  lipgloss.Style
	toast   lipgloss.Style
	chat    lipgloss.Style
	muted   lipgloss.Style
	surface lipgloss.Color
}

func NewPalette(accent, fg, ok, e, w, h, surface string) *Palette {
	return &Palette{
		accent:  lipgloss.Color(accent),
		title:   NewBold(accent).MarginBottom(1),
		text:    NewStyle(fg),
		gold:    NewStyle(accent),
		ok:      NewBold(ok),
		err:     NewBold(e),
		warn:    NewStyle(w),
		help:    NewEm(h),
		muted:   NewStyle(h),
		tab:     NewStyle(h).Padding(0, 1),
		active:  NewBold(surface).Background(lipgloss.Color(accent)).Padding(0, 1),
		panel:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(h)).Padding(0, 1),
		anchor:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(accent)).Padding(0, 1),
		toast:   NewBold(surface).Background(lipgloss.Color(accent)).Padding(0, 2),
		chat:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(accent)).Padding(0, 1),
		surface: lipgloss.Color(surface),
	}
}

// As renders s in color c.
func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

// On renders s over background c.
func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Foreground(p.surface).Render(s)
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
