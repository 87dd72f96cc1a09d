package prettylog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"pkt.systems/prettylog/internal/theme"
)

const (
	paletteDefaultName = "default"
	paletteNoneName    = "none"
)

var paletteRegistry = map[string]theme.Theme{
	paletteDefaultName:    theme.Default,
	"default-16":          theme.Classic,
	"classic":             theme.Classic,
	"adaptive":            theme.Adaptive,
	"catppuccin-mocha":    theme.CatppuccinMocha,
	"doom-dracula":        theme.DoomDracula,
	"doom-gruvbox":        theme.DoomGruvbox,
	"doom-nord":           theme.DoomNord,
	"gruvbox-light":       theme.GruvboxLight,
	"monokai-vibrant":     theme.MonokaiVibrant,
	"outrun-electric":     theme.OutrunElectric,
	"solarized-nightfall": theme.SolarizedNightfall,
	"synthwave84":         theme.Synthwave84,
	"tokyo-night":         theme.TokyoNight,
}

// PaletteNames returns the sorted list of palette names, including "none".
func PaletteNames() []string {
	names := make([]string, 0, len(paletteRegistry)+1)
	for name := range paletteRegistry {
		names = append(names, name)
	}
	names = append(names, paletteNoneName)
	sort.Strings(names)
	return names
}

// ColorPalette holds one Lip Gloss style per segment color.
type ColorPalette struct {
	styles [numColors]lipgloss.Style
}

// Style returns the style for c.
func (p ColorPalette) Style(c Color) lipgloss.Style {
	if int(c) >= len(p.styles) {
		return p.styles[ColorText]
	}
	return p.styles[c]
}

// DefaultColorPalette returns the default theme bound to renderer.
func DefaultColorPalette(renderer *lipgloss.Renderer) ColorPalette {
	return colorPaletteFromTheme(renderer, theme.Default)
}

// NoColorPalette disables all styling while still routing through lipgloss.
func NoColorPalette(renderer *lipgloss.Renderer) ColorPalette {
	if renderer == nil {
		renderer = lipgloss.NewRenderer(os.Stdout)
	}
	base := segmentStyle(renderer)
	var p ColorPalette
	for i := range p.styles {
		p.styles[i] = base
	}
	return p
}

// resolvePalette returns the ColorPalette named by name, defaulting to
// paletteDefaultName when it is blank. "none" disables colouring. If
// enableColor is false the name is still validated but a no-color palette is
// returned.
func resolvePalette(name string, renderer *lipgloss.Renderer, enableColor bool) (ColorPalette, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = paletteDefaultName
	}
	if name == paletteNoneName {
		return NoColorPalette(renderer), nil
	}
	th, ok := paletteRegistry[name]
	if !ok {
		return ColorPalette{}, fmt.Errorf("unknown palette %q (use one of: %s)", name, strings.Join(PaletteNames(), ", "))
	}
	if !enableColor {
		return NoColorPalette(renderer), nil
	}
	return colorPaletteFromTheme(renderer, th), nil
}

func colorPaletteFromTheme(renderer *lipgloss.Renderer, th theme.Theme) ColorPalette {
	if renderer == nil {
		renderer = lipgloss.NewRenderer(os.Stdout)
	}
	base := segmentStyle(renderer)
	var p ColorPalette
	p.styles[ColorText] = base.Foreground(th.Text)
	p.styles[ColorTimestamp] = base.Foreground(th.Timestamp)
	p.styles[ColorNeutral] = base.Foreground(th.Neutral)
	p.styles[ColorInfo] = base.Foreground(th.Info)
	p.styles[ColorWarning] = base.Foreground(th.Warning)
	p.styles[ColorError] = base.Foreground(th.Error)
	p.styles[ColorKey] = base.Foreground(th.Key)
	return p
}

func segmentStyle(renderer *lipgloss.Renderer) lipgloss.Style {
	return renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
}
