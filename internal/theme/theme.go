// Package theme holds the named color themes for rendered log lines.
// The 256-color presets reuse the pslog palette values.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme assigns a terminal color to every segment class the renderer emits.
type Theme struct {
	Timestamp lipgloss.TerminalColor
	Neutral   lipgloss.TerminalColor // trace, debug and unknown levels
	Info      lipgloss.TerminalColor
	Warning   lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Key       lipgloss.TerminalColor
	Text      lipgloss.TerminalColor
}

var none = lipgloss.NoColor{}

// Default uses the basic 16-color set: magenta timestamps, blue info,
// yellow warnings, red errors, green keys.
var Default = Theme{
	Timestamp: lipgloss.Color("5"),
	Neutral:   none,
	Info:      lipgloss.Color("4"),
	Warning:   lipgloss.Color("3"),
	Error:     lipgloss.Color("1"),
	Key:       lipgloss.Color("2"),
	Text:      none,
}

// Classic also paints neutral levels and plain text black, which reads well
// on light backgrounds only.
var Classic = Theme{
	Timestamp: lipgloss.Color("5"),
	Neutral:   lipgloss.Color("0"),
	Info:      lipgloss.Color("4"),
	Warning:   lipgloss.Color("3"),
	Error:     lipgloss.Color("1"),
	Key:       lipgloss.Color("2"),
	Text:      lipgloss.Color("0"),
}

// Adaptive picks light or dark variants from the terminal background.
var Adaptive = Theme{
	Timestamp: lipgloss.AdaptiveColor{Light: "90", Dark: "176"},
	Neutral:   lipgloss.AdaptiveColor{Light: "240", Dark: "245"},
	Info:      lipgloss.AdaptiveColor{Light: "25", Dark: "111"},
	Warning:   lipgloss.AdaptiveColor{Light: "130", Dark: "220"},
	Error:     lipgloss.AdaptiveColor{Light: "160", Dark: "203"},
	Key:       lipgloss.AdaptiveColor{Light: "28", Dark: "114"},
	Text:      none,
}

// OutrunElectric is neon pinks and blues.
var OutrunElectric = Theme{
	Timestamp: lipgloss.Color("117"),
	Neutral:   lipgloss.Color("39"),
	Info:      lipgloss.Color("45"),
	Warning:   lipgloss.Color("129"),
	Error:     lipgloss.Color("205"),
	Key:       lipgloss.Color("201"),
	Text:      lipgloss.Color("219"),
}

// DoomDracula has pink, purple and cyan accents.
var DoomDracula = Theme{
	Timestamp: lipgloss.Color("95"),
	Neutral:   lipgloss.Color("98"),
	Info:      lipgloss.Color("117"),
	Warning:   lipgloss.Color("219"),
	Error:     lipgloss.Color("204"),
	Key:       lipgloss.Color("219"),
	Text:      lipgloss.Color("225"),
}

// DoomGruvbox uses earthy reds and ambers.
var DoomGruvbox = Theme{
	Timestamp: lipgloss.Color("137"),
	Neutral:   lipgloss.Color("72"),
	Info:      lipgloss.Color("107"),
	Warning:   lipgloss.Color("208"),
	Error:     lipgloss.Color("167"),
	Key:       lipgloss.Color("214"),
	Text:      lipgloss.Color("221"),
}

// DoomNord uses cool glacier blues.
var DoomNord = Theme{
	Timestamp: lipgloss.Color("109"),
	Neutral:   lipgloss.Color("74"),
	Info:      lipgloss.Color("117"),
	Warning:   lipgloss.Color("179"),
	Error:     lipgloss.Color("210"),
	Key:       lipgloss.Color("153"),
	Text:      lipgloss.Color("195"),
}

// TokyoNight has neon blues, violets and warm highlights.
var TokyoNight = Theme{
	Timestamp: lipgloss.Color("109"),
	Neutral:   lipgloss.Color("67"),
	Info:      lipgloss.Color("111"),
	Warning:   lipgloss.Color("173"),
	Error:     lipgloss.Color("210"),
	Key:       lipgloss.Color("69"),
	Text:      lipgloss.Color("218"),
}

// SolarizedNightfall has teal highlights and amber warnings.
var SolarizedNightfall = Theme{
	Timestamp: lipgloss.Color("244"),
	Neutral:   lipgloss.Color("30"),
	Info:      lipgloss.Color("36"),
	Warning:   lipgloss.Color("136"),
	Error:     lipgloss.Color("160"),
	Key:       lipgloss.Color("37"),
	Text:      lipgloss.Color("230"),
}

// CatppuccinMocha uses soft pastels.
var CatppuccinMocha = Theme{
	Timestamp: lipgloss.Color("110"),
	Neutral:   lipgloss.Color("109"),
	Info:      lipgloss.Color("150"),
	Warning:   lipgloss.Color("216"),
	Error:     lipgloss.Color("211"),
	Key:       lipgloss.Color("217"),
	Text:      lipgloss.Color("223"),
}

// GruvboxLight is for light backgrounds.
var GruvboxLight = Theme{
	Timestamp: lipgloss.Color("180"),
	Neutral:   lipgloss.Color("114"),
	Info:      lipgloss.Color("73"),
	Warning:   lipgloss.Color("173"),
	Error:     lipgloss.Color("167"),
	Key:       lipgloss.Color("130"),
	Text:      lipgloss.Color("94"),
}

// MonokaiVibrant mixes neon yellows and minty greens.
var MonokaiVibrant = Theme{
	Timestamp: lipgloss.Color("103"),
	Neutral:   lipgloss.Color("114"),
	Info:      lipgloss.Color("121"),
	Warning:   lipgloss.Color("215"),
	Error:     lipgloss.Color("197"),
	Key:       lipgloss.Color("229"),
	Text:      lipgloss.Color("229"),
}

// Synthwave84 glows in magenta, cyan and gold.
var Synthwave84 = Theme{
	Timestamp: lipgloss.Color("69"),
	Neutral:   lipgloss.Color("69"),
	Info:      lipgloss.Color("81"),
	Warning:   lipgloss.Color("220"),
	Error:     lipgloss.Color("205"),
	Key:       lipgloss.Color("198"),
	Text:      lipgloss.Color("219"),
}
