package viz

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines color scheme for console output
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeLab = Theme{
		Name:    "lab",
		Primary: lipgloss.Color("#00c800"), // worker green
		Accent:  lipgloss.Color("#ff0000"), // adhesion red
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#00aaff"),
		Accent:  lipgloss.Color("#00ffcc"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#406080"),
		Success: lipgloss.Color("#00ffaa"),
		Warning: lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ff6666"),
	}
)

var themes = map[string]Theme{
	ThemeLab.Name:     ThemeLab,
	ThemeMinimal.Name: ThemeMinimal,
	ThemeOcean.Name:   ThemeOcean,
}

var currentTheme = ThemeLab

// GetTheme returns the named theme, falling back to the default.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return ThemeLab
}

// SetTheme switches the theme used by styles created afterwards.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
	applyTheme(currentTheme)
}

func CurrentTheme() Theme { return currentTheme }

func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
