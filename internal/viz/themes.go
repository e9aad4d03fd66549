package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the viewer.
type Theme struct {
	Name   string
	Wire   lipgloss.Color // settled cubelets
	Active lipgloss.Color // the turning layer
	Header lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Graph  lipgloss.Color
	Solved lipgloss.Color
	Paused lipgloss.Color
}

var (
	ThemeMinimal = Theme{
		Name:   "minimal",
		Wire:   lipgloss.Color("#cccccc"),
		Active: lipgloss.Color("#0088ff"),
		Header: lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Graph:  lipgloss.Color("#0088ff"),
		Solved: lipgloss.Color("#00ff00"),
		Paused: lipgloss.Color("#ffaa00"),
	}

	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Wire:   lipgloss.Color("#00ffff"),
		Active: lipgloss.Color("#ff00ff"),
		Header: lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Graph:  lipgloss.Color("#ff00ff"),
		Solved: lipgloss.Color("#00ff00"),
		Paused: lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Wire:   lipgloss.Color("#00cc00"),
		Active: lipgloss.Color("#88ff88"),
		Header: lipgloss.Color("#00ff00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Graph:  lipgloss.Color("#88ff88"),
		Solved: lipgloss.Color("#88ff88"),
		Paused: lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Wire:   lipgloss.Color("#00a8cc"),
		Active: lipgloss.Color("#ffd700"),
		Header: lipgloss.Color("#0077be"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Graph:  lipgloss.Color("#ffd700"),
		Solved: lipgloss.Color("#00ff88"),
		Paused: lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Wire:   lipgloss.Color("#feca57"),
		Active: lipgloss.Color("#ff6b6b"),
		Header: lipgloss.Color("#ff9ff3"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Graph:  lipgloss.Color("#ff6b6b"),
		Solved: lipgloss.Color("#5fd068"),
		Paused: lipgloss.Color("#ffc048"),
	}

	Themes = []Theme{
		ThemeMinimal,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to minimal.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMinimal
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
