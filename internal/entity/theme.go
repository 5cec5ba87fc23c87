package entity

const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	ThemeRetro  = "retro"
	ThemeOcean  = "ocean"
	ThemeSunset = "sunset"
	ThemeForest = "forest"

	DefaultTheme = ThemeDark
)

// Themes is the allow-list of display themes a client may select.
var Themes = []string{ThemeDark, ThemeLight, ThemeRetro, ThemeOcean, ThemeSunset, ThemeForest}

// IsValidTheme reports whether the value is a recognized theme.
func IsValidTheme(theme string) bool {
	for _, known := range Themes {
		if theme == known {
			return true
		}
	}

	return false
}
