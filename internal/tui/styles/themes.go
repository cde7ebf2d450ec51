package styles

// NewConfedTheme creates the default theme with the fire gradient
func NewConfedTheme() *Theme {
	return &Theme{
		Name:         "confed",
		IsDark:       true,
		GlamourStyle: "dracula",

		Primary:   ParseHex("#C0392B"), // Fire red
		Secondary: ParseHex("#F4D03F"), // Bright yellow
		Accent:    ParseHex("#F39C12"), // Golden orange

		FgBase:     ParseHex("#f5f6fa"),
		FgMuted:    ParseHex("#a0a0a0"),
		FgSubtle:   ParseHex("#6F6F70"),
		FgSelected: ParseHex("#ffffff"),

		Success: ParseHex("#27AE60"),
		Error:   ParseHex("#E74C3C"),
		Warning: ParseHex("#F39C12"),
	}
}

// NewDarkTheme creates a professional dark theme
func NewDarkTheme() *Theme {
	return &Theme{
		Name:         "dark",
		IsDark:       true,
		GlamourStyle: "dark",

		Primary:   ParseHex("#60a5fa"), // Sky blue
		Secondary: ParseHex("#a78bfa"), // Violet
		Accent:    ParseHex("#38bdf8"),

		FgBase:     ParseHex("#e5e7eb"),
		FgMuted:    ParseHex("#9ca3af"),
		FgSubtle:   ParseHex("#6b7280"),
		FgSelected: ParseHex("#ffffff"),

		Success: ParseHex("#34d399"),
		Error:   ParseHex("#f87171"),
		Warning: ParseHex("#fbbf24"),
	}
}

// NewLightTheme creates a theme for light terminals
func NewLightTheme() *Theme {
	return &Theme{
		Name:         "light",
		IsDark:       false,
		GlamourStyle: "light",

		Primary:   ParseHex("#1d4ed8"),
		Secondary: ParseHex("#7c3aed"),
		Accent:    ParseHex("#b45309"),

		FgBase:     ParseHex("#1f2937"),
		FgMuted:    ParseHex("#4b5563"),
		FgSubtle:   ParseHex("#6b7280"),
		FgSelected: ParseHex("#000000"),

		Success: ParseHex("#15803d"),
		Error:   ParseHex("#b91c1c"),
		Warning: ParseHex("#b45309"),
	}
}
