package styles

const (
	CursorIcon  string = "▶"
	CheckIcon   string = "✓"
	ErrorIcon   string = "✗"
	WarningIcon string = "⚠"
)
