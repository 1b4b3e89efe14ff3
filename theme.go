package toolrun

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values. A negative
// index means no color.
type Theme struct {
	Prompt   int // Prompt label and user text accent
	ToolCall int // Tool call notices
	Warning  int // Warning notices
	Error    int // Error messages
	Success  int // Success indicator before the answer
	Muted    int // Status line, argument previews
	Accent   int // Headings, links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Prompt:   4,
		ToolCall: 6,
		Warning:  3,
		Error:    1,
		Success:  2,
		Muted:    8,
		Accent:   5,
	}
}
