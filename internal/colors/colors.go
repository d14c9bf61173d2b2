package colors

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 16-color indices)
var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Main colors for messages
func Error(text string) string {
	return errorStyle.Render(text)
}

func Success(text string) string {
	return successStyle.Render(text)
}

func Warning(text string) string {
	return warningStyle.Render(text)
}

func Info(text string) string {
	return infoStyle.Render(text)
}

// Additional colors for elements
func Dim(text string) string {
	return dimStyle.Render(text)
}

// Check if terminal supports colors
func SupportsColors() bool {
	// Check NO_COLOR environment variable
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check if stdout is connected to terminal
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Safe color output (disables colors if not supported)
func SafeColor(text string, colorFunc func(string) string) string {
	if SupportsColors() {
		return colorFunc(text)
	}
	return text
}
