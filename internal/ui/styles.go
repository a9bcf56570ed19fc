package ui

import "github.com/charmbracelet/lipgloss"

// This file centralizes the lipgloss styles used by the console client.

var (
	// Banner and prompts
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")). // Brand Color
			Bold(true).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	// Choice grid
	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // Cyan/Teal

	controlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	// Notices
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")). // Green
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	headerCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)
)

// Title renders the console banner.
func Title(text string) string { return titleStyle.Render(text) }

// Prompt renders the wizard's question line.
func Prompt(text string) string { return promptStyle.Render(text) }

// Success renders a confirmation notice.
func Success(text string) string { return successStyle.Render(text) }

// Error renders a failure notice.
func Error(text string) string { return errorStyle.Render(text) }

// Faint renders de-emphasized helper text.
func Faint(text string) string { return faintStyle.Render(text) }
