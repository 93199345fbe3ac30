// Package styles provides the colour styling for CLI output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by all commands.
var (
	successColour = lipgloss.Color("#A6E3A1") // Green
	warningColour = lipgloss.Color("#F9E2AF") // Yellow
	errorColour   = lipgloss.Color("#F38BA8") // Red
	mutedColour   = lipgloss.Color("#6C7086") // Medium gray
	accentColour  = lipgloss.Color("#06B6D4") // Cyan
)

var (
	createdStyle  = lipgloss.NewStyle().Foreground(successColour).Bold(true)
	updatedStyle  = lipgloss.NewStyle().Foreground(accentColour).Bold(true)
	skippedStyle  = lipgloss.NewStyle().Foreground(mutedColour)
	warnStyle     = lipgloss.NewStyle().Foreground(warningColour)
	errStyle      = lipgloss.NewStyle().Foreground(errorColour).Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(accentColour)
	pathStyle     = lipgloss.NewStyle().Foreground(mutedColour)
)

// Created styles a creation outcome, e.g. "created".
func Created(s string) string { return createdStyle.Render(s) }

// Updated styles a modification outcome.
func Updated(s string) string { return updatedStyle.Render(s) }

// Skipped styles a no-op outcome.
func Skipped(s string) string { return skippedStyle.Render(s) }

// Warn styles a cautionary note.
func Warn(s string) string { return warnStyle.Render(s) }

// Error styles a failure message.
func Error(s string) string { return errStyle.Render(s) }

// Category styles an organiser category label.
func Category(s string) string { return categoryStyle.Render(s) }

// Path styles a vault path.
func Path(s string) string { return pathStyle.Render(s) }
