package main

import "github.com/charmbracelet/lipgloss"

// Centralized style definitions for terminal output.
var (
	// Spinner / animation styles.
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")) // magenta

	// Verbose report style.
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray/dim

	// Error line style.
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
)
