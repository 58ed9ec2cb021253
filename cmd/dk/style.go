package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/daykeep/daykeep/plan"
)

var (
	pendingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	inProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	completedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	skippedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	highPriorityStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mediumPriorityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	lowPriorityStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func styleStatus(s plan.Status) string {
	switch s {
	case plan.StatusInProgress:
		return inProgressStyle.Render(string(s))
	case plan.StatusCompleted:
		return completedStyle.Render(string(s))
	case plan.StatusSkipped:
		return skippedStyle.Render(string(s))
	default:
		return pendingStyle.Render(string(s))
	}
}

func stylePriority(p plan.Priority) string {
	switch p {
	case plan.PriorityHigh:
		return highPriorityStyle.Render(string(p))
	case plan.PriorityLow:
		return lowPriorityStyle.Render(string(p))
	default:
		return mediumPriorityStyle.Render(string(p))
	}
}
