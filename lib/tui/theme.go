// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/hostel/lib/schema"
)

// Theme defines the color palette for the hostel terminal surfaces.
// All colors use lipgloss ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Ticket status colors.
	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusResolved   lipgloss.Color

	// Student state.
	Active   lipgloss.Color
	Inactive lipgloss.Color

	// Shell messages.
	Success lipgloss.Color
	Warning lipgloss.Color
	Failure lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Fuzzy filter match highlighting.
	MatchForeground lipgloss.Color
}

// StatusColor returns the color for a ticket status, or FaintText for
// anything unrecognized.
func (theme Theme) StatusColor(status schema.TicketStatus) lipgloss.Color {
	switch status {
	case schema.StatusOpen:
		return theme.StatusOpen
	case schema.StatusInProgress:
		return theme.StatusInProgress
	case schema.StatusResolved:
		return theme.StatusResolved
	default:
		return theme.FaintText
	}
}

// ActiveColor returns the color for a student's active flag.
func (theme Theme) ActiveColor(active bool) lipgloss.Color {
	if active {
		return theme.Active
	}
	return theme.Inactive
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusOpen:       lipgloss.Color("114"), // green
	StatusInProgress: lipgloss.Color("220"), // amber
	StatusResolved:   lipgloss.Color("245"), // gray

	Active:   lipgloss.Color("114"),
	Inactive: lipgloss.Color("240"),

	Success: lipgloss.Color("114"),
	Warning: lipgloss.Color("208"), // orange
	Failure: lipgloss.Color("196"), // red

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	MatchForeground: lipgloss.Color("75"), // blue
}
