package main

import (
	"fmt"
	"io"
	"strings"

	consts "KiskaLE/GestureDrop-Firewall/internal/const"
	"KiskaLE/GestureDrop-Firewall/internal/firewall"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#28A745"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC3545"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#17A2B8"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var separator = strings.Repeat("=", 55)

func printBanner(w io.Writer, title string) {
	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("   %s - %s", consts.AppName, title)))
	fmt.Fprintln(w, separator)
	fmt.Fprintln(w)
}

func printReport(w io.Writer, report *firewall.Report) {
	for _, res := range report.Results {
		status := okStyle.Render("✓ ADDED")
		if !res.Added {
			status = errorStyle.Render("✗ FAILED")
		}
		fmt.Fprintf(w, "   [%s]  %s  port %4d  -  %s\n", status, res.Rule.Label(), res.Rule.Port, res.Rule.Description)
	}
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, ok bool, lines ...string) {
	fmt.Fprintln(w, separator)
	for i, line := range lines {
		if i == 0 {
			if ok {
				line = okStyle.Render(line)
			} else {
				line = warnStyle.Render(line)
			}
		}
		fmt.Fprintln(w, "   "+line)
	}
	fmt.Fprintln(w, separator)
}
