// Copyright 2026 The Places Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"
	"golang.org/x/term"
)

// getColorWriter returns a colorprofile.Writer configured for the app's environment.
// In production mode, ANSI colors are stripped. In development, colors are
// downsampled to what the terminal supports.
func (a *App) getColorWriter(w io.Writer) *colorprofile.Writer {
	cpw := colorprofile.NewWriter(w, os.Environ())
	if a.config.environment == EnvironmentProduction {
		cpw.Profile = colorprofile.NoTTY
	}
	return cpw
}

// PrintBanner prints the startup banner to w: the service name as ASCII
// art, service metadata, enabled integrations and, in development, the
// route table.
func (a *App) PrintBanner(w io.Writer) {
	cw := a.getColorWriter(w)

	asciiLines := figure.NewFigure(a.config.serviceName, "", false).Slicify()

	gradientColors := []string{"10", "11"} // Green, Yellow
	if a.config.environment == EnvironmentDevelopment {
		gradientColors = []string{"12", "14", "10", "11"} // Blue, Cyan, Green, Yellow
	}

	var styledArt strings.Builder
	for _, line := range asciiLines {
		if strings.TrimSpace(line) == "" {
			_, _ = styledArt.WriteString("\n")
			continue
		}
		for i, char := range line {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(gradientColors[i%len(gradientColors)])).
				Bold(true)
			_, _ = styledArt.WriteString(style.Render(string(char)))
		}
		_, _ = styledArt.WriteString("\n")
	}

	categoryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Width(14).
		PaddingLeft(2).
		Align(lipgloss.Left)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)

	disabledStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	line := func(label, value string, color string) string {
		return labelStyle.Render(label) + "  " + valueStyle.Foreground(lipgloss.Color(color)).Render(value) + "\n"
	}

	var output strings.Builder

	// === Service Section ===
	_, _ = output.WriteString(categoryStyle.Render("Service") + "\n")
	_, _ = output.WriteString(line("Version:", a.config.serviceVersion, "14"))
	_, _ = output.WriteString(line("Environment:", a.config.environment, "11"))
	_, _ = output.WriteString(line("Mounted at:", a.config.selector, "10"))
	if base := a.router.Base(); base != "" {
		_, _ = output.WriteString(line("Base:", base, "10"))
	}

	// === Integrations Section ===
	_, _ = output.WriteString("\n" + categoryStyle.Render("Integrations") + "\n")
	if m, ok := a.Maps(); ok {
		_, _ = output.WriteString(line("Maps:", fmt.Sprintf("Yandex %s (%s)", m.Version, m.Lang), "12"))
	} else {
		_, _ = output.WriteString(labelStyle.Render("Maps:") + "  " + disabledStyle.Render("Disabled") + "\n")
	}
	if a.metrics != nil {
		_, _ = output.WriteString(line("Metrics:", "Prometheus", "13"))
	} else {
		_, _ = output.WriteString(labelStyle.Render("Metrics:") + "  " + disabledStyle.Render("Disabled") + "\n")
	}

	_, _ = fmt.Fprintln(cw)
	_, _ = fmt.Fprint(cw, styledArt.String())
	_, _ = fmt.Fprintln(cw)
	_, _ = fmt.Fprint(cw, output.String())

	if a.config.environment == EnvironmentDevelopment && a.router.Table().Len() > 0 {
		_, _ = fmt.Fprintln(cw)
		a.renderRoutesTable(cw, 80)
	}

	_, _ = fmt.Fprintln(cw)
}

// renderRoutesTable renders the route table to w.
// width is the preferred table width (80 for the banner, 120 standalone).
func (a *App) renderRoutesTable(w io.Writer, width int) {
	routes := a.router.Table().Routes()
	if len(routes) == 0 {
		return
	}

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)  // Green
	paramStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true) // Orange

	useColors := a.config.environment == EnvironmentDevelopment

	rows := make([][]string, 0, len(routes))
	maxNameWidth := len("Name")
	maxPathWidth := len("Path")
	maxParamsWidth := len("Params")

	for _, rec := range routes {
		name := rec.Name()
		params := strings.Join(rec.ParamNames(), ", ")
		if params == "" {
			params = "-"
		}

		maxNameWidth = max(maxNameWidth, len(name))
		maxPathWidth = max(maxPathWidth, len(rec.Path()))
		maxParamsWidth = max(maxParamsWidth, len(params))

		if useColors {
			name = nameStyle.Render(name)
			if params != "-" {
				params = paramStyle.Render(params)
			}
		}

		rows = append(rows, []string{strconv.Itoa(rec.Index()), name, rec.Path(), params})
	}

	// borders (2) + separators (3) + padding (8) + content
	minWidth := 2 + 3 + 8 + len("#") + maxNameWidth + maxPathWidth + maxParamsWidth

	terminalWidth := width
	if file, ok := w.(*os.File); ok {
		if termWidth, _, err := getTerminalSize(file); err == nil && termWidth > 0 {
			terminalWidth = termWidth
		}
	}

	tableWidth := max(minWidth, width)
	if terminalWidth > 0 {
		tableWidth = min(tableWidth, terminalWidth)
	}
	tableWidth = max(40, tableWidth)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(func() lipgloss.Style {
			if useColors {
				return lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
			}
			return lipgloss.NewStyle()
		}()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().
				Align(lipgloss.Left).
				Padding(0, 1)
			if row == table.HeaderRow && useColors {
				style = style.
					Bold(true).
					Foreground(lipgloss.Color("230"))
			}
			return style
		}).
		Headers("#", "Name", "Path", "Params").
		Rows(rows...).
		Width(tableWidth)

	_, _ = fmt.Fprintln(w, t.Render())
}

// getTerminalSize returns the size of the terminal behind file, or an error
// when file is not a terminal (pipes, redirects).
func getTerminalSize(file *os.File) (int, int, error) {
	if file == nil {
		return 0, 0, fmt.Errorf("file is nil")
	}

	width, height, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("unable to get terminal size: %w", err)
	}
	return width, height, nil
}

// PrintRoutes prints the route table to w in declaration order, which is
// also match order. Colors are used only in development and are
// downsampled to the terminal's capabilities.
//
// Example output:
//
//	╭───┬──────────────┬────────────┬────────╮
//	│ # │ Name         │ Path       │ Params │
//	├───┼──────────────┼────────────┼────────┤
//	│ 0 │ Auth         │ /          │ -      │
//	│ 3 │ PlaceDetails │ /place/:id │ id     │
//	╰───┴──────────────┴────────────┴────────╯
func (a *App) PrintRoutes(w io.Writer) {
	if a.router.Table().Len() == 0 {
		_, _ = fmt.Fprintln(w, "No routes registered")
		return
	}
	a.renderRoutesTable(a.getColorWriter(w), 120)
}
