package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/ui/components"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

type pdfWrittenMsg struct {
	Path string
	Err  error
}

type pdfInfo struct {
	m      material.SavedMaterial
	size   int
	err    error
	status string
}

func newPDF(m material.SavedMaterial) *pdfInfo {
	p := &pdfInfo{m: m}
	data, err := material.DecodePDF(m)
	p.size, p.err = len(data), err
	return p
}

func (p *pdfInfo) hints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "W", Description: "Write to current folder"}}
}

func (p *pdfInfo) update(msg tea.KeyMsg) tea.Cmd {
	if k := msg.String(); (k == "w" || k == "W") && p.err == nil {
		m := p.m
		return func() tea.Msg {
			path, err := writePDF(m, ".")
			return pdfWrittenMsg{Path: path, Err: err}
		}
	}
	return nil
}

// writePDF saves m's bytes under dir, named after its title.
func writePDF(m material.SavedMaterial, dir string) (string, error) {
	data, err := material.DecodePDF(m)
	if err != nil {
		return "", err
	}
	name := filepath.Base(m.Title)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (p *pdfInfo) written(msg pdfWrittenMsg) {
	if msg.Err != nil {
		p.status = theme.ErrorText.Render("Could not write the file.")
		return
	}
	p.status = lipgloss.NewStyle().Foreground(theme.Success).Render("Saved to " + msg.Path)
}

func (p *pdfInfo) view(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▤ "+p.m.Title) + "\n\n")
	if p.err != nil {
		b.WriteString(theme.ErrorText.Render("This file is damaged and cannot be opened."))
		return components.Centered(components.Card(b.String(), cw), width, height)
	}
	rows := [][2]string{
		{"Subject", p.m.SubjectName},
		{"Topic", p.m.Topic},
		{"Size", humanize.IBytes(uint64(p.size))},
		{"Saved", humanize.Time(p.m.Timestamp)},
	}
	for _, r := range rows {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(10).Render(r[0]) + theme.Body.Render(r[1]) + "\n")
	}
	b.WriteString("\n" + theme.Hint.Render("PDFs open in your system viewer. Press W to write a copy here."))
	if p.status != "" {
		b.WriteString("\n\n" + p.status)
	}
	return components.Centered(components.Card(b.String(), cw), width, height)
}
