package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/ui/theme"
)

// PreviewPane shows the query of a saved console or the structure of a table
type PreviewPane struct {
	Width   int
	Height  int
	Title   string
	Content string // Raw content, what gets copied
	Focused bool

	scrollY      int
	contentLines []string
	highlight    bool

	Theme     theme.Theme
	style     lipgloss.Style
	lexer     chroma.Lexer
	formatter chroma.Formatter
	syntax    *chroma.Style
}

// NewPreviewPane creates a new preview pane
func NewPreviewPane(th theme.Theme) *PreviewPane {
	p := &PreviewPane{
		Width:  80,
		Height: 20,
		Theme:  th,
		style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border).
			Padding(0, 1),
	}

	p.syntax = styles.Get(th.SyntaxStyle)
	if p.syntax == nil {
		p.syntax = styles.Fallback
	}
	p.formatter = formatters.Get("terminal256")
	if p.formatter == nil {
		p.formatter = formatters.Fallback
	}
	p.lexer = lexers.Get("postgresql")
	if p.lexer == nil {
		p.lexer = lexers.Get("sql")
	}
	if p.lexer != nil {
		p.lexer = chroma.Coalesce(p.lexer)
	}
	return p
}

// ShowConsole previews the query of a saved console
func (p *PreviewPane) ShowConsole(c models.Console) {
	p.set(c.Name, c.DDL, true)
}

// ShowTable previews the columns and constraints of a table
func (p *PreviewPane) ShowTable(title string, columns []models.ColumnInfo, constraints []models.Constraint) {
	nameWidth := 4
	for _, col := range columns {
		if w := runewidth.StringWidth(col.Name); w > nameWidth {
			nameWidth = w
		}
	}

	var b strings.Builder
	for _, col := range columns {
		b.WriteString(runewidth.FillRight(col.Name, nameWidth+2))
		b.WriteString(col.DataType)
		if !col.Nullable {
			b.WriteString(" NOT NULL")
		}
		if col.PrimaryKey {
			b.WriteString(" PK")
		}
		if col.Default != nil {
			b.WriteString(" DEFAULT " + *col.Default)
		}
		b.WriteString("\n")
	}
	if len(constraints) > 0 {
		b.WriteString("\n")
		for _, con := range constraints {
			fmt.Fprintf(&b, "%s  %s\n", con.Name, con.Definition)
		}
	}

	p.set(title, strings.TrimSuffix(b.String(), "\n"), false)
}

// Clear empties the pane
func (p *PreviewPane) Clear() {
	p.set("", "", false)
}

func (p *PreviewPane) set(title, content string, highlight bool) {
	p.Title = title
	p.Content = content
	p.highlight = highlight
	p.scrollY = 0
	p.contentLines = nil
}

// formatContent wraps and highlights the raw content
func (p *PreviewPane) formatContent() {
	if p.Content == "" {
		p.contentLines = []string{}
		return
	}

	contentWidth := p.Width - p.style.GetHorizontalFrameSize()
	if contentWidth < 10 {
		contentWidth = 10
	}

	lines := wrapText(p.Content, contentWidth)
	if p.highlight {
		for i, line := range lines {
			lines[i] = p.highlightLine(line)
		}
	}
	p.contentLines = lines
}

// highlightLine applies syntax highlighting to a single line
func (p *PreviewPane) highlightLine(line string) string {
	if line == "" || p.lexer == nil {
		return line
	}

	iterator, err := p.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf bytes.Buffer
	if err := p.formatter.Format(&buf, p.syntax, iterator); err != nil {
		return line
	}

	// chroma ends its output with a newline
	return strings.TrimSuffix(buf.String(), "\n")
}

// wrapText wraps text to fit within maxWidth
func wrapText(text string, maxWidth int) []string {
	var result []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(line, "\t", "    ")
		if runewidth.StringWidth(line) <= maxWidth {
			result = append(result, line)
			continue
		}

		var current strings.Builder
		currentWidth := 0
		for _, r := range line {
			rWidth := runewidth.RuneWidth(r)
			if currentWidth+rWidth > maxWidth {
				result = append(result, current.String())
				current.Reset()
				currentWidth = 0
			}
			current.WriteRune(r)
			currentWidth += rWidth
		}
		if current.Len() > 0 {
			result = append(result, current.String())
		}
	}

	return result
}

func (p *PreviewPane) visibleLines() int {
	// Header takes one row
	n := p.Height - p.style.GetVerticalFrameSize() - 1
	if n < 1 {
		n = 1
	}
	return n
}

// ScrollUp scrolls content up
func (p *PreviewPane) ScrollUp() {
	if p.scrollY > 0 {
		p.scrollY--
	}
}

// ScrollDown scrolls content down
func (p *PreviewPane) ScrollDown() {
	if p.contentLines == nil {
		p.formatContent()
	}
	maxScroll := len(p.contentLines) - p.visibleLines()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if p.scrollY < maxScroll {
		p.scrollY++
	}
}

// CopyContent copies the raw content to the clipboard
func (p *PreviewPane) CopyContent() error {
	return clipboard.WriteAll(p.Content)
}

// View renders the preview pane
func (p *PreviewPane) View() string {
	if p.contentLines == nil {
		p.formatContent()
	}

	contentWidth := p.Width - p.style.GetHorizontalFrameSize()
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := p.Title
	if title == "" {
		title = "Preview"
	}
	header := lipgloss.NewStyle().
		Foreground(p.Theme.Info).
		Bold(true).
		Render(runewidth.Truncate(title, contentWidth, "…"))

	parts := []string{header}
	end := p.scrollY + p.visibleLines()
	if end > len(p.contentLines) {
		end = len(p.contentLines)
	}
	plain := lipgloss.NewStyle().Foreground(p.Theme.Foreground)
	for _, line := range p.contentLines[p.scrollY:end] {
		if !p.highlight {
			line = plain.Render(line)
		}
		parts = append(parts, line)
	}

	border := p.Theme.Border
	if p.Focused {
		border = p.Theme.BorderFocused
	}
	innerHeight := p.Height - p.style.GetVerticalFrameSize()
	if innerHeight < 1 {
		innerHeight = 1
	}

	return p.style.
		BorderForeground(border).
		Width(p.Width - p.style.GetHorizontalBorderSize()).
		Height(innerHeight).
		MaxHeight(p.Height).
		Render(strings.Join(parts, "\n"))
}
