package markdown

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/toolrun"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const minItemWidth = 10

type renderer struct {
	width  int
	src    []byte
	out    strings.Builder
	md     goldmark.Markdown
	styles styles
}

type styles struct {
	heading lipgloss.Style
	bold    lipgloss.Style
	italic  lipgloss.Style
	strike  lipgloss.Style
	code    lipgloss.Style
	link    lipgloss.Style
	muted   lipgloss.Style
	quote   lipgloss.Style
}

func newRenderer(theme toolrun.Theme, width int) *renderer {
	return &renderer{
		width: width,
		md:    goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify)),
		styles: styles{
			heading: lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
			bold:    lipgloss.NewStyle().Bold(true),
			italic:  lipgloss.NewStyle().Italic(true),
			strike:  lipgloss.NewStyle().Strikethrough(true),
			code:    lipgloss.NewStyle().Foreground(ansiColor(theme.ToolCall)),
			link:    lipgloss.NewStyle().Underline(true),
			muted:   lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
			quote:   lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)),
		},
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *renderer) render(source []byte) string {
	r.src = source
	doc := r.md.Parser().Parse(text.NewReader(source))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		r.block(n, r.width)
		if n.NextSibling() != nil {
			r.out.WriteString("\n")
		}
	}
	return strings.TrimRight(r.out.String(), "\n")
}

// block writes one block node followed by a newline.
func (r *renderer) block(n ast.Node, width int) {
	switch b := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		r.line(wrap(r.inline(b), width))
	case *ast.Heading:
		r.line(wrap(r.styles.heading.Render(r.inline(b)), width))
	case *ast.FencedCodeBlock:
		if lang := string(b.Language(r.src)); lang != "" {
			r.line(r.styles.muted.Render(lang))
		}
		r.code(b.Lines())
	case *ast.CodeBlock:
		r.code(b.Lines())
	case *ast.List:
		r.list(b, 0, width)
	case *ast.Blockquote:
		r.quote(b, width)
	case *ast.ThematicBreak:
		r.line(r.styles.muted.Render(strings.Repeat("─", min(width, defaultWidth))))
	case *ast.HTMLBlock:
		lines := b.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			r.out.Write(seg.Value(r.src))
		}
	case *east.Table:
		r.table(b, width)
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			r.block(c, width)
		}
	}
}

func (r *renderer) line(s string) {
	r.out.WriteString(s)
	r.out.WriteString("\n")
}

func (r *renderer) code(lines *text.Segments) {
	gutter := r.styles.muted.Render("│") + " "
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		r.line(gutter + strings.TrimRight(string(seg.Value(r.src)), "\n"))
	}
}

func (r *renderer) quote(q *ast.Blockquote, width int) {
	inner := &renderer{width: width - 2, src: r.src, md: r.md, styles: r.styles}
	for c := q.FirstChild(); c != nil; c = c.NextSibling() {
		inner.block(c, width-2)
	}
	bar := r.styles.quote.Render("│") + " "
	for _, l := range strings.Split(strings.TrimRight(inner.out.String(), "\n"), "\n") {
		r.line(bar + r.styles.quote.Render(l))
	}
}

func (r *renderer) list(l *ast.List, depth, width int) {
	n := l.Start
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "• "
		if l.IsOrdered() {
			marker = strconv.Itoa(n) + ". "
			n++
		}
		prefix := strings.Repeat("  ", depth) + marker
		var content []string
		flush := func() {
			if len(content) > 0 {
				r.item(prefix, strings.Join(content, " "), width)
				prefix = strings.Repeat(" ", lipgloss.Width(prefix))
				content = nil
			}
		}
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch child := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				content = append(content, r.inline(child))
			case *ast.List:
				flush()
				r.list(child, depth+1, width)
			default:
				flush()
				r.block(child, width)
			}
		}
		flush()
	}
}

// item writes a list item, indenting continuation lines under the text.
func (r *renderer) item(prefix, content string, width int) {
	pad := strings.Repeat(" ", lipgloss.Width(prefix))
	lines := strings.Split(wrap(content, max(width-len(pad), minItemWidth)), "\n")
	for i, l := range lines {
		if i == 0 {
			r.line(prefix + l)
			continue
		}
		r.line(pad + l)
	}
}

func (r *renderer) table(t *east.Table, width int) {
	var headers []string
	var rows [][]string
	for c := t.FirstChild(); c != nil; c = c.NextSibling() {
		var cells []string
		for cell := c.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.inline(cell))
		}
		if _, ok := c.(*east.TableHeader); ok {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.bold.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	if rendered := tbl.String(); lipgloss.Width(rendered) > width {
		tbl = tbl.Width(width)
	}
	r.line(tbl.String())
}

func (r *renderer) inline(n ast.Node) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.span(c, &sb)
	}
	return sb.String()
}

func (r *renderer) span(n ast.Node, sb *strings.Builder) {
	switch s := n.(type) {
	case *ast.Text:
		sb.Write(s.Segment.Value(r.src))
		switch {
		case s.HardLineBreak():
			sb.WriteByte('\n')
		case s.SoftLineBreak():
			sb.WriteByte(' ')
		}
	case *ast.String:
		sb.Write(s.Value)
	case *ast.Emphasis:
		if s.Level == 1 {
			sb.WriteString(r.styles.italic.Render(r.inline(s)))
		} else {
			sb.WriteString(r.styles.bold.Render(r.inline(s)))
		}
	case *east.Strikethrough:
		sb.WriteString(r.styles.strike.Render(r.inline(s)))
	case *ast.CodeSpan:
		sb.WriteString(r.styles.code.Render(r.inline(s)))
	case *ast.Link:
		label := r.inline(s)
		dest := string(s.Destination)
		sb.WriteString(r.styles.link.Render(label))
		if dest != "" && dest != label {
			sb.WriteString(" " + r.styles.muted.Render("("+dest+")"))
		}
	case *ast.AutoLink:
		sb.WriteString(r.styles.link.Render(string(s.URL(r.src))))
	case *ast.Image:
		sb.WriteString(r.styles.link.Render(r.inline(s)))
		sb.WriteString(" " + r.styles.muted.Render("("+string(s.Destination)+")"))
	case *ast.RawHTML:
		for i := 0; i < s.Segments.Len(); i++ {
			seg := s.Segments.At(i)
			sb.Write(seg.Value(r.src))
		}
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			r.span(c, sb)
		}
	}
}

// wrap word-wraps styled text without padding lines to width.
func wrap(s string, width int) string {
	return ansi.Wrap(s, width, "")
}
