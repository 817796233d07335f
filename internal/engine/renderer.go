package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/glamour"
)

// Cached glamour renderer to avoid recreation on every render call.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
	rendererMu          sync.Mutex
)

// RenderedPage holds the final terminal-ready output.
type RenderedPage struct {
	Title   string
	Content string // styled terminal text
	Links   []Link
}

// Render converts an Article's HTML content into styled terminal text,
// numbering links along the way.
func Render(article *Article, width int) *RenderedPage {
	if width <= 0 {
		width = 80
	}

	// Constrain content width for readability.
	contentWidth := width - 4
	if contentWidth > 100 {
		contentWidth = 100
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return &RenderedPage{
			Title:   article.Title,
			Content: article.TextContent,
		}
	}

	conv := &mdConverter{}

	var md strings.Builder
	if article.Title != "" {
		md.WriteString("# " + article.Title + "\n\n")
	}
	if article.Byline != "" {
		md.WriteString("*" + article.Byline + "*\n\n")
	}
	md.WriteString("---\n\n")

	doc.Find("body").Children().Each(func(i int, s *goquery.Selection) {
		md.WriteString(conv.convertNode(s, 0))
	})

	rendered, glamErr := renderWithGlamour(md.String(), contentWidth)
	if glamErr != nil {
		// Fallback: show the raw markdown.
		rendered = md.String()
	}

	return &RenderedPage{
		Title:   article.Title,
		Content: rendered,
		Links:   conv.links,
	}
}

// renderWithGlamour renders markdown into styled terminal output using
// a cached renderer, recreated only when the width changes.
func renderWithGlamour(markdown string, width int) (string, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if cachedRenderer == nil || cachedRendererWidth != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		cachedRenderer = renderer
		cachedRendererWidth = width
	}

	return cachedRenderer.Render(markdown)
}

// mdConverter converts goquery HTML nodes to markdown, assigning an
// index to every hyperlink it encounters.
type mdConverter struct {
	linkIndex int
	links     []Link
}

func (c *mdConverter) convertNode(s *goquery.Selection, depth int) string {
	tag := goquery.NodeName(s)

	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(tag[1] - '0')
		return strings.Repeat("#", level) + " " + cleanText(s.Text()) + "\n\n"
	case "p":
		var sb strings.Builder
		c.convertInlineChildren(s, &sb)
		text := strings.TrimSpace(sb.String())
		if text == "" {
			return ""
		}
		return text + "\n\n"
	case "ul":
		return c.convertList(s, false, depth)
	case "ol":
		return c.convertList(s, true, depth)
	case "blockquote":
		var out strings.Builder
		for _, line := range strings.Split(cleanText(s.Text()), "\n") {
			out.WriteString("> " + strings.TrimSpace(line) + "\n")
		}
		return out.String() + "\n"
	case "pre":
		lang := ""
		if code := s.Find("code"); code.Length() > 0 {
			if class, ok := code.Attr("class"); ok {
				lang = strings.TrimPrefix(class, "language-")
			}
		}
		return "```" + lang + "\n" + strings.Trim(s.Text(), "\n") + "\n```\n\n"
	case "img":
		alt := s.AttrOr("alt", "image")
		return fmt.Sprintf("*[%s]*\n\n", alt)
	case "hr":
		return "---\n\n"
	case "table":
		return c.convertTable(s)
	case "div", "section", "article", "main", "figure", "span":
		var sb strings.Builder
		if s.Children().Length() == 0 {
			text := strings.TrimSpace(s.Text())
			if text != "" {
				sb.WriteString(text + "\n\n")
			}
			return sb.String()
		}
		s.Children().Each(func(i int, child *goquery.Selection) {
			sb.WriteString(c.convertNode(child, depth))
		})
		return sb.String()
	case "a":
		return c.convertLink(s) + "\n\n"
	default:
		// Unknown block: recurse into children if any, else emit text.
		if s.Children().Length() > 0 {
			var sb strings.Builder
			s.Children().Each(func(i int, child *goquery.Selection) {
				sb.WriteString(c.convertNode(child, depth))
			})
			return sb.String()
		}
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return ""
		}
		return text + "\n\n"
	}
}

func (c *mdConverter) convertInlineChildren(s *goquery.Selection, sb *strings.Builder) {
	s.Contents().Each(func(i int, node *goquery.Selection) {
		switch goquery.NodeName(node) {
		case "#text":
			sb.WriteString(collapseSpace(node.Text()))
		case "a":
			sb.WriteString(c.convertLink(node))
		case "strong", "b":
			sb.WriteString("**" + cleanText(node.Text()) + "**")
		case "em", "i":
			sb.WriteString("*" + cleanText(node.Text()) + "*")
		case "code":
			sb.WriteString("`" + node.Text() + "`")
		case "br":
			sb.WriteString("\n")
		default:
			sb.WriteString(collapseSpace(node.Text()))
		}
	})
}

func (c *mdConverter) convertLink(s *goquery.Selection) string {
	text := cleanText(s.Text())
	href, ok := s.Attr("href")
	if !ok || href == "" || text == "" {
		return text
	}
	c.linkIndex++
	c.links = append(c.links, Link{Index: c.linkIndex, Text: text, URL: href})
	return fmt.Sprintf("%s [%d]", text, c.linkIndex)
}

func (c *mdConverter) convertList(s *goquery.Selection, ordered bool, depth int) string {
	var sb strings.Builder
	indent := strings.Repeat("  ", depth)
	s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		marker := "-"
		if ordered {
			marker = fmt.Sprintf("%d.", i+1)
		}
		var item strings.Builder
		c.convertInlineChildren(li, &item)
		sb.WriteString(fmt.Sprintf("%s%s %s\n", indent, marker, strings.TrimSpace(item.String())))
		li.ChildrenFiltered("ul, ol").Each(func(j int, nested *goquery.Selection) {
			sb.WriteString(c.convertList(nested, goquery.NodeName(nested) == "ol", depth+1))
		})
	})
	if depth == 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}

func (c *mdConverter) convertTable(s *goquery.Selection) string {
	var sb strings.Builder
	rows := 0
	s.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, cleanText(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		if rows == 0 {
			seps := make([]string, len(cells))
			for k := range seps {
				seps[k] = "---"
			}
			sb.WriteString("| " + strings.Join(seps, " | ") + " |\n")
		}
		rows++
	})
	if rows == 0 {
		return ""
	}
	return sb.String() + "\n"
}

func cleanText(s string) string {
	return strings.TrimSpace(collapseSpace(s))
}

// collapseSpace squeezes runs of whitespace to single spaces while
// preserving a boundary space, so inline elements don't glue together.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if strings.ContainsAny(s, " \t\n") {
			return " "
		}
		return ""
	}
	out := strings.Join(fields, " ")
	if isSpaceByte(s[0]) {
		out = " " + out
	}
	if isSpaceByte(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
