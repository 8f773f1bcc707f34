package scraper

import (
	"fmt"
	"strings"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/util"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultMaxChars caps the article body handed to the model.
const DefaultMaxChars = 12000

const summaryParagraphs = 3

// Extract pulls the title, a short summary and the readable body out of a
// Wikipedia page. rawHTML is kept verbatim on the returned article.
func Extract(pageURL, rawHTML string, maxChars int) (*domain.Article, error) {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := extractTitle(doc, pageURL)
	content := contentRoot(doc)

	var lines []string
	content.Find("p, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		if line := joinedText(s, " "); line != "" {
			lines = append(lines, line)
		}
	})

	var paragraphs []string
	content.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		paragraphs = append(paragraphs, joinedText(s, " "))
		return i+1 < summaryParagraphs
	})
	summary := strings.Join(paragraphs, "\n")
	if strings.TrimSpace(summary) == "" {
		summary = title
	}

	return &domain.Article{
		URL:     pageURL,
		Title:   title,
		Summary: summary,
		Text:    util.TruncateRunes(strings.Join(lines, "\n"), maxChars),
		RawHTML: rawHTML,
	}, nil
}

func extractTitle(doc *goquery.Document, pageURL string) string {
	if heading := doc.Find("#firstHeading").First(); heading.Length() > 0 {
		if title := joinedText(heading, ""); title != "" {
			return title
		}
	}
	if title := doc.Find("title").First(); title.Length() > 0 {
		if text := strings.TrimSpace(title.Text()); text != "" {
			return text
		}
	}
	return pageURL
}

func contentRoot(doc *goquery.Document) *goquery.Selection {
	if sel := doc.Find("#mw-content-text").First(); sel.Length() > 0 {
		return sel
	}
	if sel := doc.Find("div.content").First(); sel.Length() > 0 {
		return sel
	}
	return doc.Selection
}

// joinedText collects every text node under sel, trims each piece, drops
// empty ones and joins the rest with sep. Script and style bodies are skipped.
func joinedText(sel *goquery.Selection, sep string) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, sep)
}
