// Package parsers provides the source adapters that expose ranking tables
// to the normalizer: HTML documents and spreadsheet workbooks.
package parsers

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

// Source-shape errors.
var (
	ErrNoTable       = errors.New("No table found in HTML content; page may be dynamic (html-table adapter insufficient)")
	ErrNoHeaderCells = errors.New("Table must have header cells (<th>); page may be dynamic (html-table adapter insufficient)")
	ErrNoHeaderRow   = errors.New("No header row found in workbook")
	ErrNoSheet       = errors.New("workbook has no active sheet")
)

// nodeText joins the text nodes under n with single spaces, skipping scripts and styles.
func nodeText(n *html.Node) string {
	var parts []string

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			if text := strings.TrimSpace(node.Data); text != "" {
				parts = append(parts, text)
			}

			return
		case html.ElementNode:
			if node.Data == "script" || node.Data == "style" {
				return
			}
		}

		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}

	walk(n)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
