package common

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"onca/internal/platform/errors"
)

// ParseHTML builds a goquery document from a decoded response body.
func ParseHTML(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidResponse, "parse html: %v", err)
	}
	return doc, nil
}

// CellTexts returns the trimmed text of every td/th cell in a table row.
func CellTexts(row *goquery.Selection) []string {
	cells := row.Find("td, th")
	out := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		out = append(out, strings.TrimSpace(cell.Text()))
	})
	return out
}

// DataRows returns the rows of table, skipping the first (header) row.
func DataRows(table *goquery.Selection) *goquery.Selection {
	rows := table.Find("tr")
	if rows.Length() < 2 {
		return rows.Slice(0, 0)
	}
	return rows.Slice(1, goquery.ToEnd)
}
