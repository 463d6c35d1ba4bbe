package ingest

import (
	"io"

	"github.com/PuerkitoBio/goquery"

	"draftboard-engine/internal/value"
)

// ParseHTMLTables extracts rows from every draft table on a page. A table
// qualifies when its header carries "Round" and "Player" or "Name".
// Repeated header rows inside the body are skipped.
func ParseHTMLTables(r io.Reader) ([]RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	out := []RawRow{}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return
		}

		headRow := table.Find("thead tr").Last()
		if headRow.Length() == 0 {
			headRow = rows.First()
		}
		header := cellTexts(headRow)
		for i, h := range header {
			header[i] = HeaderKey(h)
		}
		if !isDraftHeader(header) {
			return
		}

		rows.Each(func(_ int, tr *goquery.Selection) {
			if tr.Closest("thead").Length() > 0 || tr.IsSelection(headRow) {
				return
			}
			cells := cellTexts(tr)
			if blankRow(cells) || repeatsHeader(header, cells) {
				return
			}
			out = append(out, rowFrom(header, cells))
		})
	})
	return out, nil
}

func cellTexts(tr *goquery.Selection) []string {
	var cells []string
	tr.Find("th, td").Each(func(_ int, c *goquery.Selection) {
		cells = append(cells, value.CleanText(c.Text()))
	})
	return cells
}

func isDraftHeader(header []string) bool {
	var round, name bool
	for _, h := range header {
		switch h {
		case "round", "rnd":
			round = true
		case "player", "name":
			name = true
		}
	}
	return round && name
}

func repeatsHeader(header, cells []string) bool {
	if len(cells) == 0 || len(header) == 0 {
		return false
	}
	return HeaderKey(cells[0]) == header[0]
}
