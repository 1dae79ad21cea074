package unipa

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"syllabus-scraper/lib/htmlutil"
)

// Row is one syllabus search hit. Year and Department echo the criteria the
// search ran under because the results table itself repeats neither.
type Row struct {
	Year       string
	Department string
	Subject    string
	Teacher    string
	Period     string
}

// Column positions inside a results row. The table has no header ids, only
// a fixed column order shared by every install of the product.
const (
	cellPeriod  = 3
	cellSubject = 5
	cellTeacher = 6
	minCells    = 7
)

// ParseResults pulls the hit rows out of a results page. The product marks
// its results table with the "normal" class; older skins drop the class, so
// any table body is the fallback. Rows that are too short or have no
// subject are furniture (headers, pager rows, section separators) and are
// skipped rather than reported.
func ParseResults(html string, year, department string) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	rows := doc.Find("table.normal tr")
	if rows.Length() == 0 {
		rows = doc.Find("table tbody tr")
	}

	out := []Row{}
	rows.Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < minCells {
			return
		}
		subject := htmlutil.TrimText(cells.Get(cellSubject))
		if subject == "" {
			return
		}
		out = append(out, Row{
			Year:       year,
			Department: department,
			Subject:    subject,
			Teacher:    htmlutil.TrimText(cells.Get(cellTeacher)),
			Period:     htmlutil.FlattenText(cells.Get(cellPeriod)),
		})
	})
	return out, nil
}
