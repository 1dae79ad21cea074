package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseCell(t *testing.T, markup string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc.Find("td")
}

func TestGetText(t *testing.T) {
	cell := parseCell(t, `<table><tr><td> <a href="#">線形代数</a><span>I</span> </td></tr></table>`)
	require.Equal(t, " 線形代数I ", GetText(cell.Get(0)))
}

func TestTrimText(t *testing.T) {
	testCases := []struct {
		markup   string
		expected string
	}{
		{
			markup:   "<table><tr><td>\n  基礎 数学\n</td></tr></table>",
			expected: "基礎 数学",
		},
		{
			markup:   "<table><tr><td><b>山田</b> 太郎 </td></tr></table>",
			expected: "山田 太郎",
		},
		{
			markup:   "<table><tr><td>   </td></tr></table>",
			expected: "",
		},
	}

	for _, test := range testCases {
		cell := parseCell(t, test.markup)
		require.Equal(t, test.expected, TrimText(cell.Get(0)))
	}
}

func TestFlattenText(t *testing.T) {
	cell := parseCell(t, "<table><tr><td>\n月曜日\n1限\n</td></tr></table>")
	require.Equal(t, "月曜日1限", FlattenText(cell.Get(0)))
}
