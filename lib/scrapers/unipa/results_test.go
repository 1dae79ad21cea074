package unipa

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<table class="normal">
<tr><th>No.</th><th>学期</th><th>形態</th><th>曜日時限</th><th>単位</th><th>科目</th><th>担当</th></tr>
<tr>
  <td>1</td><td>前期</td><td>講義</td>
  <td>
    月1
  </td>
  <td>2</td><td>プログラミング基礎</td><td>山田 太郎</td>
</tr>
<tr><td colspan="7">─ コンピュータサイエンス学部 ─</td></tr>
<tr>
  <td>2</td><td>前期</td><td>講義</td><td>火2</td><td>2</td><td></td><td>未定</td>
</tr>
<tr>
  <td>3</td><td>後期</td><td>演習</td>
  <td>水3・
水4</td>
  <td>2</td><td>データベース演習</td><td>佐藤 花子</td>
</tr>
</table>
</body></html>`

func TestParseResults(t *testing.T) {
	rows, err := ParseResults(resultsPage, "2025", "コンピュータサイエンス学部")
	require.NoError(t, err)

	diff := cmp.Diff([]Row{
		{
			Year:       "2025",
			Department: "コンピュータサイエンス学部",
			Subject:    "プログラミング基礎",
			Teacher:    "山田 太郎",
			Period:     "月1",
		},
		{
			Year:       "2025",
			Department: "コンピュータサイエンス学部",
			Subject:    "データベース演習",
			Teacher:    "佐藤 花子",
			Period:     "水3・水4",
		},
	}, rows)
	require.Empty(t, diff)
}

func TestParseResultsFallsBackToPlainTables(t *testing.T) {
	page := `<html><body>
<table>
<tbody>
<tr><td>1</td><td>前期</td><td>講義</td><td>金5</td><td>2</td><td>情報数学</td><td>田中</td></tr>
</tbody>
</table>
</body></html>`

	rows, err := ParseResults(page, "2024", "指示なし")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "情報数学", rows[0].Subject)
	require.Equal(t, "金5", rows[0].Period)
	require.Equal(t, "指示なし", rows[0].Department)
}

func TestParseResultsEmptyPage(t *testing.T) {
	rows, err := ParseResults(`<html><body><p>該当するデータはありません。</p></body></html>`, "2025", "指示なし")
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestParseResultsSkipsShortAndBlankRows(t *testing.T) {
	page := `<html><body>
<table class="normal">
<tr><td>ページ 1/1</td></tr>
<tr><td>1</td><td>a</td><td>b</td><td>c</td><td>d</td><td>  </td><td>e</td></tr>
</table>
</body></html>`

	rows, err := ParseResults(page, "2025", "指示なし")
	require.NoError(t, err)
	require.Empty(t, rows)
}
