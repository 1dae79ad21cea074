package unipa

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	testCases := []struct {
		name       string
		year       string
		department string
		want       string
	}{
		{
			name:       "plain department",
			year:       "2025",
			department: "コンピュータサイエンス学部",
			want:       "syllabus_2025_コンピュータサイエンス学部_search.csv",
		},
		{
			name:       "slashes and spaces dropped",
			year:       "2024",
			department: "工学部/第一部 昼間",
			want:       "syllabus_2024_工学部第一部昼間_search.csv",
		},
		{
			name:       "unspecified department",
			year:       "2025",
			department: "指示なし",
			want:       "syllabus_2025_指示なし_search.csv",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.want, FileName(testCase.year, testCase.department))
		})
	}
}

func TestWriteCSV(t *testing.T) {
	rows := []Row{
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
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, utf8bom), "csv must lead with a utf-8 byte order mark")

	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(out, utf8bom), "\n"), "\n")
	require.Equal(t, []string{
		"年度,学部,科目名,教員名,曜日時限",
		"2025,コンピュータサイエンス学部,プログラミング基礎,山田 太郎,月1",
		"2025,コンピュータサイエンス学部,データベース演習,佐藤 花子,水3・水4",
	}, lines)
}

func TestWriteCSVEmptyStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	require.Equal(t, utf8bom+"年度,学部,科目名,教員名,曜日時限\n", buf.String())
}

func TestExportFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	rows := []Row{
		{Year: "2025", Department: "指示なし", Subject: "情報数学", Teacher: "田中", Period: "金5"},
	}

	path, err := ExportFile(dir, "2025", "指示なし", rows)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "syllabus_2025_指示なし_search.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte(utf8bom)))
	require.Contains(t, string(data), "情報数学")
}
