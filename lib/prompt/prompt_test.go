package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain line",
			input: "B12345\n",
			want:  "B12345",
		},
		{
			name:  "windows line ending",
			input: "B12345\r\n",
			want:  "B12345",
		},
		{
			name:  "inner spaces survive",
			input: "山田 太郎\n",
			want:  "山田 太郎",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(testCase.input), &out)

			got, err := p.Line("学籍番号: ")
			require.NoError(t, err)
			require.Equal(t, testCase.want, got)
			require.Contains(t, out.String(), "学籍番号: ")
		})
	}
}

func TestLineEOF(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.Line("? ")
	require.Error(t, err)
}

func TestPasswordFallsBackToPlainLine(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("hunter2\n"), &out)

	got, err := p.Password("パスワード: ")
	require.NoError(t, err)
	require.Equal(t, "hunter2", got)
}

func TestYear(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "four digits accepted",
			input: "2026\n",
			want:  "2026",
		},
		{
			name:  "empty means default",
			input: "\n",
			want:  DefaultYear,
		},
		{
			name:  "junk reprompts until valid",
			input: "abc\n12345\n202\n2024\n",
			want:  "2024",
		},
		{
			name:  "junk then empty means default",
			input: "20 25\n\n",
			want:  DefaultYear,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			p := New(strings.NewReader(testCase.input), &bytes.Buffer{})

			got, err := p.Year()
			require.NoError(t, err)
			require.Equal(t, testCase.want, got)
		})
	}
}

func TestSelectIndex(t *testing.T) {
	options := []string{"指示なし", "八王子", "蒲田"}

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "number picks the option",
			input: "2\n",
			want:  "蒲田",
		},
		{
			name:  "empty picks the first",
			input: "\n",
			want:  "指示なし",
		},
		{
			name:  "out of range reprompts",
			input: "9\n-1\nx\n1\n",
			want:  "八王子",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(testCase.input), &out)

			got, err := p.SelectIndex("キャンパス", options)
			require.NoError(t, err)
			require.Equal(t, testCase.want, got)

			// the menu itself got rendered
			require.Contains(t, out.String(), "八王子")
			require.Contains(t, out.String(), "キャンパス")
		})
	}
}

func TestSelectIndexRejectsEmptyOptions(t *testing.T) {
	p := New(strings.NewReader("\n"), &bytes.Buffer{})
	_, err := p.SelectIndex("学部", nil)
	require.Error(t, err)
}
