package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripSpace(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "コンピュータサイエンス学部", expected: "コンピュータサイエンス学部"},
		{input: " 月曜日 1限 ", expected: "月曜日1限"},
		{input: "計算機　科学", expected: "計算機科学"},
		{input: "a b\tc\nd", expected: "abcd"},
		{input: "", expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, StripSpace(test.input))
	}
}

func TestContainsStripped(t *testing.T) {
	testCases := []struct {
		text     string
		target   string
		expected bool
	}{
		{text: "コンピュータ　サイエンス学部", target: "サイエンス学部", expected: true},
		{text: " 指示 なし ", target: "指示なし", expected: true},
		{text: "Literature I", target: "literature", expected: false},
		{text: "月曜日", target: "火曜日", expected: false},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, ContainsStripped(test.text, test.target))
	}
}

func TestClosest(t *testing.T) {
	candidates := []string{"指示なし", "八王子", "蒲田"}

	got, sim := Closest("八王", candidates)
	require.Equal(t, "八王子", got)
	require.Greater(t, sim, 0.5)

	got, sim = Closest("anything", nil)
	require.Equal(t, "", got)
	require.Equal(t, 0.0, sim)
}
