package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeAverageKnownValues(t *testing.T) {
	cases := []struct {
		name    string
		scores  map[string]string
		display string
		value   float64
	}{
		{
			name:    "all tens",
			scores:  map[string]string{"m1": "10", "m2": "10", "m3": "10", "res": "10", "bi": "10", "read": "0"},
			display: "10,0",
			value:   10,
		},
		{
			name:    "empty gradebook",
			scores:  map[string]string{},
			display: "0,0",
			value:   0,
		},
		{
			name:    "bonus is clamped",
			scores:  map[string]string{"m1": "10", "m2": "10", "m3": "10", "res": "10", "bi": "10", "read": "5"},
			display: "10,0",
			value:   10,
		},
		{
			name:    "weighted mix",
			scores:  map[string]string{"m1": "6", "m2": "7", "m3": "8", "res": "6", "bi": "9"},
			display: "7,8",
			value:   7.75,
		},
		{
			name:    "bonus below the cap",
			scores:  map[string]string{"m1": "6", "m2": "6", "m3": "6", "res": "6", "bi": "6", "read": "1.5"},
			display: "7,5",
			value:   7.5,
		},
		{
			name:    "garbage counts as zero",
			scores:  map[string]string{"m1": "abc", "m2": "", "m3": "9", "res": "x", "bi": "6"},
			display: "3,8",
			value:   3.75,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			display, value := ComputeAverage(tc.scores)
			require.Equal(t, tc.display, display)
			require.InDelta(t, tc.value, value, 1e-9)
		})
	}
}

func TestComputeAverageStaysWithinBounds(t *testing.T) {
	steps := []string{"", "0", "2,5", "5", "7.5", "10"}
	for _, m := range steps {
		for _, res := range steps {
			for _, bi := range steps {
				for _, read := range steps {
					scores := map[string]string{"m1": m, "m2": m, "m3": m, "res": res, "bi": bi, "read": read}
					_, value := ComputeAverage(scores)
					require.GreaterOrEqual(t, value, 0.0, fmt.Sprint(scores))
					require.LessOrEqual(t, value, 10.0, fmt.Sprint(scores))
				}
			}
		}
	}
}

func TestNormalizeScore(t *testing.T) {
	valid := map[string]string{
		"":      "",
		"  ":    "",
		"7":     "7",
		"7,5":   "7.5",
		"9.25":  "9.25",
		"0":     "0",
		"10":    "10",
		" 8,0 ": "8.0",
	}
	for input, expected := range valid {
		got, err := NormalizeScore(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, got, input)
	}

	for _, input := range []string{"-1", "10.1", "11", "abc", "NaN", "Inf", "7,5,1", "1e1", "1E0", "0x1p3", "+5", "5.", ".5", "7 5"} {
		_, err := NormalizeScore(input)
		require.ErrorIs(t, err, ErrInvalidScore, input)
	}
}

func TestParseScoreIgnoresNonDecimalForms(t *testing.T) {
	for _, input := range []string{"1e1", "0x1p3", "+5", "-2", "Inf"} {
		require.Zero(t, ParseScore(input), input)
	}
	require.Equal(t, 7.5, ParseScore("7,5"))
	require.Equal(t, 9.25, ParseScore(" 9.25 "))
}

func TestFormatAverageUsesComma(t *testing.T) {
	require.Equal(t, "6,3", FormatAverage(6.25+0.05))
	require.Equal(t, "0,0", FormatAverage(0))
	require.Equal(t, "4,3", FormatAverage(4.25))
	require.Equal(t, "7,8", FormatAverage(7.75))
}
