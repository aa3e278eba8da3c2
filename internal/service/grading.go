package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/noah-isme/sirius-edu-api/internal/models"
)

const (
	// MaxScore is the upper bound of every score and of the final average.
	MaxScore = 10.0
	// PassingAverage is the threshold below which an average is flagged.
	PassingAverage = 6.0
)

// scorePattern accepts plain decimals only: no sign, exponent or hex forms.
var scorePattern = regexp.MustCompile(`^[0-9]+([.,][0-9]+)?$`)

// NormalizeScore validates raw score input. Empty input is allowed and means "unset";
// otherwise the value must be a decimal in [0,10], comma or dot separated.
func NormalizeScore(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", nil
	}

	if !scorePattern.MatchString(value) {
		return "", ErrInvalidScore
	}

	value = strings.Replace(value, ",", ".", 1)
	number, err := strconv.ParseFloat(value, 64)
	if err != nil || number > MaxScore {
		return "", ErrInvalidScore
	}

	return value, nil
}

// ParseScore reads a stored score, treating missing or unparseable text as zero.
func ParseScore(raw string) float64 {
	value := strings.TrimSpace(raw)
	if !scorePattern.MatchString(value) {
		return 0
	}
	number, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
	if err != nil {
		return 0
	}
	return number
}

// ComputeAverage applies the weighted formula
//
//	base  = (avg(m1,m2,m3) + res + 2*bi) / 4
//	final = min(base + read, 10)
//
// and returns the final value formatted with one decimal and a comma separator.
func ComputeAverage(scores map[string]string) (string, float64) {
	monthly := (ParseScore(scores[models.AssessmentMonthly1]) +
		ParseScore(scores[models.AssessmentMonthly2]) +
		ParseScore(scores[models.AssessmentMonthly3])) / 3

	research := ParseScore(scores[models.AssessmentResearch])
	bimonthly := ParseScore(scores[models.AssessmentBimonthly])
	base := (monthly + research + 2*bimonthly) / 4

	final := base + ParseScore(scores[models.AssessmentReading])
	if final > MaxScore {
		final = MaxScore
	}

	return FormatAverage(final), final
}

// FormatAverage renders a value with one decimal place and a comma separator.
// Ties round up, so 4.25 becomes "4,3".
func FormatAverage(value float64) string {
	rounded := math.Floor(value*10+0.5) / 10
	return strings.Replace(strconv.FormatFloat(rounded, 'f', 1, 64), ".", ",", 1)
}
