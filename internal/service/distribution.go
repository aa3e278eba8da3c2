package service

import (
	"strings"
	"time"

	"github.com/noah-isme/sirius-edu-api/internal/identity"
	"github.com/noah-isme/sirius-edu-api/internal/models"
)

type dayMonth struct {
	day   int
	month time.Month
}

// Fixed national holidays. Moving holidays are not tracked.
var holidays = map[dayMonth]struct{}{
	{1, time.January}:   {},
	{21, time.April}:    {},
	{1, time.May}:       {},
	{7, time.September}: {},
	{12, time.October}:  {},
	{2, time.November}:  {},
	{15, time.November}: {},
	{25, time.December}: {},
}

// IsHoliday reports whether the calendar date is one of the fixed holidays.
func IsHoliday(date time.Time) bool {
	_, ok := holidays[dayMonth{day: date.Day(), month: date.Month()}]
	return ok
}

// MaxGenerationDays bounds the calendar span of one generation request (a leap year).
const MaxGenerationDays = 366

// CheckGenerationSpan rejects ranges longer than MaxGenerationDays, counting both ends.
func CheckGenerationSpan(start, end time.Time) error {
	first := calendarDate(start)
	last := calendarDate(end)
	if last.Before(first) {
		return nil
	}
	if days := int(last.Sub(first).Hours()/24) + 1; days > MaxGenerationDays {
		return ErrDateRangeTooLong
	}
	return nil
}

// ParseTopics splits planning text into trimmed, non-empty topic lines.
func ParseTopics(planningText string) []string {
	lines := strings.Split(strings.ReplaceAll(planningText, "\r\n", "\n"), "\n")
	topics := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			topics = append(topics, trimmed)
		}
	}
	return topics
}

// ParseLessonDate parses an ISO date into UTC midnight.
func ParseLessonDate(value string) (time.Time, error) {
	return time.ParseInLocation(models.LessonDateLayout, strings.TrimSpace(value), time.UTC)
}

// DistributionInput groups everything PlanLessons needs.
type DistributionInput struct {
	ClassID  string
	Topics   []string
	Start    time.Time
	End      time.Time
	Schedule map[int]int
}

// PlanLessons validates the input and spreads the topics over the calendar.
func PlanLessons(input DistributionInput, ids identity.Generator) ([]models.Lesson, error) {
	if len(input.Topics) == 0 {
		return nil, ErrNoTopics
	}
	if !hasScheduledDay(input.Schedule) {
		return nil, ErrNoSchedule
	}
	return Distribute(input.ClassID, input.Topics, input.Start, input.End, input.Schedule, ids), nil
}

// Distribute walks every day from start to end inclusive, skipping holidays, and emits
// schedule[weekday] lessons per day. Each lesson consumes the next topic; once the
// topics run out the remaining lessons are emitted blank.
func Distribute(classID string, topics []string, start, end time.Time, schedule map[int]int, ids identity.Generator) []models.Lesson {
	first := calendarDate(start)
	last := calendarDate(end)

	lessons := make([]models.Lesson, 0)
	topicIndex := 0

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if IsHoliday(d) {
			continue
		}

		count := schedule[int(d.Weekday())]
		for i := 0; i < count; i++ {
			topic := ""
			if topicIndex < len(topics) {
				topic = topics[topicIndex]
			}

			lessons = append(lessons, models.Lesson{
				ID:          ids.NewID(),
				ClassID:     classID,
				Date:        d.Format(models.LessonDateLayout),
				Topic:       topic,
				Content:     topic,
				Completed:   false,
				LessonIndex: i + 1,
			})

			if topic != "" {
				topicIndex++
			}
		}
	}

	return lessons
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func hasScheduledDay(schedule map[int]int) bool {
	for _, count := range schedule {
		if count > 0 {
			return true
		}
	}
	return false
}
