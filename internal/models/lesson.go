package models

// LessonDateLayout is the ISO calendar date format used for lesson dates.
const LessonDateLayout = "2006-01-02"

// Lesson is one calendar-dated teaching session of a class.
type Lesson struct {
	ID          string `json:"id"`
	ClassID     string `json:"class_id"`
	Date        string `json:"date"`
	Topic       string `json:"topic"`
	Content     string `json:"content"`
	Completed   bool   `json:"completed"`
	LessonIndex int    `json:"lesson_index"`
}
