package models

// ClassSchedule defines how many lessons a class has on a given weekday.
type ClassSchedule struct {
	DayOfWeek    int `json:"day_of_week"`
	LessonsCount int `json:"lessons_count"`
}

// GradeMap maps student id -> assessment id -> raw score text.
// An empty string means the score has not been entered yet.
type GradeMap map[string]map[string]string

// ClassGroup is a taught section and owns its roster, lessons and grades.
type ClassGroup struct {
	ID           string          `json:"id"`
	TeacherID    string          `json:"teacher_id"`
	Name         string          `json:"name"`
	Subject      string          `json:"subject"`
	Schedule     []ClassSchedule `json:"schedule"`
	PlanningText string          `json:"planning_text"`
	Students     []Student       `json:"students"`
	Lessons      []Lesson        `json:"lessons"`
	Grades       GradeMap        `json:"grades"`
}

// WeeklySchedule returns the schedule as a weekday -> lesson count lookup.
func (c ClassGroup) WeeklySchedule() map[int]int {
	result := make(map[int]int, len(c.Schedule))
	for _, entry := range c.Schedule {
		if entry.LessonsCount > 0 {
			result[entry.DayOfWeek] = entry.LessonsCount
		}
	}
	return result
}

// Clone returns a deep copy so callers can mutate it without touching shared state.
func (c ClassGroup) Clone() ClassGroup {
	out := c
	out.Schedule = append([]ClassSchedule(nil), c.Schedule...)
	out.Students = append(make([]Student, 0, len(c.Students)), c.Students...)
	out.Lessons = append(make([]Lesson, 0, len(c.Lessons)), c.Lessons...)
	out.Grades = make(GradeMap, len(c.Grades))
	for studentID, scores := range c.Grades {
		row := make(map[string]string, len(scores))
		for assessmentID, score := range scores {
			row[assessmentID] = score
		}
		out.Grades[studentID] = row
	}
	return out
}

// Score returns the raw score text for the student/assessment pair.
func (g GradeMap) Score(studentID, assessmentID string) string {
	if g == nil {
		return ""
	}
	return g[studentID][assessmentID]
}
