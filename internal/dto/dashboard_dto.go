package dto

// DashboardResponse aggregates headline numbers across every class.
type DashboardResponse struct {
	Greeting string               `json:"greeting"`
	Totals   DashboardTotals      `json:"totals"`
	Classes  []DashboardClassCard `json:"classes"`
}

// DashboardTotals counts records across all classes.
type DashboardTotals struct {
	Students     int `json:"students"`
	Classes      int `json:"classes"`
	Lessons      int `json:"lessons"`
	GradesFilled int `json:"grades_filled"`
}

// DashboardClassCard summarises one class on the dashboard.
type DashboardClassCard struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Subject      string `json:"subject"`
	StudentCount int    `json:"student_count"`
	LessonCount  int    `json:"lesson_count"`
}
