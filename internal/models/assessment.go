package models

// Assessment identifiers used as keys in GradeMap.
const (
	AssessmentMonthly1  = "m1"
	AssessmentMonthly2  = "m2"
	AssessmentMonthly3  = "m3"
	AssessmentResearch  = "res"
	AssessmentBimonthly = "bi"
	AssessmentReading   = "read"
)

// Assessment describes one of the fixed weighted grading components.
type Assessment struct {
	ID     string `json:"id"`
	Group  string `json:"group"`
	Title  string `json:"title"`
	Short  string `json:"short"`
	Weight int    `json:"weight"`
}

// IsBonus reports whether the assessment is added after the weighted average.
func (a Assessment) IsBonus() bool {
	return a.Weight == 0
}

// Assessments is the ordered gradebook catalog.
var Assessments = []Assessment{
	{ID: AssessmentMonthly1, Group: "Mensal", Title: "Mensal 1", Short: "M1", Weight: 1},
	{ID: AssessmentMonthly2, Group: "Mensal", Title: "Mensal 2", Short: "M2", Weight: 1},
	{ID: AssessmentMonthly3, Group: "Mensal", Title: "Mensal 3", Short: "M3", Weight: 1},
	{ID: AssessmentResearch, Group: "Trabalhos", Title: "Pesquisa", Short: "Pesq", Weight: 1},
	{ID: AssessmentBimonthly, Group: "Bimestral", Title: "Prova Bim.", Short: "Bim", Weight: 2},
	{ID: AssessmentReading, Group: "Extras", Title: "Leitura", Short: "Leit", Weight: 0},
}

// FindAssessment looks up a catalog entry by id.
func FindAssessment(id string) (Assessment, bool) {
	for _, assessment := range Assessments {
		if assessment.ID == id {
			return assessment, true
		}
	}
	return Assessment{}, false
}
