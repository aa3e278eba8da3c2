package service

import "errors"

var (
	// ErrClassNotFound indicates the class does not exist.
	ErrClassNotFound = errors.New("class not found")
	// ErrStudentNotFound indicates the student is not on the class roster.
	ErrStudentNotFound = errors.New("student not found")
	// ErrLessonNotFound indicates the lesson is not part of the class calendar.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrUnknownAssessment indicates an assessment id outside the fixed catalog.
	ErrUnknownAssessment = errors.New("unknown assessment")
	// ErrInvalidScore indicates a score that is not empty or a decimal in [0,10].
	ErrInvalidScore = errors.New("score must be a number between 0 and 10")
	// ErrInvalidGrade indicates a grade outside the selectable options.
	ErrInvalidGrade = errors.New("invalid grade option")
	// ErrInvalidSection indicates a section outside the selectable options.
	ErrInvalidSection = errors.New("invalid section option")
	// ErrEmptyImport indicates a bulk import without any non-blank line.
	ErrEmptyImport = errors.New("no student names to import")
	// ErrNoTopics is returned when distribution is attempted without planning content.
	ErrNoTopics = errors.New("Ops! Cole seu conteúdo programático na aba 'Planejamento'.")
	// ErrNoSchedule is returned when distribution is attempted without a weekly schedule.
	ErrNoSchedule = errors.New("Configure a Grade Horária na aba 'Planejamento'.")
	// ErrLessonsExist guards against silently overwriting an existing calendar.
	ErrLessonsExist = errors.New("Atenção: Já existem aulas geradas. Gerar novamente irá sobrescrever todo o diário atual.")
	// ErrDateRangeTooLong indicates a generation range over MaxGenerationDays.
	ErrDateRangeTooLong = errors.New("date range must not exceed 366 days")
	// ErrConfirmationNotFound indicates an unknown, expired or already used token.
	ErrConfirmationNotFound = errors.New("confirmation not found or expired")
	// ErrSuggestionBusy indicates a suggestion is already running for the lesson.
	ErrSuggestionBusy = errors.New("suggestion already in progress for this lesson")
	// ErrLessonWithoutTopic indicates a suggestion was requested for a lesson with no topic.
	ErrLessonWithoutTopic = errors.New("lesson has no topic")
)

// IsPlanningPrecondition reports whether err should send the user back to planning.
func IsPlanningPrecondition(err error) bool {
	return errors.Is(err, ErrNoTopics) || errors.Is(err, ErrNoSchedule)
}
