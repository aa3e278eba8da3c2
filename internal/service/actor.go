package service

// Actor identifies the logged-in user performing an action.
type Actor struct {
	ID   string
	Name string
	Role string
}
