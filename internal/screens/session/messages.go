package session

// submittedMsg reports the outcome of grading and persisting the session.
type submittedMsg struct {
	Err error
}
