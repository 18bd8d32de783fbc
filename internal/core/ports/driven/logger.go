package driven

// ErrorLogger receives failures the core handles by logging instead of
// returning them to the caller.
type ErrorLogger interface {
	LogError(message string, err error)
}
