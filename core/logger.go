package core

type (
	// Logger reports application events.
	// Args may contain errors, maps of extra data and an Identity.
	Logger interface {
		Debug(msg string, args ...interface{})
		Info(msg string, args ...interface{})
		Warn(msg string, args ...interface{})
		Error(msg string, args ...interface{})
		Fatal(msg string, args ...interface{})
	}

	// Identity is the authenticated caller attached to log entries.
	Identity struct {
		UserID   string
		Username string
		Role     string
	}
)
