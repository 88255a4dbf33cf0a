package core

// Logger is the application-wide structured-ish logging contract.
// Implementations may fan out to external trackers (Rollbar in PROD).
// args may carry errors, maps of extra data or a user.User to attribute
// the event to.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
