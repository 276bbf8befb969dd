package core

// Logger is any leveled logging service.
// Implementations may interpret extra args as structured context; a user.User
// arg sets the reporting identity where the backend supports it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
