package core

// Logger is what the rest of the app logs through.
// expected args: error, map[string]interface{}, or the acting register.Teacher
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
