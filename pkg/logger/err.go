package logger

import "log/slog"

const errKey = "err"

// Err returns a slog attribute for an error, rendered in red by the Handler.
func Err(err error) slog.Attr {
	return slog.String(errKey, err.Error())
}
