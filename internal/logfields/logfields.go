package logfields

import "log/slog"

// Canonical log field names shared by every package that logs.
const (
	KeyRecord     = "record"
	KeyFormat     = "format"
	KeyPath       = "path"
	KeyCount      = "count"
	KeySource     = "source"
	KeyCommand    = "command"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Record(name string) slog.Attr    { return slog.String(KeyRecord, name) }
func Format(name string) slog.Attr    { return slog.String(KeyFormat, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Error renders err as a string attribute; nil yields an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
