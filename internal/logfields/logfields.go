package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyDir        = "dir"
	KeyOutput     = "output"
	KeyRef        = "ref"
	KeyMode       = "mode"
	KeyCount      = "count"
	KeyConvention = "convention"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr          { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func File(f string) slog.Attr            { return slog.String(KeyFile, f) }
func Dir(d string) slog.Attr             { return slog.String(KeyDir, d) }
func Output(p string) slog.Attr          { return slog.String(KeyOutput, p) }
func Ref(r string) slog.Attr             { return slog.String(KeyRef, r) }
func Mode(m string) slog.Attr            { return slog.String(KeyMode, m) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func Convention(c string) slog.Attr      { return slog.String(KeyConvention, c) }
func Duration(d time.Duration) slog.Attr { return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
