package log

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// renderValue converts a resolved slog.Value to its text form.
// Errors render their message; other structured values render as JSON.
func renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		switch x := v.Any().(type) {
		case nil:
			return "<nil>"
		case error:
			return x.Error()
		case fmt.Stringer:
			return x.String()
		default:
			if data, err := json.Marshal(x); err == nil {
				return string(data)
			}
			return fmt.Sprintf("%v", x)
		}
	default:
		return fmt.Sprintf("%v", v.Any())
	}
}

// quote wraps s in double quotes when it would otherwise be ambiguous in a
// key=value line.
func quote(s string) string {
	if s == "" {
		return `""`
	}
	needs := strings.ContainsFunc(s, func(r rune) bool {
		return r == '=' || r == '"' || unicode.IsSpace(r) || !unicode.IsPrint(r)
	})
	if needs {
		return strconv.Quote(s)
	}
	return s
}
