//go:build debugheaplog

package internal

import (
	"log/slog"
	"time"
	"unsafe"
)

const (
	HeapAllocDebugging = true
	timefmt            = "[01-02 15:04:05.000]"
)

var timebuf [len(timefmt) * 2]byte

func LogEnabled(l *slog.Logger, lvl slog.Level) bool { return true }

// LogAttrs prints the record with the runtime print builtins so that logging
// itself does not allocate, then reports any heap growth since the last record.
func LogAttrs(_ *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	n := len(time.Now().AppendFormat(timebuf[:0], timefmt))
	print("time=", unsafe.String(&timebuf[0], n), " ")
	if level == LevelTrace {
		print("TRACE ")
	} else {
		print(level.String(), " ")
	}
	print(msg)
	for _, a := range attrs {
		printAttr("", a)
	}
	println()
	LogAllocs(msg)
}

// printAttr prints a, flattening groups into dotted keys.
func printAttr(group string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			printAttr(group+a.Key+".", ga)
		}
		return
	}
	print(" ", group, a.Key, "=")
	switch v.Kind() {
	case slog.KindString:
		print(v.String())
	case slog.KindInt64:
		print(v.Int64())
	case slog.KindUint64:
		print("0x")
		printHex(v.Uint64())
	case slog.KindBool:
		print(v.Bool())
	case slog.KindDuration:
		print(v.Duration().Microseconds(), "us")
	default:
		print("?")
	}
}

func printHex(u uint64) {
	const digits = "0123456789abcdef"
	var buf [16]byte
	i := len(buf)
	for {
		i--
		buf[i] = digits[u&0xf]
		u >>= 4
		if u == 0 {
			break
		}
	}
	print(unsafe.String(&buf[i], len(buf)-i))
}
