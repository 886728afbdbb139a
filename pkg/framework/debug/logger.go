// Package debug holds the leveled logger, buffer analysis and block profiler
// shared by the parameter core, the process context and the example hosts.
//
// Logging is never done from inside a smoothing loop. The package-level
// functions write through Default, which starts at LevelInfo on stderr.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelFatal lines are always followed by a panic.
	LevelFatal
	// LevelOff suppresses everything.
	LevelOff
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL", "OFF"}

func (l Level) String() string {
	if l < LevelDebug || int(l) >= len(levelNames) {
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
	return levelNames[l]
}

// ParseLevel maps a case-insensitive level name to its Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Header flags select what precedes each message.
const (
	FlagTime = 1 << iota
	FlagShortFile
	FlagLongFile
	FlagLevel
	FlagPrefix
)

// DefaultFlags is used by Default.
const DefaultFlags = FlagTime | FlagShortFile | FlagLevel | FlagPrefix

// Logger writes leveled, line-oriented messages. It is safe for concurrent
// use; each message is written with a single Write call.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	level   Level
	prefix  string
	flags   int
	enabled bool
	buf     []byte
}

var std = New(os.Stderr, "dawcore", DefaultFlags)

// New returns an enabled logger at LevelInfo.
func New(out io.Writer, prefix string, flags int) *Logger {
	return &Logger{
		out:     out,
		level:   LevelInfo,
		prefix:  prefix,
		flags:   flags,
		enabled: true,
	}
}

// NewFileLogger appends to filename, creating it and its directory if needed.
// The returned closer releases the file.
func NewFileLogger(filename, prefix string, flags int) (*Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, prefix, flags), f, nil
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	l.out = w
	l.mu.Unlock()
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Level returns the minimum level that is written.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) SetPrefix(prefix string) {
	l.mu.Lock()
	l.prefix = prefix
	l.mu.Unlock()
}

func (l *Logger) SetFlags(flags int) {
	l.mu.Lock()
	l.flags = flags
	l.mu.Unlock()
}

func (l *Logger) SetEnabled(enabled bool) {
	l.mu.Lock()
	l.enabled = enabled
	l.mu.Unlock()
}

func (l *Logger) IsEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled && level >= l.level && level < LevelOff
}

// output formats and writes one line. depth counts the frames between the
// caller of interest and output.
func (l *Logger) output(depth int, level Level, msg string) {
	var file string
	var line int
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.level || l.level >= LevelOff {
		return
	}
	if l.flags&(FlagShortFile|FlagLongFile) != 0 {
		// Release the lock while walking the stack.
		l.mu.Unlock()
		var ok bool
		_, file, line, ok = runtime.Caller(depth)
		if !ok {
			file, line = "???", 0
		}
		l.mu.Lock()
	}

	l.buf = l.buf[:0]
	if l.flags&FlagTime != 0 {
		l.buf = time.Now().AppendFormat(l.buf, "2006-01-02 15:04:05.000 ")
	}
	if l.flags&FlagLevel != 0 {
		l.buf = append(l.buf, '[')
		l.buf = append(l.buf, level.String()...)
		l.buf = append(l.buf, "] "...)
	}
	if l.flags&FlagPrefix != 0 && l.prefix != "" {
		l.buf = append(l.buf, '[')
		l.buf = append(l.buf, l.prefix...)
		l.buf = append(l.buf, "] "...)
	}
	if file != "" {
		if l.flags&FlagShortFile != 0 {
			file = filepath.Base(file)
		}
		l.buf = append(l.buf, file...)
		l.buf = append(l.buf, ':')
		l.buf = strconv.AppendInt(l.buf, int64(line), 10)
		l.buf = append(l.buf, ": "...)
	}
	l.buf = append(l.buf, msg...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		l.buf = append(l.buf, '\n')
	}
	_, _ = l.out.Write(l.buf)
}

func (l *Logger) Debug(format string, args ...any) {
	l.output(2, LevelDebug, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.output(2, LevelInfo, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.output(2, LevelWarn, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.output(2, LevelError, fmt.Sprintf(format, args...))
}

// Fatal logs at LevelFatal and panics with the message, even when the logger
// is disabled.
func (l *Logger) Fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.output(2, LevelFatal, msg)
	panic(msg)
}

// Default returns the package logger.
func Default() *Logger { return std }

func SetOutput(w io.Writer) { std.SetOutput(w) }
func SetLevel(level Level) { std.SetLevel(level) }
func SetPrefix(prefix string) { std.SetPrefix(prefix) }
func SetFlags(flags int) { std.SetFlags(flags) }
func SetEnabled(enabled bool) { std.SetEnabled(enabled) }

func Debug(format string, args ...any) {
	std.output(2, LevelDebug, fmt.Sprintf(format, args...))
}

func Info(format string, args ...any) {
	std.output(2, LevelInfo, fmt.Sprintf(format, args...))
}

func Warn(format string, args ...any) {
	std.output(2, LevelWarn, fmt.Sprintf(format, args...))
}

func Error(format string, args ...any) {
	std.output(2, LevelError, fmt.Sprintf(format, args...))
}

// Fatal logs through Default and panics. Precondition violations in the
// parameter core are reported this way.
func Fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	std.output(2, LevelFatal, msg)
	panic(msg)
}

// WarnIf logs through Default when cond holds.
func WarnIf(cond bool, format string, args ...any) {
	if cond {
		std.output(2, LevelWarn, fmt.Sprintf(format, args...))
	}
}
