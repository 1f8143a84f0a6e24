package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Logger é o logger estruturado do sistema. Os campos são pares chave/valor
// alternados ("animal_id", id, ...); chaves que não forem string são ignoradas.
type Logger interface {
	With(kv ...any) Logger

	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

type Options struct {
	Level Level
	JSON  bool
	App   string
}

type stdLogger struct {
	mu    *sync.Mutex
	out   *log.Logger
	level Level
	json  bool
	base  []field
}

type field struct {
	key string
	val any
}

func New(opts Options) Logger {
	l := &stdLogger{
		mu:    &sync.Mutex{},
		out:   log.New(os.Stdout, "", 0),
		level: opts.Level,
		json:  opts.JSON,
	}
	if app := strings.TrimSpace(opts.App); app != "" {
		l.base = []field{{key: "app", val: app}}
	}
	return l
}

// NewFromEnv lê LOG_LEVEL (debug|info|warn|error), LOG_FORMAT (text|json)
// e APP_NAME.
func NewFromEnv() Logger {
	return New(Options{
		Level: ParseLevel(os.Getenv("LOG_LEVEL")),
		JSON:  strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "json"),
		App:   os.Getenv("APP_NAME"),
	})
}

func (l *stdLogger) With(kv ...any) Logger {
	fs := parseFields(kv)
	if len(fs) == 0 {
		return l
	}
	child := *l
	child.base = append(append([]field{}, l.base...), fs...)
	return &child
}

func (l *stdLogger) Debug(msg string, kv ...any) { l.log(Debug, msg, kv) }
func (l *stdLogger) Info(msg string, kv ...any)  { l.log(Info, msg, kv) }
func (l *stdLogger) Warn(msg string, kv ...any)  { l.log(Warn, msg, kv) }
func (l *stdLogger) Error(msg string, kv ...any) { l.log(Error, msg, kv) }

func (l *stdLogger) log(lvl Level, msg string, kv []any) {
	if lvl < l.level {
		return
	}

	fields := make([]field, 0, 3+len(l.base)+len(kv)/2)
	fields = append(fields,
		field{key: "ts", val: time.Now().Format(time.RFC3339Nano)},
		field{key: "level", val: lvl.String()},
		field{key: "msg", val: msg},
	)
	fields = append(fields, l.base...)
	fields = append(fields, parseFields(kv)...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.json {
		m := make(map[string]any, len(fields))
		for _, f := range fields {
			m[f.key] = f.val
		}
		b, _ := json.Marshal(m)
		l.out.Println(string(b))
		return
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.key, f.val))
	}
	l.out.Println(strings.Join(parts, " "))
}

func parseFields(kv []any) []field {
	out := make([]field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok || strings.TrimSpace(k) == "" {
			continue
		}
		out = append(out, field{key: k, val: kv[i+1]})
	}
	return out
}
