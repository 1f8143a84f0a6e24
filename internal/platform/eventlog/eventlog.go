// Package eventlog é o destino dos eventos de domínio (reserva, adoção,
// expiração, promoção de fila). Falha ao gravar um evento nunca desfaz a
// transição de domínio que o gerou.
package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption-center/internal/platform/logger"
)

// Sink recebe eventos de domínio. Implementações não devem propagar erros
// para o fluxo de negócio.
type Sink interface {
	Emit(event string, fields map[string]any)
}

// Multi repassa cada evento para todos os sinks registrados.
type Multi []Sink

func (m Multi) Emit(event string, fields map[string]any) {
	for _, s := range m {
		s.Emit(event, fields)
	}
}

type discard struct{}

func (discard) Emit(string, map[string]any) {}

// Discard descarta todos os eventos. Útil em testes.
var Discard Sink = discard{}

// FileSink grava eventos em formato texto num arquivo de log dedicado.
type FileSink struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileSink{
		path: filepath.Join(dir, "eventos.log"),
		now:  time.Now,
	}, nil
}

func (s *FileSink) Emit(event string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}

	line := fmt.Sprintf("[%s] %s %s\n", s.now().UTC().Format(time.RFC3339), event, strings.Join(parts, " "))
	_, _ = f.WriteString(line)
}

// LoggerSink repassa eventos para o logger estruturado da aplicação.
type LoggerSink struct {
	Log logger.Logger
}

func (s LoggerSink) Emit(event string, fields map[string]any) {
	if s.Log == nil {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]any, 0, 2+2*len(keys))
	kv = append(kv, "event", event)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	s.Log.Info("domain event", kv...)
}
