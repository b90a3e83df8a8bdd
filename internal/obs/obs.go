package obs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/horecastore/storefront-e2e/internal/logutil"
)

type runContextKey struct{}

// Run carries identifiers of one suite run for log correlation.
type Run struct {
	RunID   string
	Project string
	Worker  string
}

var (
	loggerMu sync.RWMutex
	logger   *slog.Logger
)

// Init configures the global structured logger.
func Init() {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger != nil {
		return
	}
	logger = newLogger(os.Stderr)
	slog.SetDefault(logger)
}

// SetOutputForTests overrides the global logger output for tests.
func SetOutputForTests(w io.Writer) func() {
	loggerMu.Lock()
	prev := logger
	logger = newLogger(w)
	slog.SetDefault(logger)
	loggerMu.Unlock()

	return func() {
		loggerMu.Lock()
		defer loggerMu.Unlock()
		if prev != nil {
			logger = prev
		} else {
			logger = newLogger(os.Stderr)
		}
		slog.SetDefault(logger)
	}
}

func newLogger(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				t, ok := attr.Value.Any().(time.Time)
				if ok {
					return slog.String(slog.TimeKey, t.UTC().Format(time.RFC3339Nano))
				}
			}
			if logutil.IsSensitiveLogField(attr.Key) && attr.Value.Kind() != slog.KindGroup {
				return slog.String(attr.Key, logutil.Redacted)
			}
			return attr
		},
	})
	return slog.New(handler)
}

func globalLogger() *slog.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}
	Init()
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// Pkg returns a logger tagged with package name.
func Pkg(pkg string) *slog.Logger {
	return globalLogger().With("pkg", pkg)
}

// From returns a logger with run fields from context.
func From(ctx context.Context) *slog.Logger {
	l := globalLogger()
	attrs := runAttrs(RunFromContext(ctx))
	if len(attrs) == 0 {
		return l
	}
	return l.With(attrs...)
}

// WithRun stores run identifiers in context. Empty fields keep the values
// already present.
func WithRun(ctx context.Context, run Run) context.Context {
	existing := RunFromContext(ctx)
	if v := strings.TrimSpace(run.RunID); v != "" {
		existing.RunID = v
	}
	if v := strings.TrimSpace(run.Project); v != "" {
		existing.Project = v
	}
	if v := strings.TrimSpace(run.Worker); v != "" {
		existing.Worker = v
	}
	return context.WithValue(ctx, runContextKey{}, existing)
}

// RunFromContext returns run identifiers from context.
func RunFromContext(ctx context.Context) Run {
	if ctx == nil {
		return Run{}
	}
	run, ok := ctx.Value(runContextKey{}).(Run)
	if !ok {
		return Run{}
	}
	return run
}

func runAttrs(run Run) []any {
	attrs := make([]any, 0, 6)
	if run.RunID != "" {
		attrs = append(attrs, "run_id", run.RunID)
	}
	if run.Project != "" {
		attrs = append(attrs, "project", run.Project)
	}
	if run.Worker != "" {
		attrs = append(attrs, "worker", run.Worker)
	}
	return attrs
}
