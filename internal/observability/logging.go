// Package observability provides repository logging, metrics and tracing.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/google/uuid"
)

type correlationKey struct{}

var repoLogger atomic.Pointer[slog.Logger]

func init() {
	SetRepoLogOutput(os.Stdout)
}

// SetRepoLogOutput redirects repository audit logs (JSON) to w. A nil writer
// silences them.
func SetRepoLogOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	repoLogger.Store(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// GenerateCorrelationID creates a new unique correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// ExtractCorrelationID returns the request's correlation ID, or "".
func ExtractCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// RepoLogger writes one audit line per write to a table.
type RepoLogger struct {
	table string
}

func NewRepoLogger(table string) *RepoLogger {
	return &RepoLogger{table: table}
}

func (l *RepoLogger) write(ctx context.Context, level slog.Level, operation string, id uint, attrs []slog.Attr) {
	base := []slog.Attr{
		slog.String("table", l.table),
		slog.String("operation", operation),
	}
	if id != 0 {
		base = append(base, slog.Uint64("id", uint64(id)))
	}
	if cid := ExtractCorrelationID(ctx); cid != "" {
		base = append(base, slog.String("correlation_id", cid))
	}
	repoLogger.Load().LogAttrs(ctx, level, "repository "+operation, append(base, attrs...)...)
}

func (l *RepoLogger) LogCreate(ctx context.Context, id uint, attrs ...slog.Attr) {
	l.write(ctx, slog.LevelInfo, "create", id, attrs)
}

func (l *RepoLogger) LogUpdate(ctx context.Context, id uint, attrs ...slog.Attr) {
	l.write(ctx, slog.LevelInfo, "update", id, attrs)
}

func (l *RepoLogger) LogDelete(ctx context.Context, id uint) {
	l.write(ctx, slog.LevelInfo, "delete", id, nil)
}

// LogError records a failed store operation. Not-found results are not errors
// and should not be logged here.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation string) {
	l.write(ctx, slog.LevelError, operation, 0, []slog.Attr{slog.String("error", err.Error())})
}
