package logging

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	debugKey ctxKey = iota
	runIDKey
)

// WithRunID tags ctx with the replay or session its work belongs to. Context log methods add the
// id as a "run" field.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunID returns the id attached by WithRunID, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// EnableDebugMode makes the C* log methods emit debug lines for work done under ctx regardless of
// the logger's level. An empty key reuses the run id, or a fresh random one if there is none.
func EnableDebugMode(ctx context.Context, key string) context.Context {
	if key == "" {
		key = RunID(ctx)
	}
	if key == "" {
		key = uuid.NewString()[:8]
	}
	return context.WithValue(ctx, debugKey, key)
}

// IsDebugMode reports whether EnableDebugMode was applied to ctx.
func IsDebugMode(ctx context.Context) bool {
	return DebugKey(ctx) != ""
}

// DebugKey returns the key passed to EnableDebugMode.
func DebugKey(ctx context.Context) string {
	key, _ := ctx.Value(debugKey).(string)
	return key
}

// withRunField appends the run id of ctx to keysAndValues.
func withRunField(ctx context.Context, keysAndValues []interface{}) []interface{} {
	if id := RunID(ctx); id != "" {
		return append(keysAndValues, "run", id)
	}
	return keysAndValues
}
