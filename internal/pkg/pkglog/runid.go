package pkglog

import "context"

type runIDContextKey struct{}

// GetRunID returns the run ID stored in the context.
//
// Commands set this value once per processed input so every record emitted
// while building that dataset can be grouped together.
func GetRunID(ctx context.Context) string {
	rid, ok := ctx.Value(runIDContextKey{}).(string)
	if !ok {
		return "[invalid_run_id]"
	}
	return rid
}

// SetRunID stores a run ID into the context.
func SetRunID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, runIDContextKey{}, rid)
}
