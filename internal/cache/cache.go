// Package cache invalidates rendered dashboard views after mutations.
package cache

import "context"

// ViewCache is what mutation handlers and view renderers share. Invalidate
// drops the rendered entry for path and bumps its version so readers holding
// an older version know to recompute.
type ViewCache interface {
	Invalidate(ctx context.Context, path string) error
	Version(ctx context.Context, path string) (int64, error)
}

func viewKey(prefix, path string) string {
	return prefix + ":view:" + path
}

func versionKey(prefix, path string) string {
	return viewKey(prefix, path) + ":version"
}
