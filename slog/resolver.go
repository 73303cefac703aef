package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/filmdex/filmdex"
)

// Ensure LoggingResolver implements filmdex.Resolver.
var _ filmdex.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with debug logging.
type LoggingResolver struct {
	next   filmdex.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next filmdex.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the outcome.
func (r *LoggingResolver) Resolve(ctx context.Context, link filmdex.DownloadLink, rc filmdex.ResolveContext) (res filmdex.Resolution) {
	defer func(begin time.Time) {
		r.logger.Info("resolve",
			"url", link.URL,
			"type", string(link.Type),
			"links", len(res.Links),
			"episodeGroups", len(res.EpisodeGroups),
			"unresolved", res.Unresolved,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.Resolve(ctx, link, rc)
}
