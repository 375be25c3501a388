// Package version holds build metadata for the customfields bootstrap binary.
package version

import "go.uber.org/zap"

// Set with -ldflags "-X github.com/kailas-cloud/customfields/internal/version.Version=...".
//
//nolint:revive // ldflags targets
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Fields returns the build metadata as log fields.
func Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", Version),
		zap.String("commit", Commit),
		zap.String("build_date", Date),
	}
}
