package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// DefinitionsChecker checks that stored definitions can be loaded.
type DefinitionsChecker interface {
	CheckDefinitions(ctx context.Context) error
}
