package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db          DBPinger
	definitions DefinitionsChecker
}

// New creates a Service. definitions can be nil.
func New(db DBPinger, definitions DefinitionsChecker) *Service {
	return &Service{db: db, definitions: definitions}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.definitions != nil {
		if err := s.definitions.CheckDefinitions(ctx); err != nil {
			checks["definitions"] = CheckError
		} else {
			checks["definitions"] = CheckOK
		}
	}

	status := Healthy
	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}
	switch {
	case failed == len(checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
