package domain

import (
	"time"
)

// HealthStatus summarises the state of a dependency probe.
type HealthStatus string

const (
	// HealthStatusOK indicates the dependency responded normally.
	HealthStatusOK HealthStatus = "ok"
	// HealthStatusDegraded indicates the dependency responded with errors.
	HealthStatusDegraded HealthStatus = "degraded"
	// HealthStatusError indicates the dependency timed out or failed hard.
	HealthStatusError HealthStatus = "error"
)

// SystemHealthCheck captures one dependency probe result.
type SystemHealthCheck struct {
	Status    HealthStatus
	Detail    string
	Error     string
	Latency   time.Duration
	CheckedAt time.Time
}

// SystemHealthReport aggregates dependency probe results for readiness checks.
type SystemHealthReport struct {
	Status      HealthStatus
	Checks      map[string]SystemHealthCheck
	GeneratedAt time.Time
}
