package handlers

import (
	"dayflow.app/dayflow/attendance"
	"dayflow.app/dayflow/directory"
	"dayflow.app/dayflow/infrastructure/filesystem"
	"dayflow.app/dayflow/leave"
	"dayflow.app/dayflow/metrics"
	"dayflow.app/dayflow/payroll"
)

// Handler bundles the core components behind the API gateway. Every method
// receives an already-resolved identity from the Authentication middleware
// and never re-derives the caller.
type Handler struct {
	Directory *directory.Service
	Tracker   *attendance.Tracker
	Leave     *leave.Workflow
	Payroll   *payroll.Engine

	// Documents is nil when no object store is configured; uploads then fall
	// back to local disk.
	Documents *filesystem.Store
	Metrics   *metrics.Metrics
}

func New(dir *directory.Service, tracker *attendance.Tracker, wf *leave.Workflow, engine *payroll.Engine, docs *filesystem.Store, m *metrics.Metrics) *Handler {
	return &Handler{
		Directory: dir,
		Tracker:   tracker,
		Leave:     wf,
		Payroll:   engine,
		Documents: docs,
		Metrics:   m,
	}
}
