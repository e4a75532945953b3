package domain

import "errors"

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrNotAwaitingApproval = errors.New("project is not awaiting approval")
	// ErrStaleRun means a pipeline write carried a generation older than
	// the project's current one; the run lost a regenerate race and must
	// stop without touching the document.
	ErrStaleRun = errors.New("pipeline run is stale")
)
