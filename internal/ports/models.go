package ports

import "robot-models/internal/types"

// ModelSourcePort loads model description documents from disk, already
// merged: when several files declare the same type, the highest
// description version wins.
type ModelSourcePort interface {
	LoadDescriptions(paths []string) ([]types.Description, error)
}

// OutputPort writes resolution outcomes for downstream assembly
// tooling.
type OutputPort interface {
	WriteResolutionReport(report types.ResolutionReport) error
}
