package types

type PortDirection string

const (
	PortDirectionInput  PortDirection = "input"
	PortDirectionOutput PortDirection = "output"
)

type SelectionKind string

const (
	SelectionKindComponent SelectionKind = "component"
	SelectionKindService   SelectionKind = "service"
	SelectionKindDeferred  SelectionKind = "deferred"
)

type DescriptionKind string

const (
	DescriptionKindModels DescriptionKind = "models"
)
