package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"robot-models/internal/types"
)

// Stable error message prefixes. The CLI maps these (together with the
// errbuilder codes) to exit codes, and callers use them to tell the
// model-authoring failure kinds apart.
const (
	MsgConflictingComponentTypes    = "conflicting component types"
	MsgPortConflict                 = "port conflict"
	MsgDuplicateServiceName         = "duplicate service name"
	MsgMissingPort                  = "missing port"
	MsgUnknownService               = "unknown service"
	MsgIncompatibleServiceSelection = "incompatible service selection"
	MsgAmbiguousServiceSelection    = "ambiguous service selection"
	MsgAmbiguousPortMappings        = "ambiguous port mappings"
)

func errConflictingComponentTypes(first *types.ComponentType, second *types.ComponentType) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s: cannot combine %s and %s in one placeholder",
			MsgConflictingComponentTypes, first.Name, second.Name))
}

func errPortConflict(portName string, first string, second string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: port %s declared as both %s and %s",
			MsgPortConflict, portName, first, second))
}

func errDuplicateServiceName(component *types.ComponentType, instanceName string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeAlreadyExists).
		WithMsg(fmt.Sprintf("%s: %s already declares a service %s with an unrelated model",
			MsgDuplicateServiceName, component.Name, instanceName))
}

func errMissingPort(component *types.ComponentType, service *types.ServiceModel, abstract string, concrete string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s has no port %s required by service %s port %s",
			MsgMissingPort, component.Name, concrete, service.Name, abstract))
}

func errUnknownService(component *types.ComponentType, service string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s: %s does not provide %s",
			MsgUnknownService, component.Name, service))
}

func errIncompatibleServiceSelection(selected *types.BoundService, required *types.ServiceModel, component *types.ComponentType) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s on %s cannot satisfy %s selected on %s",
			MsgIncompatibleServiceSelection, selected.InstanceName, selected.Component.Name,
			required.Name, component.Name))
}

func errAmbiguousServiceSelection(component *types.ComponentType, required *types.ServiceModel, candidates []string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s provides %s through several services %v",
			MsgAmbiguousServiceSelection, component.Name, required.Name, candidates))
}

func errAmbiguousPortMappings(first *types.ServiceModel, second *types.ServiceModel, portName string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s and %s disagree on the target of port %s",
			MsgAmbiguousPortMappings, first.Name, second.Name, portName))
}
