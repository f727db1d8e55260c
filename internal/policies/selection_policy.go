package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"robot-models/internal/types"
)

// SelectionDirective is an externally supplied tie-break hint: bind a
// required service model to a specific declared service instance of the
// selected component.
type SelectionDirective struct {
	Service  string
	Instance string
}

// ParseDirective splits a raw "ServiceModel=instanceName" string into a
// directive.
func ParseDirective(raw string) (SelectionDirective, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SelectionDirective{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty selection directive")
	}
	service, instance, found := strings.Cut(trimmed, "=")
	service = strings.TrimSpace(service)
	instance = strings.TrimSpace(instance)
	if !found || service == "" || instance == "" {
		return SelectionDirective{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid selection directive: %s", raw))
	}
	return SelectionDirective{Service: service, Instance: instance}, nil
}

// ApplyDirective resolves the directive's instance name against the
// selected component's declared services. Whether the named instance
// actually fulfills the required service is for the resolver to check.
func ApplyDirective(component *types.ComponentType, directive SelectionDirective) (*types.BoundService, error) {
	if service, ok := component.FindService(directive.Instance); ok {
		return service, nil
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("selection directive names unknown service instance: %s on %s",
			directive.Instance, component.Name))
}
