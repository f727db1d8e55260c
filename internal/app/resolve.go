package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"robot-models/internal/adapters"
	"robot-models/internal/core"
	"robot-models/internal/policies"
	"robot-models/internal/types"
)

func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	selectedName := strings.TrimSpace(req.Selected)
	if selectedName == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("selected component type is required")
	}
	if len(req.RequiredServices) == 0 && strings.TrimSpace(req.RequiredComponent) == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("requirement names neither a component type nor a service")
	}

	registry, _, err := s.loadRegistry(ctx, req.ModelPaths)
	if err != nil {
		return ResolveResult{}, err
	}
	selected, err := registry.LookupComponentType(selectedName)
	if err != nil {
		return ResolveResult{}, err
	}

	required := types.Requirement{}
	if name := strings.TrimSpace(req.RequiredComponent); name != "" {
		component, err := registry.LookupComponentType(name)
		if err != nil {
			return ResolveResult{}, err
		}
		required.Component = component
	}
	for _, name := range req.RequiredServices {
		service, err := registry.LookupServiceType(strings.TrimSpace(name))
		if err != nil {
			return ResolveResult{}, err
		}
		required.Services = append(required.Services, service)
	}

	hints, err := buildHints(registry, selected, req.Directives)
	if err != nil {
		return ResolveResult{}, err
	}

	selection, err := registry.NewInstanceSelection(ctx, nil, types.SelectComponent(selected), required, hints)
	if err != nil {
		return ResolveResult{}, err
	}
	portMappings, err := selection.PortMappings()
	if err != nil {
		return ResolveResult{}, err
	}

	result := ResolveResult{
		Selected:     selected.Name,
		Selections:   map[string]string{},
		PortMappings: portMappings,
	}
	report := types.ResolutionReport{
		Selected: selected.Name,
		PortMap:  portMappings,
	}
	for _, model := range required.EachFulfilledModel() {
		report.Required = append(report.Required, model.ModelName())
	}
	for requiredService, selectedService := range selection.Services {
		result.Selections[requiredService.Name] = selectedService.InstanceName
		report.Selections = append(report.Selections, types.ServiceSelectionRecord{
			Required:  requiredService.Name,
			Component: selectedService.Component.Name,
			Instance:  selectedService.InstanceName,
		})
	}

	if req.Instantiate {
		task, err := selection.Instanciate(ctx, s.Plan, nil, strings.TrimSpace(req.TaskName))
		if err != nil {
			return ResolveResult{}, err
		}
		result.TaskName = task.Name
	}

	if dir := strings.TrimSpace(req.OutputDir); dir != "" {
		output := adapters.NewReportFileAdapter(dir)
		if err := output.WriteResolutionReport(report); err != nil {
			return ResolveResult{}, err
		}
		result.OutputDir = dir
	}
	log.Ctx(ctx).Debug().
		Str("selected", selected.Name).
		Int("selections", len(result.Selections)).
		Msg("resolution completed")
	return result, nil
}

// buildHints turns CLI selection directives into the resolver's hint
// table, resolving models and instances against the registry and the
// selected component.
func buildHints(registry *core.Registry, selected *types.ComponentType, directives []string) (core.ServiceSelection, error) {
	if len(directives) == 0 {
		return nil, nil
	}
	hints := core.ServiceSelection{}
	for _, raw := range directives {
		directive, err := policies.ParseDirective(raw)
		if err != nil {
			return nil, err
		}
		model, err := registry.LookupServiceType(directive.Service)
		if err != nil {
			return nil, err
		}
		service, err := policies.ApplyDirective(selected, directive)
		if err != nil {
			return nil, err
		}
		hints[model] = service
	}
	return hints, nil
}
