package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"robot-models/internal/core"
	"robot-models/internal/types"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	_, descs, err := s.loadRegistry(ctx, req.ModelPaths)
	if err != nil {
		return ValidateResult{}, err
	}

	result := ValidateResult{}
	for _, desc := range descs {
		result.Services += len(desc.Services)
		result.Components += len(desc.Components)
	}
	return result, nil
}

// loadRegistry validates the given description files and loads them
// into a fresh registry.
func (s Service) loadRegistry(ctx context.Context, paths []string) (*core.Registry, []types.Description, error) {
	if len(paths) == 0 {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one model description file is required")
	}
	descs, err := s.Models.LoadDescriptions(paths)
	if err != nil {
		return nil, nil, err
	}
	compiler := core.NewDescriptionCompiler()
	for _, desc := range descs {
		if err := compiler.ValidateDescription(ctx, desc); err != nil {
			return nil, nil, err
		}
	}
	registry := core.NewRegistry()
	if err := registry.LoadDescriptions(ctx, descs); err != nil {
		return nil, nil, err
	}
	return registry, descs, nil
}
