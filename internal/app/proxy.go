package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"robot-models/internal/types"
)

func (s Service) Proxy(ctx context.Context, req ProxyRequest) (ProxyResult, error) {
	if len(req.Services) == 0 {
		return ProxyResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one service type is required")
	}
	registry, _, err := s.loadRegistry(ctx, req.ModelPaths)
	if err != nil {
		return ProxyResult{}, err
	}

	var models []types.Model
	if base := strings.TrimSpace(req.Base); base != "" {
		component, err := registry.LookupComponentType(base)
		if err != nil {
			return ProxyResult{}, err
		}
		models = append(models, component)
	}
	for _, name := range req.Services {
		service, err := registry.LookupServiceType(strings.TrimSpace(name))
		if err != nil {
			return ProxyResult{}, err
		}
		models = append(models, service)
	}

	proxy, err := registry.ProxyTypeFor(ctx, models)
	if err != nil {
		return ProxyResult{}, err
	}

	summary := summarizeComponent(proxy)
	result := ProxyResult{
		Name:     proxy.Name,
		Abstract: proxy.Abstract,
		Ports:    summary.Ports,
	}
	for _, service := range proxy.ProxiedServices {
		result.Proxied = append(result.Proxied, service.Name)
	}
	return result, nil
}
