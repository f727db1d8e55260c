package core

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"robot-models/internal/shared"
	"robot-models/internal/types"
)

// ProxyTypeFor returns a component type standing in for the given
// combination of at most one component type and any number of service
// models. When services are present a synthetic abstract subtype is
// built (or returned from the cache: the same combination always yields
// the identical type object).
func (r *Registry) ProxyTypeFor(ctx context.Context, models []types.Model) (*types.ComponentType, error) {
	var base *types.ComponentType
	var services []*types.ServiceModel
	seen := map[*types.ServiceModel]struct{}{}

	for _, model := range models {
		switch m := model.(type) {
		case *types.ComponentType:
			if base != nil && base != m {
				return nil, errConflictingComponentTypes(base, m)
			}
			base = m
		case *types.ServiceModel:
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			services = append(services, m)
		}
	}

	if base == nil {
		base = r.root
	}
	if len(services) == 0 {
		return base, nil
	}

	sort.Slice(services, func(i, j int) bool {
		return services[i].Name < services[j].Name
	})
	var names []string
	for _, service := range services {
		names = append(names, service.Name)
	}
	cacheKey := base.Name + "|" + strings.Join(names, ",")

	r.proxyMu.Lock()
	defer r.proxyMu.Unlock()
	if cached, ok := r.proxies[cacheKey]; ok {
		return cached, nil
	}

	proxy, err := r.buildProxyType(ctx, base, services)
	if err != nil {
		return nil, err
	}
	r.proxies[cacheKey] = proxy
	log.Ctx(ctx).Debug().Str("proxy", proxy.Name).Msg("placeholder type synthesized")
	return proxy, nil
}

// buildProxyType synthesizes the abstract stand-in: merged service
// ports, every service attached with an identity mapping, and the exact
// proxied service set recorded. Nothing is cached until the whole build
// succeeds.
func (r *Registry) buildProxyType(ctx context.Context, base *types.ComponentType, services []*types.ServiceModel) (*types.ComponentType, error) {
	var shortNames []string
	for _, service := range services {
		shortNames = append(shortNames, shared.ShortName(service.Name))
	}
	proxy := &types.ComponentType{
		Name:      shared.ShortName(base.Name) + "{" + strings.Join(shortNames, ",") + "}",
		Abstract:  true,
		Parent:    base,
		Ports:     map[string]types.Port{},
		Services:  map[string]*types.BoundService{},
		Arguments: map[string]struct{}{},
	}

	for _, service := range services {
		// The declaration below maps the full ancestry of the service,
		// so ancestor ports must be merged in as well.
		for _, ancestor := range service.Ancestry() {
			portNames := make([]string, 0, len(ancestor.Ports))
			for name := range ancestor.Ports {
				portNames = append(portNames, name)
			}
			sort.Strings(portNames)
			for _, name := range portNames {
				port := ancestor.Ports[name]
				if merged, ok := proxy.Ports[name]; ok {
					if merged.Type != port.Type || merged.Direction != port.Direction {
						return nil, errPortConflict(name, merged.Type, port.Type)
					}
					continue
				}
				if inherited, ok := base.FindPort(name); ok {
					if inherited.Type != port.Type || inherited.Direction != port.Direction {
						return nil, errPortConflict(name, inherited.Type, port.Type)
					}
				}
				proxy.Ports[name] = port
			}
		}
	}

	for _, service := range services {
		if _, err := r.DeclareService(ctx, proxy, service.Name, DeclareServiceOptions{Model: service}); err != nil {
			return nil, err
		}
	}

	proxy.ProxiedServices = append([]*types.ServiceModel(nil), services...)
	return proxy, nil
}
