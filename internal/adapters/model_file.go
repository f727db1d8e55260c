package adapters

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
	"gopkg.in/yaml.v3"

	"robot-models/internal/types"
)

// ModelFileAdapter loads model description files. Descriptions ship as
// deb packages on robot images, so duplicate declarations across files
// are arbitrated by Debian version ordering: the higher metadata
// version wins, equal versions are a configuration error.
type ModelFileAdapter struct{}

func NewModelFileAdapter() ModelFileAdapter {
	return ModelFileAdapter{}
}

func (a ModelFileAdapter) LoadDescriptions(paths []string) ([]types.Description, error) {
	var descs []types.Description
	for _, path := range paths {
		desc, err := a.load(path)
		if err != nil {
			return nil, err
		}
		descs = append(descs, desc)
	}
	return arbitrate(descs)
}

func (a ModelFileAdapter) load(path string) (types.Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Description{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("model description file not found").
			WithCause(err)
	}
	var desc types.Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return types.Description{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse model description yaml").
			WithCause(err)
	}
	return desc, nil
}

// arbitrate drops declarations shadowed by a higher-versioned
// description of the same component or service name. Declaration order
// is otherwise preserved.
func arbitrate(descs []types.Description) ([]types.Description, error) {
	winners := map[string]string{}
	record := func(name string, desc types.Description) (bool, error) {
		current, ok := winners[name]
		if !ok {
			winners[name] = desc.Metadata.Version
			return true, nil
		}
		cmp, err := compareDebVersions(desc.Metadata.Version, current)
		if err != nil {
			return false, err
		}
		if cmp == 0 {
			return false, errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("model %s declared by two descriptions of equal version %s",
					name, desc.Metadata.Version))
		}
		if cmp > 0 {
			winners[name] = desc.Metadata.Version
			return true, nil
		}
		return false, nil
	}

	// First pass decides the winning version per name.
	for _, desc := range descs {
		for _, service := range desc.Services {
			if _, err := record("service:"+service.Name, desc); err != nil {
				return nil, err
			}
		}
		for _, component := range desc.Components {
			if _, err := record("component:"+component.Name, desc); err != nil {
				return nil, err
			}
		}
	}

	// Second pass keeps only winning declarations.
	var merged []types.Description
	for _, desc := range descs {
		kept := desc
		kept.Services = nil
		kept.Components = nil
		for _, service := range desc.Services {
			if winners["service:"+service.Name] == desc.Metadata.Version {
				kept.Services = append(kept.Services, service)
			}
		}
		for _, component := range desc.Components {
			if winners["component:"+component.Name] == desc.Metadata.Version {
				kept.Components = append(kept.Components, component)
			}
		}
		if len(kept.Services) > 0 || len(kept.Components) > 0 {
			merged = append(merged, kept)
		}
	}
	return merged, nil
}

func compareDebVersions(a string, b string) (int, error) {
	parsedA, err := debversion.NewVersion(a)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid description version: %s", a)).
			WithCause(err)
	}
	parsedB, err := debversion.NewVersion(b)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid description version: %s", b)).
			WithCause(err)
	}
	return parsedA.Compare(parsedB), nil
}
