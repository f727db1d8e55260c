package types

// Description is the on-disk representation of a set of model
// declarations, as loaded from a model description file.
type Description struct {
	APIVersion string          `yaml:"api_version"`
	Kind       DescriptionKind `yaml:"kind"`
	Metadata   DescriptionMeta `yaml:"metadata"`

	Services   []ServiceDescription   `yaml:"services"`
	Components []ComponentDescription `yaml:"components"`
}

type DescriptionMeta struct {
	Name    string   `yaml:"name"`
	Version string   `yaml:"version"`
	Owners  []string `yaml:"owners"`
}

type ServiceDescription struct {
	Name   string            `yaml:"name"`
	Parent string            `yaml:"parent"`
	Ports  []PortDescription `yaml:"ports"`
}

type ComponentDescription struct {
	Name     string                `yaml:"name"`
	Parent   string                `yaml:"parent"`
	Abstract bool                  `yaml:"abstract"`
	Ports    []PortDescription     `yaml:"ports"`
	Provides []ProvidesDescription `yaml:"provides"`
}

type PortDescription struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Direction string `yaml:"direction"`
}

type ProvidesDescription struct {
	Service      string            `yaml:"service"`
	As           string            `yaml:"as"`
	SlaveOf      string            `yaml:"slave_of"`
	PortMappings map[string]string `yaml:"port_mappings"`
}

// ResolutionReport is the serializable outcome of one instance
// selection: which bound service satisfies each required service, and
// the merged port mapping.
type ResolutionReport struct {
	Selected   string                   `yaml:"selected"`
	Required   []string                 `yaml:"required"`
	Selections []ServiceSelectionRecord `yaml:"selections"`
	PortMap    map[string]string        `yaml:"port_mappings"`
}

type ServiceSelectionRecord struct {
	Required  string `yaml:"required"`
	Component string `yaml:"component"`
	Instance  string `yaml:"instance"`
}
