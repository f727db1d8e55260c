package app

type ValidateRequest struct {
	ModelPaths []string
}

type ValidateResult struct {
	Services   int
	Components int
}

type InspectRequest struct {
	ModelPaths []string
	Component  string
}

type InspectResult struct {
	Name     string
	Abstract bool
	Ports    []InspectPort
	Services []InspectService
}

type InspectPort struct {
	Name      string
	Type      string
	Direction string
}

type InspectService struct {
	Instance string
	Model    string
	Main     bool
	Mapping  map[string]string
}

type ResolveRequest struct {
	ModelPaths        []string
	Selected          string
	RequiredComponent string
	RequiredServices  []string
	Directives        []string
	OutputDir         string
	Instantiate       bool
	TaskName          string
}

type ResolveResult struct {
	Selected     string
	Selections   map[string]string
	PortMappings map[string]string
	TaskName     string
	OutputDir    string
}

type ProxyRequest struct {
	ModelPaths []string
	Base       string
	Services   []string
}

type ProxyResult struct {
	Name     string
	Abstract bool
	Ports    []InspectPort
	Proxied  []string
}
