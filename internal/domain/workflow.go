package domain

// ConnectorSpec pairs a connector's assigned name with its implementation
// type and option section. Live connectors are instantiated from a spec
// freshly for every run.
type ConnectorSpec struct {
	Name    string
	Type    string
	Options map[string]string
}

// Workflow binds one source connector to one or more target connectors.
// Workflows are built once from configuration and immutable for the run.
type Workflow struct {
	Name    string
	Source  ConnectorSpec
	Targets []ConnectorSpec
}
