package config

// PluginConfig stores the type name of the plugin and raw configuration data
// for that plugin. Each plugin is responsible for decoding the raw map into its
// own concrete configuration struct.
type PluginConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// ProviderConfig declares a metadata provider and its merge priority.
type ProviderConfig struct {
	Type     string         `json:"type"`
	Priority int            `json:"priority"`
	Conf     map[string]any `json:"conf"`
}

// ComponentsConfig lists the pluggable components of the pipeline: the sink
// for each client name, the partial metadata providers and the scheduled
// collectors. Each component is defined by its type and an arbitrary
// configuration map.
type ComponentsConfig struct {
	Clients    []PluginConfig   `json:"clients"`
	Providers  []ProviderConfig `json:"providers"`
	Collectors []PluginConfig   `json:"collectors"`
}
