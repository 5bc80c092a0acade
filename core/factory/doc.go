// Package factory provides a small generic registry of named constructors.
// Plugin surfaces (sinks, metadata providers, collectors) register a factory
// under a type name; configuration then selects and parameterizes instances
// through ModuleConfig entries. Decode maps raw configuration onto typed
// config structs using json tags.
package factory
