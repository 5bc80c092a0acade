// Package infra contains technical adapters such as delivery sinks,
// metadata providers and the logger implementation. These packages should
// depend only on the interfaces defined in the core packages.
package infra
