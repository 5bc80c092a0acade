// Package pipeline contains the dispatch hub of the usage telemetry
// pipeline. The Dispatcher receives Metrics from producers, merges in the
// shared metadata from the aggregator and fans the enriched copy out to every
// active sink. Sinks are declared in a ClientRegistry and activated by the
// configured client allow-list behind the global consent gate; delivery runs
// on a background worker with per-sink isolation and no retries.
package pipeline
