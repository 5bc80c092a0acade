// Package scheduler runs periodic metric collectors on independent tickers
// and captures their output into the dispatch pipeline.
package scheduler
