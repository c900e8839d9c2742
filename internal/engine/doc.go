// Package engine assembles batches of products concurrently.
//
// Every order unit gets its own builder and director. Nothing built by
// one unit is visible to another, so the builders stay single-goroutine
// values even when the batch runs in parallel.
package engine
