// Package timeouts defines shared timeout constants. Keeping them together
// prevents drift between the CLI, the metrics listener and remote stores.
package timeouts

import "time"

// StoreOperation caps a single load, save or delete against a remote save
// store.
const StoreOperation = 10 * time.Second

// ReadHeader limits how long the metrics server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the metrics server waits for in-flight scrapes
// during graceful shutdown.
const Shutdown = 5 * time.Second
