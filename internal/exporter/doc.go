// Package exporter delivers rendered exports: to a local directory, or to an
// S3-compatible bucket such as MinIO.
package exporter

import "context"

// Sink stores a named export and returns where it ended up.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}
