// Package ports defines interfaces for infrastructure operations.
// The dispatcher depends on these abstractions; infrastructure adapters
// and test doubles implement them.
package ports
