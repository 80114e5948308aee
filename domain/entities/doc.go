// Package entities provides core domain entities for the client.
// These are plain value types shared by the validator, the dispatcher
// and the orchestrator. They carry no I/O.
package entities
