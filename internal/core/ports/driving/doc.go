// Package driving defines the interfaces the CLI calls IN to core services.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them, and the cobra commands depend on them so
// tests can swap in mocks.
package driving
