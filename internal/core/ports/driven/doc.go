// Package driven defines the outbound ports: interfaces the core
// depends on for persistence. Adapters under
// internal/adapters/driven implement them.
package driven
