// Package driving defines the inbound ports: the service interfaces the
// CLI calls into. Implementations live in internal/core/services.
package driving
