// Package driven defines the outbound ports: interfaces the core services
// depend on and the adapters implement (search API, cache store, config
// store, geolocation).
package driven
