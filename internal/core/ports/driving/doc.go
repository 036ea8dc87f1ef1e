// Package driving defines the inbound ports: the service interfaces the
// CLI, TUI, and MCP adapters consume.
package driving
