// Package domain contains the core business types for the Epic Search CLI:
// search requests and responses, reference data (projects, document types,
// strategies), feedback, and location enrichment. Types here are pure values
// with no dependencies on adapters or transport.
package domain
