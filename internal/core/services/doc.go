// Package services implements the driving ports over the driven ports:
// search orchestration, reference data caching, location enrichment, and
// feedback submission.
package services
