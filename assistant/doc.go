// Package assistant orchestrates prompt handling: attribute
// extraction, catalog matching with one relaxed retry, and response
// composition. It owns the fixed degradation messages and guarantees
// a result for every prompt.
package assistant
