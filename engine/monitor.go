package engine

import "github.com/poiesic/matchit/core"

// MatchMonitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps and results while
// a request is scored against the catalog.
type MatchMonitor interface {
	Start(queryText string)
	QueryEmbedded(dimensions int)
	BeforeCollection(collection core.Collection, candidates int)
	ItemSkipped(collection core.Collection, id core.ID, reason string)
	ItemScored(collection core.Collection, id core.ID, similarity, adjusted float32, kept bool)
	Finish(matches []core.Match)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                             {}
func (n *noopMonitor) QueryEmbedded(_ int)                                        {}
func (n *noopMonitor) BeforeCollection(_ core.Collection, _ int)                  {}
func (n *noopMonitor) ItemSkipped(_ core.Collection, _ core.ID, _ string)         {}
func (n *noopMonitor) ItemScored(_ core.Collection, _ core.ID, _, _ float32, _ bool) {}
func (n *noopMonitor) Finish(_ []core.Match)                                      {}
