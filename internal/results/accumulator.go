// Package results accumulates the artifacts of a search session in arrival order.
package results

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/recall-stream/pkg/protocol"
	"github.com/usestring/recall-stream/pkg/types"
)

// UnknownProductID is used when a composite key carries no "#<id>" segment.
const UnknownProductID = "不明"

// ProductID extracts the id segment from a "<type>#<id>" composite key.
func ProductID(compositeKey string) string {
	parts := strings.Split(compositeKey, "#")
	if len(parts) < 2 || parts[1] == "" {
		return UnknownProductID
	}
	return parts[1]
}

// Accumulator is an append-only, ordered artifact list.
// It is not safe for concurrent use; the owning session serializes access.
type Accumulator struct {
	artifacts []types.Artifact
	// byKind maps each kind to the positions of its artifacts.
	byKind map[types.ArtifactKind]*roaring.Bitmap
}

// New creates an empty Accumulator.
func New() *Accumulator {
	return &Accumulator{byKind: make(map[types.ArtifactKind]*roaring.Bitmap)}
}

// OnResult derives the record for an analysis result and appends it.
func (a *Accumulator) OnResult(fields protocol.AnalysisFields) types.ResultRecord {
	rec := types.ResultRecord{
		ProductID:    ProductID(fields.CompositeKey),
		Reason:       fields.Reason,
		HealthRisk:   fields.HealthRisk,
		RiskAnalysis: fields.RiskAnalysis,
	}
	a.append(types.Artifact{Kind: types.ArtifactResult, Result: &rec})
	return rec
}

// OnDownloadLink appends a download link artifact.
func (a *Accumulator) OnDownloadLink(url string) {
	a.append(EmitDownloadLink(url))
}

func (a *Accumulator) append(art types.Artifact) {
	pos := uint32(len(a.artifacts))
	a.artifacts = append(a.artifacts, art)

	bm, ok := a.byKind[art.Kind]
	if !ok {
		bm = roaring.New()
		a.byKind[art.Kind] = bm
	}
	bm.Add(pos)
}

// Len returns the number of artifacts.
func (a *Accumulator) Len() int {
	return len(a.artifacts)
}

// Artifacts returns a copy of every artifact in arrival order.
func (a *Accumulator) Artifacts() []types.Artifact {
	out := make([]types.Artifact, len(a.artifacts))
	copy(out, a.artifacts)
	return out
}

// Select returns a copy of the artifacts of one kind in arrival order.
func (a *Accumulator) Select(kind types.ArtifactKind) []types.Artifact {
	bm := a.byKind[kind]
	if bm == nil {
		return []types.Artifact{}
	}
	out := make([]types.Artifact, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, a.artifacts[it.Next()])
	}
	return out
}

// Reset replaces the sequence with an empty one.
func (a *Accumulator) Reset() {
	a.artifacts = nil
	a.byKind = make(map[types.ArtifactKind]*roaring.Bitmap)
}
