package results

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/recall-stream/pkg/protocol"
	"github.com/usestring/recall-stream/pkg/types"
)

func TestProductID(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"TYPE#ABC123", "ABC123"},
		{"ABC123", UnknownProductID},
		{"", UnknownProductID},
		{"TYPE#", UnknownProductID},
		{"#ID", "ID"},
		{"A#B#C", "B"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductID(tt.key))
		})
	}
}

func fields(key string) protocol.AnalysisFields {
	return protocol.AnalysisFields{CompositeKey: key, Reason: "r-" + key, HealthRisk: "h", RiskAnalysis: "a"}
}

func TestAccumulator_preservesArrivalOrder(t *testing.T) {
	a := New()
	a.OnResult(fields("T#1"))
	a.OnDownloadLink("https://x/first.csv")
	a.OnResult(fields("T#2"))
	a.OnResult(fields("T#1")) // duplicates are kept
	a.OnDownloadLink("https://x/second.csv")

	arts := a.Artifacts()
	require.Len(t, arts, 5)
	assert.Equal(t, types.ArtifactResult, arts[0].Kind)
	assert.Equal(t, "1", arts[0].Result.ProductID)
	assert.Equal(t, types.ArtifactDownloadLink, arts[1].Kind)
	assert.Equal(t, "https://x/first.csv", arts[1].Link.URL)
	assert.Equal(t, "2", arts[2].Result.ProductID)
	assert.Equal(t, "1", arts[3].Result.ProductID)
	assert.Equal(t, "https://x/second.csv", arts[4].Link.URL)

}

func TestAccumulator_selectByKind(t *testing.T) {
	a := New()
	assert.Empty(t, a.Select(types.ArtifactResult))

	a.OnResult(fields("T#1"))
	a.OnDownloadLink("https://x/first.csv")
	a.OnResult(fields("T#2"))
	a.OnResult(fields("T#1"))
	a.OnDownloadLink("https://x/second.csv")

	recs := a.Select(types.ArtifactResult)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"1", "2", "1"}, []string{recs[0].Result.ProductID, recs[1].Result.ProductID, recs[2].Result.ProductID})

	links := a.Select(types.ArtifactDownloadLink)
	require.Len(t, links, 2)
	assert.Equal(t, "https://x/first.csv", links[0].Link.URL)
	assert.Equal(t, "https://x/second.csv", links[1].Link.URL)

	assert.Empty(t, a.Select(types.ArtifactKind("other")))
}

func TestAccumulator_onResultReturnsRecord(t *testing.T) {
	a := New()
	rec := a.OnResult(protocol.AnalysisFields{CompositeKey: "nokey", Reason: "r", HealthRisk: "h", RiskAnalysis: "a"})
	assert.Equal(t, types.ResultRecord{ProductID: UnknownProductID, Reason: "r", HealthRisk: "h", RiskAnalysis: "a"}, rec)
}

func TestAccumulator_artifactsIsACopy(t *testing.T) {
	a := New()
	a.OnDownloadLink("https://x/y.csv")
	arts := a.Artifacts()
	arts[0].Kind = types.ArtifactResult

	assert.Equal(t, types.ArtifactDownloadLink, a.Artifacts()[0].Kind)
}

func TestAccumulator_reset(t *testing.T) {
	a := New()
	for i := range 10 {
		a.OnResult(fields(fmt.Sprintf("T#%d", i)))
	}
	a.Reset()

	assert.Equal(t, 0, a.Len())
	assert.Empty(t, a.Select(types.ArtifactResult))
	assert.Empty(t, a.Select(types.ArtifactDownloadLink))

	a.OnDownloadLink("https://x/y.csv")
	assert.Len(t, a.Select(types.ArtifactDownloadLink), 1)
	assert.Empty(t, a.Select(types.ArtifactResult))
}

func TestEmitDownloadLink(t *testing.T) {
	art := EmitDownloadLink("https://x/y.csv")
	assert.Equal(t, types.ArtifactDownloadLink, art.Kind)
	require.NotNil(t, art.Link)
	assert.Equal(t, "https://x/y.csv", art.Link.URL)
	assert.Nil(t, art.Result)
}
