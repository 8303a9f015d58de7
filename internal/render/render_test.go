package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/recall-stream/pkg/types"
)

func snapshot() types.Snapshot {
	return types.Snapshot{
		Status:   types.StatusCompleted,
		Progress: types.Progress{Received: 1, Total: 2},
		Artifacts: []types.Artifact{
			{Kind: types.ArtifactResult, Result: &types.ResultRecord{
				ProductID:    "ABC123",
				Reason:       "<script>alert(1)</script>",
				HealthRisk:   "腹痛 & 発熱",
				RiskAnalysis: "低",
			}},
			{Kind: types.ArtifactDownloadLink, Link: &types.DownloadLink{URL: "https://x/y.csv?a=1&b=2"}},
		},
		TerminalMessage: "全件の処理が完了しました",
	}
}

func TestHTML_escapesBackendText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, snapshot()))
	out := buf.String()

	assert.Contains(t, out, "1件 / 2件")
	assert.Contains(t, out, "ABC123")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "腹痛 &amp; 発熱")
	assert.Contains(t, out, `href="https://x/y.csv?a=1&amp;b=2"`)
}

func TestHTML_neutralizesUnsafeURLs(t *testing.T) {
	snap := types.Snapshot{Artifacts: []types.Artifact{
		{Kind: types.ArtifactDownloadLink, Link: &types.DownloadLink{URL: "javascript:alert(1)"}},
	}}

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, snap))
	assert.NotContains(t, buf.String(), "javascript:")
}

func TestHTML_preservesArtifactOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, snapshot()))
	out := buf.String()

	assert.Less(t, strings.Index(out, "result-item"), strings.Index(out, "download-link"))
}

func TestPrinter_progress(t *testing.T) {
	p := types.Progress{Received: 3, Total: 5}

	assert.Equal(t, "3件 / 5件", NewPrinter("ja").Progress(p))
	assert.Equal(t, "3件 / 5件", NewPrinter("").Progress(p))
	assert.Equal(t, "3 / 5 results", NewPrinter("en").Progress(p))
}

func TestPrinter_status(t *testing.T) {
	ja := NewPrinter("ja")
	assert.Equal(t, "検索中...", ja.Status(types.StatusSearching))
	assert.Equal(t, "該当なし", ja.Status(types.StatusEmpty))
	assert.Equal(t, "completed", NewPrinter("en").Status(types.StatusCompleted))
}

func TestPrinter_text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter("ja").Text(&buf, snapshot()))
	out := buf.String()

	assert.Contains(t, out, "完了  1件 / 2件")
	assert.Contains(t, out, "全件の処理が完了しました")
	assert.Contains(t, out, "[1] 製品ID: ABC123")
	assert.Contains(t, out, "[2] 📥 https://x/y.csv?a=1&b=2")
}

func TestExport_notImplemented(t *testing.T) {
	f, err := ParseExportFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, ExportCSV, f)

	err = Export(&bytes.Buffer{}, snapshot(), f)
	assert.ErrorIs(t, err, ErrExportNotImplemented)

	_, err = ParseExportFormat("docx")
	assert.Error(t, err)
}
