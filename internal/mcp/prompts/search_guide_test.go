package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, res *sdkmcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleSearchGuide_withArguments(t *testing.T) {
	h := HandleSearchGuide(&Config{SearchWaitMs: 30000})
	res, err := h(context.Background(), &sdkmcp.GetPromptRequest{
		Params: &sdkmcp.GetPromptParams{
			Name:      "recall_search_guide",
			Arguments: map[string]string{"keyword": "サプリ", "source": "fda"},
		},
	})
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, "recall_search")
	assert.Contains(t, text, "30000ms")
	assert.Contains(t, text, "- keyword: サプリ")
	assert.Contains(t, text, "- source: FDA")
	assert.NotContains(t, text, "- period:")
}

func TestHandleSearchGuide_noArguments(t *testing.T) {
	res, err := HandleSearchGuide(&Config{})(context.Background(), &sdkmcp.GetPromptRequest{
		Params: &sdkmcp.GetPromptParams{Name: "recall_search_guide"},
	})
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, "returns immediately")
	assert.NotContains(t, text, "Requested Search")
}
