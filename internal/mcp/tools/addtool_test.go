package tools

import (
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"

	"github.com/usestring/recall-stream/pkg/types"
)

func TestRegister_allOutputsPassSchemaCheck(t *testing.T) {
	srv := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "0"}, nil)
	assert.NotPanics(t, func() {
		Register(srv, newDeps(t).deps)
	})
}

func TestCheckOutputSchema_toolOutputs(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[SearchOutput]("recall_search")
		CheckOutputSchema[StatusOutput]("recall_status")
		CheckOutputSchema[QueryResultsOutput]("recall_query_results")
		CheckOutputSchema[RenderOutput]("recall_render")
		CheckOutputSchema[ExportOutput]("recall_export")
		CheckOutputSchema[ResetOutput]("recall_reset")
	})
}

type nullArtifacts struct {
	Artifacts []types.Artifact `json:"artifacts"`
}

type omittedArtifacts struct {
	Artifacts []types.Artifact `json:"artifacts,omitzero"`
}

type emptyArtifacts struct {
	Artifacts []types.Artifact `json:"artifacts,omitempty"`
}

type pointerArtifacts struct {
	Artifacts *[]types.Artifact `json:"artifacts"`
}

type rawFrame struct {
	Frame json.RawMessage `json:"frame,omitempty"`
}

type rawFrames struct {
	Frames []json.RawMessage `json:"frames,omitzero"`
}

type nestedRaw struct {
	Last rawFrame `json:"last"`
}

type anyValues struct {
	Values []any `json:"values,omitzero"`
}

func TestCheckOutputSchema(t *testing.T) {
	tests := []struct {
		name   string
		check  func(toolName string)
		panics bool
	}{
		// A nil slice marshals as null while the schema expects an array.
		{"nil slice", CheckOutputSchema[nullArtifacts], true},
		{"omitzero slice", CheckOutputSchema[omittedArtifacts], false},
		{"omitempty slice", CheckOutputSchema[emptyArtifacts], false},
		{"pointer to slice", CheckOutputSchema[pointerArtifacts], false},
		{"scalar fields", CheckOutputSchema[types.Progress], false},
		{"untyped any", CheckOutputSchema[any], false},
		{"any slice", CheckOutputSchema[anyValues], false},
		{"raw message", CheckOutputSchema[rawFrame], true},
		{"raw message slice", CheckOutputSchema[rawFrames], true},
		{"nested raw message", CheckOutputSchema[nestedRaw], true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := func() { tt.check("test_tool") }
			if tt.panics {
				assert.Panics(t, run)
			} else {
				assert.NotPanics(t, run)
			}
		})
	}
}
