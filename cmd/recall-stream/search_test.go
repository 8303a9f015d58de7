package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/usestring/recall-stream/internal/render"
	"github.com/usestring/recall-stream/pkg/client"
	"github.com/usestring/recall-stream/pkg/client/clienttest"
	"github.com/usestring/recall-stream/pkg/protocol"
	"github.com/usestring/recall-stream/pkg/types"
)

func criteria() types.SearchCriteria {
	return types.SearchCriteria{Email: "a@example.com", Keyword: "錠剤", Source: "PMDA", Period: "2024"}
}

func sampleSnapshot() types.Snapshot {
	return types.Snapshot{
		SessionID: "search-1",
		Criteria:  criteria(),
		Status:    types.StatusCompleted,
		Progress:  types.Progress{Received: 1, Total: 1},
		Artifacts: []types.Artifact{
			{Kind: types.ArtifactResult, Result: &types.ResultRecord{ProductID: "ABC123", Reason: "異物混入"}},
		},
		TerminalMessage: protocol.MsgCompletion,
	}
}

func TestParseOutputFormat(t *testing.T) {
	f, err := parseOutputFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, outputYAML, f)

	f, err = parseOutputFormat("")
	require.NoError(t, err)
	assert.Equal(t, outputText, f)

	_, err = parseOutputFormat("xml")
	assert.Error(t, err)
}

func TestWriteOutput_formats(t *testing.T) {
	printer := render.NewPrinter("ja")

	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, outputJSON, sampleSnapshot(), printer))
	var snap types.Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snap))
	assert.Equal(t, "ABC123", snap.Artifacts[0].Result.ProductID)

	buf.Reset()
	require.NoError(t, writeOutput(&buf, outputYAML, sampleSnapshot(), printer))
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "completed", doc["status"])
	assert.Equal(t, "search-1", doc["session_id"])

	buf.Reset()
	require.NoError(t, writeOutput(&buf, outputHTML, sampleSnapshot(), printer))
	assert.Contains(t, buf.String(), "1件 / 1件")

	buf.Reset()
	require.NoError(t, writeOutput(&buf, outputText, sampleSnapshot(), printer))
	assert.Contains(t, buf.String(), "製品ID: ABC123")
}

func TestSearch_streamsToCompletion(t *testing.T) {
	fake := clienttest.New()
	var progress bytes.Buffer

	go func() {
		for len(fake.Sent()) < 2 {
			time.Sleep(time.Millisecond)
		}
		fake.Deliver(`{"message":"` + protocol.MsgTotalCount + `","data":1}`)
		fake.Deliver(`{"message":"` + protocol.MsgAnalysis + `","data":{"timestamp":"X#P1","回収理由":"r","危惧される具体的な健康被害":"h","現象・リスク分析":"a"}}`)
		fake.Deliver(`{"message":"` + protocol.MsgCompletion + `"}`)
	}()

	snap, err := search(context.Background(), fake, criteria(), 5*time.Second, render.NewPrinter("ja"), &progress)
	require.NoError(t, err)

	assert.Equal(t, types.StatusCompleted, snap.Status)
	assert.Equal(t, types.Progress{Received: 1, Total: 1}, snap.Progress)
	assert.Equal(t, "P1", snap.Artifacts[0].Result.ProductID)
	assert.Contains(t, progress.String(), "1件 / 1件")
	assert.Contains(t, progress.String(), protocol.MsgCompletion)
}

func TestSearch_rejectsIncompleteCriteria(t *testing.T) {
	fake := clienttest.New()
	c := criteria()
	c.Period = ""

	_, err := search(context.Background(), fake, c, time.Second, render.NewPrinter("ja"), &bytes.Buffer{})
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"period"}, verr.Missing)
	assert.False(t, fake.Open())
	assert.Empty(t, fake.Sent())
}

func TestSearch_waitBound(t *testing.T) {
	fake := clienttest.New()

	snap, err := search(context.Background(), fake, criteria(), 10*time.Millisecond, render.NewPrinter("en"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, types.StatusSearching, snap.Status)
	assert.True(t, hasPartialResult(snap, err))
}

func TestSearch_dialTimeoutHasNoPartialResult(t *testing.T) {
	fake := clienttest.New()
	fake.ConnectErr = &client.ConnectionError{Op: "dial", Err: context.DeadlineExceeded}

	snap, err := search(context.Background(), fake, criteria(), time.Second, render.NewPrinter("en"), &bytes.Buffer{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, types.StatusIdle, snap.Status)
	assert.False(t, hasPartialResult(snap, err))
	assert.Empty(t, fake.Sent())
}
