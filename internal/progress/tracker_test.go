package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/recall-stream/pkg/types"
)

func TestTracker(t *testing.T) {
	var tr Tracker
	assert.Equal(t, types.Progress{}, tr.Progress())

	tr.OnTotalCount(3)
	assert.Equal(t, types.Progress{Received: 0, Total: 3}, tr.Progress())

	tr.OnResult()
	tr.OnResult()
	assert.Equal(t, types.Progress{Received: 2, Total: 3}, tr.Progress())
	assert.False(t, tr.Overflow())
}

func TestTracker_totalCountReplaces(t *testing.T) {
	var tr Tracker
	tr.OnTotalCount(5)
	tr.OnResult()
	tr.OnResult()

	tr.OnTotalCount(2)
	assert.Equal(t, types.Progress{Received: 0, Total: 2}, tr.Progress())
}

func TestTracker_notClamped(t *testing.T) {
	var tr Tracker
	tr.OnTotalCount(1)
	tr.OnResult()
	tr.OnResult()

	assert.Equal(t, types.Progress{Received: 2, Total: 1}, tr.Progress())
	assert.True(t, tr.Overflow())
}

func TestTracker_reset(t *testing.T) {
	var tr Tracker
	tr.OnTotalCount(4)
	tr.OnResult()
	tr.Reset()
	assert.Equal(t, types.Progress{}, tr.Progress())
}
