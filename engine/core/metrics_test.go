package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameMetricsAverage(t *testing.T) {
	m := NewFrameMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.002)
	}
	assert.InDelta(t, 2.0, m.FrameTime(), 1e-9)

	// a second window must not accumulate on top of the first
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.004)
	}
	assert.InDelta(t, 4.0, m.FrameTime(), 1e-9)
	assert.Equal(t, uint64(2*int(AVG_COUNT)), m.Frames)
}

func TestFrameMetricsFPS(t *testing.T) {
	m := NewFrameMetrics()
	for i := 0; i < 120; i++ {
		m.Update(1.0 / 100.0)
	}
	assert.InDelta(t, 100, m.FPS, 1)
}

func TestFrameMetricsCounters(t *testing.T) {
	m := NewFrameMetrics()
	m.RecordDraw(3)
	m.RecordDraw(2)
	m.RecordUpload(40, 60)
	m.RecordSkippedUpload()
	m.RecordDropped(1)
	assert.Equal(t, uint64(5), m.DrawCalls)
	assert.Equal(t, uint64(40), m.UploadedVerts)
	assert.Equal(t, uint64(60), m.UploadedIndices)
	assert.Equal(t, uint64(1), m.SkippedUploads)
	assert.Equal(t, uint64(1), m.DroppedMeshes)
}

func TestClockIsMonotonic(t *testing.T) {
	c := NewClock()
	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	time.Sleep(2 * time.Millisecond)
	c.Update()
	first := c.Seconds()
	assert.Greater(t, first, 0.0)

	c.Update()
	assert.GreaterOrEqual(t, c.Seconds(), first)

	c.Stop()
	stopped := c.Elapsed()
	c.Update()
	assert.Equal(t, stopped, c.Elapsed())
}
