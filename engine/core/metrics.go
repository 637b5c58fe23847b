package core

const AVG_COUNT uint8 = 30

// FrameMetrics accumulates per-frame statistics of the overlay. It is owned by
// the engine and only touched from the device thread.
type FrameMetrics struct {
	FrameAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Frames             uint64
	AccumulatedFrameMS float64
	FPS                float64
	framesThisSecond   int32

	// Totals since creation.
	DrawCalls       uint64
	UploadedVerts   uint64
	UploadedIndices uint64
	SkippedUploads  uint64
	DroppedMeshes   uint64
}

func NewFrameMetrics() *FrameMetrics {
	return &FrameMetrics{}
}

// Update records the time spent inside one Present call, in seconds.
func (m *FrameMetrics) Update(frameElapsedTime float64) {
	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	m.MStimes[m.FrameAVGCounter] = frameMS
	if m.FrameAVGCounter == AVG_COUNT-1 {
		sum := 0.0
		for i := uint8(0); i < AVG_COUNT; i++ {
			sum += m.MStimes[i]
		}
		m.MSavg = sum / float64(AVG_COUNT)
	}
	m.FrameAVGCounter++
	m.FrameAVGCounter %= AVG_COUNT

	m.AccumulatedFrameMS += frameMS
	if m.AccumulatedFrameMS > 1000 {
		m.FPS = float64(m.framesThisSecond)
		m.AccumulatedFrameMS -= 1000
		m.framesThisSecond = 0
	}

	m.framesThisSecond++
	m.Frames++
}

func (m *FrameMetrics) RecordDraw(calls int) {
	m.DrawCalls += uint64(calls)
}

func (m *FrameMetrics) RecordUpload(vertices, indices int) {
	m.UploadedVerts += uint64(vertices)
	m.UploadedIndices += uint64(indices)
}

func (m *FrameMetrics) RecordSkippedUpload() {
	m.SkippedUploads++
}

func (m *FrameMetrics) RecordDropped(meshes int) {
	m.DroppedMeshes += uint64(meshes)
}

func (m *FrameMetrics) FrameTime() float64 {
	return m.MSavg
}

// Report logs a one-line summary every interval frames. A zero interval
// disables reporting.
func (m *FrameMetrics) Report(owner string, interval uint64) {
	if interval == 0 || m.Frames == 0 || m.Frames%interval != 0 {
		return
	}
	LogDebug("%s: frames=%d avg=%.3fms fps=%.0f draws=%d verts=%d idx=%d skipped=%d dropped=%d",
		owner, m.Frames, m.MSavg, m.FPS, m.DrawCalls, m.UploadedVerts, m.UploadedIndices, m.SkippedUploads, m.DroppedMeshes)
}
