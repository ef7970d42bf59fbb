package viewer

// DefaultFrameRate is the capture rate of the pose recordings.
const DefaultFrameRate = 30

// Playback advances a fractional frame cursor through a recording,
// looping at the end.
type Playback struct {
	frames    int
	frameRate float64
	cursor    float64
	playing   bool
}

// NewPlayback creates a paused cursor over frames frames.
func NewPlayback(frames int, frameRate float64) *Playback {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return &Playback{frames: frames, frameRate: frameRate}
}

// Frame returns the current fractional frame.
func (p *Playback) Frame() float32 {
	return float32(p.cursor)
}

// Playing reports whether the cursor advances with time.
func (p *Playback) Playing() bool {
	return p.playing
}

// Toggle starts or pauses playback.
func (p *Playback) Toggle() {
	p.playing = !p.playing
}

// Advance moves the cursor by dt seconds when playing.
func (p *Playback) Advance(dt float64) {
	if !p.playing || p.frames < 2 {
		return
	}
	p.cursor += dt * p.frameRate
	last := float64(p.frames - 1)
	for p.cursor > last {
		p.cursor -= last
	}
}

// Step pauses and moves the cursor to the next or previous whole frame,
// clamped to the recording.
func (p *Playback) Step(delta int) {
	p.playing = false
	f := int(p.cursor) + delta
	if delta < 0 && p.cursor != float64(int(p.cursor)) {
		f = int(p.cursor)
	}
	p.Seek(f)
}

// Seek pauses and jumps to a frame, clamped to the recording.
func (p *Playback) Seek(frame int) {
	p.playing = false
	p.cursor = float64(min(max(frame, 0), max(p.frames-1, 0)))
}
