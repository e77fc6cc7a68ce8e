package pcm

// FadeIn applies a linear gain ramp from 0 to full scale over the first
// fadeMs of the clip, in place. Ramps longer than the clip cover the whole
// clip.
func (c *Clip) FadeIn(fadeMs int64) {
	frames := c.Frames()
	fadeFrames := FramesForMs(fadeMs)
	if fadeFrames <= 0 {
		return
	}
	if fadeFrames > frames {
		fadeFrames = frames
	}
	for i := 0; i < fadeFrames; i++ {
		gain := float64(i) / float64(fadeFrames)
		for ch := 0; ch < c.Channels; ch++ {
			idx := i*c.Channels + ch
			c.Samples[idx] = int16(float64(c.Samples[idx]) * gain)
		}
	}
}

// FadeOut applies a linear gain ramp from full scale to 0 over the last
// fadeMs of the clip, in place.
func (c *Clip) FadeOut(fadeMs int64) {
	frames := c.Frames()
	fadeFrames := FramesForMs(fadeMs)
	if fadeFrames <= 0 {
		return
	}
	if fadeFrames > frames {
		fadeFrames = frames
	}
	for i := 0; i < fadeFrames; i++ {
		frame := frames - fadeFrames + i
		gain := float64(fadeFrames-1-i) / float64(fadeFrames)
		for ch := 0; ch < c.Channels; ch++ {
			idx := frame*c.Channels + ch
			c.Samples[idx] = int16(float64(c.Samples[idx]) * gain)
		}
	}
}
