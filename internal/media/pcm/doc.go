// Package pcm provides the fixed-format audio buffers the assembly engine
// mixes in: 48 kHz interleaved 16-bit samples for decoded clips, and int32
// accumulator buffers for summation so overlapping clips add exactly and are
// hard-clamped only on the final write.
package pcm
