package assembly

import (
	"fmt"

	"cuemix/internal/timeline"
)

// ChannelID names one output bus. Music is a stereo pair carried on a single
// bus; every other bus is mono.
type ChannelID string

const (
	BusMusic ChannelID = "music_lr"
	BusVoice ChannelID = "voice"
)

// SFXBusID returns the id of the n-th sfx bus (1-based).
func SFXBusID(n int) ChannelID {
	return ChannelID(fmt.Sprintf("sfx_%d", n))
}

// Bus is one mix destination in the plan.
type Bus struct {
	ID       ChannelID
	Type     timeline.MarkerType
	Channels int
}

// Plan is the fixed bus layout for an assembly run. The composite channel
// order is derived from it: music left, music right, each sfx bus in order,
// then voice.
type Plan struct {
	SFXBuses int
}

// DefaultSFXBuses is the bus count used when configuration does not say
// otherwise.
const DefaultSFXBuses = 2

// NewPlan builds a plan with the given sfx bus count, falling back to the
// default when the count is not positive.
func NewPlan(sfxBuses int) Plan {
	if sfxBuses <= 0 {
		sfxBuses = DefaultSFXBuses
	}
	return Plan{SFXBuses: sfxBuses}
}

// Buses returns the plan's buses in composite order.
func (p Plan) Buses() []Bus {
	out := make([]Bus, 0, p.SFXBuses+2)
	out = append(out, Bus{ID: BusMusic, Type: timeline.TypeMusic, Channels: 2})
	for i := 1; i <= p.SFXBuses; i++ {
		out = append(out, Bus{ID: SFXBusID(i), Type: timeline.TypeSFX, Channels: 1})
	}
	out = append(out, Bus{ID: BusVoice, Type: timeline.TypeVoice, Channels: 1})
	return out
}

// TotalChannels returns the composite channel count: a stereo music pair,
// one channel per sfx bus, and one voice channel.
func (p Plan) TotalChannels() int {
	return 2 + p.SFXBuses + 1
}

// ChannelLayout describes each composite channel in order, for metadata.
func (p Plan) ChannelLayout() []string {
	out := make([]string, 0, p.TotalChannels())
	out = append(out, "music_l", "music_r")
	for i := 1; i <= p.SFXBuses; i++ {
		out = append(out, string(SFXBusID(i)))
	}
	out = append(out, string(BusVoice))
	return out
}
