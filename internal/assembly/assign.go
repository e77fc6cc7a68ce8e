package assembly

import (
	"fmt"

	"cuemix/internal/timeline"
)

// Assign distributes a template's markers across the plan's buses. Music and
// voice markers all land on their single bus; sfx markers are round-robined
// across the sfx buses in timeline order so simultaneous effects tend to end
// up on different channels.
//
// Assignment is deterministic: markers are ordered by time_ms with ties
// broken by template position, so the same template always yields the same
// layout. A marker whose type is outside the known set fails the whole
// assignment rather than being silently dropped.
func Assign(tpl *timeline.Template, plan Plan) (map[ChannelID][]*timeline.Marker, error) {
	out := make(map[ChannelID][]*timeline.Marker, plan.SFXBuses+2)
	for _, bus := range plan.Buses() {
		out[bus.ID] = nil
	}

	sfxIndex := 0
	for i, m := range tpl.SortedMarkers() {
		switch m.Type {
		case timeline.TypeMusic:
			out[BusMusic] = append(out[BusMusic], m)
		case timeline.TypeVoice:
			out[BusVoice] = append(out[BusVoice], m)
		case timeline.TypeSFX:
			id := SFXBusID(sfxIndex%plan.SFXBuses + 1)
			out[id] = append(out[id], m)
			sfxIndex++
		default:
			return nil, fmt.Errorf("marker %d (%q): %w: %q",
				i, m.Label(), timeline.ErrInvalidMarkerType, m.Type)
		}
	}
	return out, nil
}
