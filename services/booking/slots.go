package booking

import "fmt"

const (
	openingMinute = 9 * 60
	closingMinute = 17 * 60
	slotStep      = 30
)

// BusinessSlots is the fixed daily catalog: 09:00 through 17:00 every half hour.
func BusinessSlots() []string {
	slots := make([]string, 0, (closingMinute-openingMinute)/slotStep+1)
	for m := openingMinute; m <= closingMinute; m += slotStep {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}
