package booking

// Half-hour slots of the two office shifts.
var (
	MorningSlots   = []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	AfternoonSlots = []string{"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30"}
)

// DefaultOccupied is the fixed set of slots shown as taken.
var DefaultOccupied = []string{"09:00", "14:30", "16:00"}

func AllSlots() []string {
	out := make([]string, 0, len(MorningSlots)+len(AfternoonSlots))
	out = append(out, MorningSlots...)
	return append(out, AfternoonSlots...)
}

// AvailableSlots filters the candidate slots by the occupied set, keeping order.
func AvailableSlots(occupied []string) []string {
	taken := make(map[string]bool, len(occupied))
	for _, o := range occupied {
		taken[o] = true
	}
	var out []string
	for _, s := range AllSlots() {
		if !taken[s] {
			out = append(out, s)
		}
	}
	return out
}
