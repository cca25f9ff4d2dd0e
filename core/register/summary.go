package register

import "fmt"

type (
	// StudentSummary is the attendance tally of one student over every recorded date.
	StudentSummary struct {
		Student    Student `json:"student"`
		Present    int     `json:"present"`
		Absent     int     `json:"absent"`
		Percentage string  `json:"percentage"`
	}

	DayStats struct {
		Total   int `json:"total"`
		Present int `json:"present"`
		Absent  int `json:"absent"`
	}
)

// Summary tallies every rostered student of the class, in roster order.
// Percentage is present / (present + absent), unmarked dates do not count.
func (st *State) Summary(classID string) []StudentSummary {
	roster := st.Roster(classID)
	sums := make([]StudentSummary, 0, len(roster))
	for _, stu := range roster {
		sum := StudentSummary{Student: stu}
		for _, byStudent := range st.records[classID] {
			switch byStudent[stu.ID].Status {
			case StatusPresent:
				sum.Present++
			case StatusAbsent:
				sum.Absent++
			}
		}
		sum.Percentage = percentage(sum.Present, sum.Present+sum.Absent)
		sums = append(sums, sum)
	}
	return sums
}

// DayStats counts the roster and its marks on one date.
func (st *State) DayStats(classID, date string) DayStats {
	roster := st.Roster(classID)
	recs := st.records[classID][date]
	stats := DayStats{Total: len(roster)}
	for _, stu := range roster {
		switch recs[stu.ID].Status {
		case StatusPresent:
			stats.Present++
		case StatusAbsent:
			stats.Absent++
		}
	}
	return stats
}

func percentage(part, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}
