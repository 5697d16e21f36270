package domain

// DistributionStats summarizes the final grades of a record set. All
// numeric fields are nil when no record in the set has a computed final
// grade; Incomplete counts the records excluded for that reason.
// StdDev is the population standard deviation: the cohort is the whole
// population under study, not a sample of one.
type DistributionStats struct {
	Count      int                `json:"count"`
	Incomplete int                `json:"incomplete"`
	Mean       *float64           `json:"mean"`
	Median     *float64           `json:"median"`
	Mode       *float64           `json:"mode"`
	StdDev     *float64           `json:"std_dev"`
	Min        *float64           `json:"min"`
	Max        *float64           `json:"max"`
	Letters    map[string]int     `json:"letters"`
}

// OutlierMethod identifies the detection method used for an OutlierReport.
type OutlierMethod string

const (
	OutlierMethodIQR    OutlierMethod = "iqr"
	OutlierMethodZScore OutlierMethod = "zscore"
)

// OutlierReport lists the values flagged as unusually low or high, plus
// the fences that flagged them. Bounds are nil when the input was too
// small (IQR) or had zero variance (z-score), in which case both value
// slices are empty.
type OutlierReport struct {
	Method     OutlierMethod `json:"method"`
	LowerBound *float64      `json:"lower_bound"`
	UpperBound *float64      `json:"upper_bound"`
	Low        []float64     `json:"low"`
	High       []float64     `json:"high"`
}

// ImprovementEntry compares a student's final exam against their quiz
// average. Pct is nil when the quiz average is zero.
type ImprovementEntry struct {
	StudentID   string   `json:"student_id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Section     string   `json:"section"`
	QuizAverage float64  `json:"quiz_average"`
	Final       float64  `json:"final"`
	Delta       float64  `json:"delta"`
	Pct         *float64 `json:"pct"`
}

// Declined reports whether the student's final exam came in below their
// quiz average.
func (e ImprovementEntry) Declined() bool {
	return e.Delta < 0
}
