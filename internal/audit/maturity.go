package audit

// Maturity tier thresholds on the audit score.
const (
	MaturityThresholdOptimized = 85
	MaturityThresholdManaged   = 70
	MaturityThresholdDefined   = 50
	MaturityThresholdBasic     = 30
)

// Maturity levels.
const (
	LevelAdHoc     = 1
	LevelBasic     = 2
	LevelDefined   = 3
	LevelManaged   = 4
	LevelOptimized = 5
)

// maturityLabels is indexed by level.
//
//nolint:gochecknoglobals // Constant lookup table.
var maturityLabels = [...]string{
	LevelAdHoc:     "Ad-hoc",
	LevelBasic:     "Basic",
	LevelDefined:   "Defined",
	LevelManaged:   "Managed",
	LevelOptimized: "Optimized",
}

// MaturityRating is a CSRD maturity tier for one reporting year.
type MaturityRating struct {
	Year          int    `json:"year"`
	MaturityLevel int    `json:"maturity_level"`
	MaturityLabel string `json:"maturity_label"`
	AuditScore    int    `json:"audit_score"`
}

// MaturityLabel returns the label for level, or "" when out of range.
func MaturityLabel(level int) string {
	if level < LevelAdHoc || level > LevelOptimized {
		return ""
	}
	return maturityLabels[level]
}

// ClassifyMaturity maps an audit score and Scope 3 availability to a tier.
// The first matching row wins:
//
//	score >= 85 and scope3Present  -> 5 Optimized
//	score >= 70                    -> 4 Managed
//	score >= 50                    -> 3 Defined
//	score >= 30                    -> 2 Basic
//	otherwise                      -> 1 Ad-hoc
func ClassifyMaturity(year, auditScore int, scope3Present bool) MaturityRating {
	var level int
	switch {
	case auditScore >= MaturityThresholdOptimized && scope3Present:
		level = LevelOptimized
	case auditScore >= MaturityThresholdManaged:
		level = LevelManaged
	case auditScore >= MaturityThresholdDefined:
		level = LevelDefined
	case auditScore >= MaturityThresholdBasic:
		level = LevelBasic
	default:
		level = LevelAdHoc
	}

	return MaturityRating{
		Year:          year,
		MaturityLevel: level,
		MaturityLabel: maturityLabels[level],
		AuditScore:    auditScore,
	}
}
