package billing

import (
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
)

// competencyLayout is the month key format used to deduplicate billing runs
const competencyLayout = "2006-01"

// Competency identifies the month a recurring charge bills
type Competency struct {
	Year  int
	Month time.Month
}

// ParseCompetency parses a "YYYY-MM" competency key
func ParseCompetency(value string) (Competency, error) {
	t, err := time.Parse(competencyLayout, value)
	if err != nil {
		return Competency{}, shared.NewDomainError("INVALID_COMPETENCY", fmt.Sprintf("Invalid competency %q, expected YYYY-MM", value))
	}
	return Competency{Year: t.Year(), Month: t.Month()}, nil
}

// CompetencyOf returns the competency of a point in time
func CompetencyOf(t time.Time) Competency {
	return Competency{Year: t.Year(), Month: t.Month()}
}

// String formats the competency as "YYYY-MM"
func (c Competency) String() string {
	return fmt.Sprintf("%04d-%02d", c.Year, int(c.Month))
}

// Next returns the following month
func (c Competency) Next() Competency {
	t := time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return Competency{Year: t.Year(), Month: t.Month()}
}

// DaysInMonth returns the number of days in the competency month
func (c Competency) DaysInMonth() int {
	return time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// DueDate resolves the due date for a configured day of month, clamping to
// the last day when the month is shorter (day 31 in February yields Feb 28/29)
func (c Competency) DueDate(dueDay int) time.Time {
	if dueDay < 1 {
		dueDay = 1
	}
	if last := c.DaysInMonth(); dueDay > last {
		dueDay = last
	}
	return time.Date(c.Year, c.Month, dueDay, 0, 0, 0, 0, time.UTC)
}
