// Package usage tracks per-user analysis quota by plan.
package usage

import "time"

// Plan names. Guests get the smallest allowance.
const (
	PlanGuest = "guest"
	PlanFree  = "free"
	PlanPro   = "pro"
)

// PlanLimit returns the monthly analysis allowance for a plan.
func PlanLimit(plan string) int {
	switch plan {
	case PlanPro:
		return 100
	case PlanFree:
		return 10
	default:
		return 3
	}
}

// Record is one user's quota window.
type Record struct {
	UserID   string    `json:"userId"`
	Plan     string    `json:"plan"`
	Limit    int       `json:"limit"`
	Used     int       `json:"used"`
	ResetsAt time.Time `json:"resetsAt"`
}

// Remaining reports the analyses left in the current window.
func (r Record) Remaining() int {
	if r.Used >= r.Limit {
		return 0
	}
	return r.Limit - r.Used
}
