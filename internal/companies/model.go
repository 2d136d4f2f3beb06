package companies

import (
	"time"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/matching"
)

// Company is a stored company profile owned by a user.
type Company struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	Name                string    `json:"name"`
	Industry            string    `json:"industry"`
	BusinessDescription string    `json:"businessDescription"`
	EmployeeCount       int       `json:"employeeCount"`
	AnnualRevenue       *int64    `json:"annualRevenue,omitempty"`
	FoundedYear         *int      `json:"foundedYear,omitempty"`
	Strengths           []string  `json:"strengths"`
	Challenges          []string  `json:"challenges"`
	Objectives          []string  `json:"objectives"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Profile converts the record to the scoring core's input shape.
func (c Company) Profile() matching.CompanyProfile {
	return matching.CompanyProfile{
		ID:                  c.ID,
		Name:                c.Name,
		Industry:            c.Industry,
		BusinessDescription: c.BusinessDescription,
		EmployeeCount:       c.EmployeeCount,
		AnnualRevenue:       c.AnnualRevenue,
		FoundedYear:         c.FoundedYear,
		Strengths:           c.Strengths,
		Challenges:          c.Challenges,
		Objectives:          c.Objectives,
	}
}
