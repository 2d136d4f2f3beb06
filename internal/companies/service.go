package companies

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateInput is the payload for registering a company profile.
type CreateInput struct {
	Name                string   `json:"name"`
	Industry            string   `json:"industry"`
	BusinessDescription string   `json:"businessDescription"`
	EmployeeCount       int      `json:"employeeCount"`
	AnnualRevenue       *int64   `json:"annualRevenue"`
	FoundedYear         *int     `json:"foundedYear"`
	Strengths           []string `json:"strengths"`
	Challenges          []string `json:"challenges"`
	Objectives          []string `json:"objectives"`
}

// Service contains CRUD logic for company profiles.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Company, error) {
	if err := validate(in); err != nil {
		return Company{}, err
	}
	now := s.Now().UTC()
	c := Company{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Name:                strings.TrimSpace(in.Name),
		Industry:            strings.TrimSpace(in.Industry),
		BusinessDescription: strings.TrimSpace(in.BusinessDescription),
		EmployeeCount:       in.EmployeeCount,
		AnnualRevenue:       in.AnnualRevenue,
		FoundedYear:         in.FoundedYear,
		Strengths:           cleanList(in.Strengths),
		Challenges:          cleanList(in.Challenges),
		Objectives:          cleanList(in.Objectives),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return Company{}, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, in CreateInput) (Company, error) {
	if err := validate(in); err != nil {
		return Company{}, err
	}
	cur, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return Company{}, err
	}
	cur.Name = strings.TrimSpace(in.Name)
	cur.Industry = strings.TrimSpace(in.Industry)
	cur.BusinessDescription = strings.TrimSpace(in.BusinessDescription)
	cur.EmployeeCount = in.EmployeeCount
	cur.AnnualRevenue = in.AnnualRevenue
	cur.FoundedYear = in.FoundedYear
	cur.Strengths = cleanList(in.Strengths)
	cur.Challenges = cleanList(in.Challenges)
	cur.Objectives = cleanList(in.Objectives)
	cur.UpdatedAt = s.Now().UTC()
	if err := s.Repo.Update(ctx, cur); err != nil {
		return Company{}, err
	}
	return cur, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (Company, error) {
	return s.Repo.GetByID(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]Company, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.Repo.Delete(ctx, userID, id)
}

func validate(in CreateInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if strings.TrimSpace(in.Industry) == "" {
		return fmt.Errorf("%w: industry is required", ErrInvalid)
	}
	if in.EmployeeCount < 0 {
		return fmt.Errorf("%w: employeeCount must not be negative", ErrInvalid)
	}
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
