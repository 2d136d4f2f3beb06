package programs

import (
	"context"
	"errors"
)

// Service contains read logic for the program catalog.
type Service struct {
	Repo Repo
}

// List returns the catalog page.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Program, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Get returns one program.
func (s *Service) Get(ctx context.Context, programID string) (Program, error) {
	if programID == "" {
		return Program{}, errors.New("programID is required")
	}
	return s.Repo.GetByID(ctx, programID)
}

// SuccessCases returns the success cases for a program.
func (s *Service) SuccessCases(ctx context.Context, programID string) ([]SuccessCase, error) {
	if programID == "" {
		return nil, errors.New("programID is required")
	}
	return s.Repo.ListSuccessCases(ctx, programID)
}
