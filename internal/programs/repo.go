package programs

import "context"

// Repo defines persistence operations for the program catalog.
type Repo interface {
	List(ctx context.Context, limit, offset int) ([]Program, error)
	GetByID(ctx context.Context, programID string) (Program, error)
	ListSuccessCases(ctx context.Context, programID string) ([]SuccessCase, error)
}
