package analyses

import "context"

type Repo interface {
	Create(ctx context.Context, a Analysis) error
	Update(ctx context.Context, a Analysis) error
	GetByID(ctx context.Context, userID, id string) (Analysis, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error)
}
