package companies

import "context"

type Repo interface {
	Create(ctx context.Context, c Company) error
	Update(ctx context.Context, c Company) error
	GetByID(ctx context.Context, userID, id string) (Company, error)
	ListByUser(ctx context.Context, userID string) ([]Company, error)
	Delete(ctx context.Context, userID, id string) error
}
