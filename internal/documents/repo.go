package documents

import "context"

type Repo interface {
	Create(ctx context.Context, d Document) error
	Update(ctx context.Context, d Document) error
	GetByID(ctx context.Context, userID, id string) (Document, error)
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	Delete(ctx context.Context, userID, id string) error
}
