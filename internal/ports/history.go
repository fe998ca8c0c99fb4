package ports

import (
	"context"

	"github.com/101Room/berezin-dicts/internal/domain"
)

type HistoryRepository interface {
	Append(ctx context.Context, result domain.UploadResult) error
	List(ctx context.Context) ([]domain.UploadResult, error)
}
