package services

import (
	"context"

	"github.com/baharkarakas/sample-app/internal/models"
)

// paginate runs a list query and its count for one page.
func paginate[T any](
	ctx context.Context,
	req models.PageRequest,
	list func(ctx context.Context, limit, offset int) ([]T, error),
	count func(ctx context.Context) (int64, error),
) (models.Page[T], error) {
	req = req.Normalize()
	items, err := list(ctx, req.Limit(), req.Offset())
	if err != nil {
		return models.Page[T]{}, err
	}
	total, err := count(ctx)
	if err != nil {
		return models.Page[T]{}, err
	}
	return models.Page[T]{Items: items, Page: req.Page, PerPage: req.PerPage, Total: total}, nil
}
