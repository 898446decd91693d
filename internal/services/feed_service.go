package services

import (
	"context"

	"github.com/baharkarakas/sample-app/internal/models"
	repo "github.com/baharkarakas/sample-app/internal/repository"
)

type FeedService struct {
	r repo.Microposts
}

func NewFeedService(r repo.Microposts) *FeedService { return &FeedService{r: r} }

// Feed returns userID's own posts together with posts of everyone userID
// follows, newest first.
func (s *FeedService) Feed(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.Micropost], error) {
	return paginate(ctx, page,
		func(ctx context.Context, limit, offset int) ([]models.Micropost, error) {
			return s.r.Feed(ctx, userID, limit, offset)
		},
		func(ctx context.Context) (int64, error) { return s.r.CountFeed(ctx, userID) },
	)
}
