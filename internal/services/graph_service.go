package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/baharkarakas/sample-app/internal/api/validate"
	"github.com/baharkarakas/sample-app/internal/metrics"
	"github.com/baharkarakas/sample-app/internal/models"
	repo "github.com/baharkarakas/sample-app/internal/repository"
)

// GraphService manages directed follow edges between users.
type GraphService struct {
	users repo.Users
	rels  repo.Relationships
}

func NewGraphService(users repo.Users, rels repo.Relationships) *GraphService {
	return &GraphService{users: users, rels: rels}
}

func (s *GraphService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	_, err := s.rels.Find(ctx, followerID, followedID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Follow creates the edge followerID -> followedID, or returns the existing
// one.
func (s *GraphService) Follow(ctx context.Context, followerID, followedID int64) (models.Relationship, error) {
	var errs validate.Errs
	errs = errs.Add(validate.PositiveID("follower_id", followerID))
	errs = errs.Add(validate.PositiveID("followed_id", followedID))
	if err := errs.OrNil(); err != nil {
		return models.Relationship{}, err
	}
	if _, err := s.users.GetByID(ctx, followedID); err != nil {
		return models.Relationship{}, err
	}

	rel, err := s.rels.Create(ctx, followerID, followedID)
	if err != nil {
		return models.Relationship{}, fmt.Errorf("follow %d: %w", followedID, err)
	}
	metrics.RelationshipsTotal.WithLabelValues("follow").Inc()
	return rel, nil
}

// Unfollow removes the edge if present.
func (s *GraphService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	removed, err := s.rels.Delete(ctx, followerID, followedID)
	if err != nil {
		return fmt.Errorf("unfollow %d: %w", followedID, err)
	}
	if removed {
		metrics.RelationshipsTotal.WithLabelValues("unfollow").Inc()
	}
	return nil
}

// UnfollowByRelationship removes an edge by id on behalf of its follower and
// returns the id of the user that was unfollowed.
func (s *GraphService) UnfollowByRelationship(ctx context.Context, actorID, relationshipID int64) (int64, error) {
	rel, err := s.rels.GetByID(ctx, relationshipID)
	if err != nil {
		return 0, err
	}
	if rel.FollowerID != actorID {
		return 0, ErrNotFound
	}
	if err := s.Unfollow(ctx, rel.FollowerID, rel.FollowedID); err != nil {
		return 0, err
	}
	return rel.FollowedID, nil
}

// Following lists the users userID follows, in the order they were followed.
func (s *GraphService) Following(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.User], error) {
	return paginate(ctx, page,
		func(ctx context.Context, limit, offset int) ([]models.User, error) {
			return s.rels.Following(ctx, userID, limit, offset)
		},
		func(ctx context.Context) (int64, error) { return s.rels.CountFollowing(ctx, userID) },
	)
}

// Followers lists the users following userID.
func (s *GraphService) Followers(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.User], error) {
	return paginate(ctx, page,
		func(ctx context.Context, limit, offset int) ([]models.User, error) {
			return s.rels.Followers(ctx, userID, limit, offset)
		},
		func(ctx context.Context) (int64, error) { return s.rels.CountFollowers(ctx, userID) },
	)
}
