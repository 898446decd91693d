package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/baharkarakas/sample-app/internal/api/validate"
	"github.com/baharkarakas/sample-app/internal/metrics"
	"github.com/baharkarakas/sample-app/internal/models"
	repo "github.com/baharkarakas/sample-app/internal/repository"
)

type MicropostService struct {
	r     repo.Microposts
	audit *Auditor
}

func NewMicropostService(r repo.Microposts, audit *Auditor) *MicropostService {
	return &MicropostService{r: r, audit: audit}
}

type micropostInput struct {
	Content string `json:"content" validate:"present,max=140"`
	UserID  int64  `json:"user_id" validate:"required"`
}

func (s *MicropostService) Create(ctx context.Context, userID int64, content string) (models.Micropost, error) {
	in := micropostInput{Content: strings.TrimSpace(content), UserID: userID}
	if err := validate.Struct(in); err != nil {
		return models.Micropost{}, err
	}
	p, err := s.r.Create(ctx, models.Micropost{Content: in.Content, UserID: in.UserID})
	if err != nil {
		return models.Micropost{}, fmt.Errorf("create micropost: %w", err)
	}
	metrics.MicropostsTotal.WithLabelValues("create").Inc()
	return p, nil
}

// Destroy deletes a post owned by actorID.
func (s *MicropostService) Destroy(ctx context.Context, actorID, id int64) error {
	p, err := s.r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != actorID {
		return ErrForbidden
	}
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	metrics.MicropostsTotal.WithLabelValues("destroy").Inc()
	s.audit.Record("micropost", id, "destroyed", map[string]any{"user_id": actorID})
	return nil
}

// ListByUser pages through userID's own posts, newest first.
func (s *MicropostService) ListByUser(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.Micropost], error) {
	return paginate(ctx, page,
		func(ctx context.Context, limit, offset int) ([]models.Micropost, error) {
			return s.r.ListByUser(ctx, userID, limit, offset)
		},
		func(ctx context.Context) (int64, error) { return s.r.CountByUser(ctx, userID) },
	)
}
