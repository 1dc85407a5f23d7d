package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/entity"
)

type PostService struct {
	posts  PostGateway
	logger *zap.Logger
}

func NewPostService(posts PostGateway, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{posts: posts, logger: logger}
}

// PostFilter narrows the post list. Empty fields match everything.
type PostFilter struct {
	Query  string
	Status entity.PostStatus
}

func (s *PostService) List(ctx context.Context, filter PostFilter) ([]entity.Post, error) {
	posts, err := s.posts.ListPosts(ctx)
	if err != nil {
		return nil, remoteFailure("carregar posts", err)
	}
	return FilterPosts(posts, filter), nil
}

// FilterPosts matches Query against title, excerpt and author, case-insensitively.
func FilterPosts(posts []entity.Post, filter PostFilter) []entity.Post {
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]entity.Post, 0, len(posts))
	for _, p := range posts {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Excerpt), q) &&
			!strings.Contains(strings.ToLower(p.Author), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.posts.GetPost(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, notFound("post não encontrado")
		}
		return nil, remoteFailure("carregar post", err)
	}
	return p, nil
}

func (s *PostService) Update(ctx context.Context, id string, in entity.PostInput) error {
	var errs []ValidationError
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		errs = append(errs, ValidationError{"title", "is required"})
	}
	if in.CategoryID <= 0 {
		errs = append(errs, ValidationError{"categoryId", "is required"})
	}
	if in.Status == "" {
		in.Status = entity.PostDraft
	}
	if !entity.ValidPostStatus(in.Status) {
		errs = append(errs, ValidationError{"status", "is invalid"})
	}
	if len(errs) > 0 {
		return validationErrors(errs)
	}
	if err := s.posts.UpdatePost(ctx, id, in); err != nil {
		return remoteFailure("salvar post", err)
	}
	s.logger.Info("post updated", zap.String("post_id", id))
	return nil
}

func (s *PostService) SetStatus(ctx context.Context, id string, status entity.PostStatus) error {
	if !entity.ValidPostStatus(status) {
		return validationError(errors.New("status inválido"))
	}
	if err := s.posts.SetPostStatus(ctx, id, status); err != nil {
		return remoteFailure("alterar status do post", err)
	}
	return nil
}

func (s *PostService) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if !confirm.Confirm("Tem certeza que deseja excluir este post?") {
		return false, nil
	}
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return false, remoteFailure("excluir post", err)
	}
	return true, nil
}

func (s *PostService) Categories(ctx context.Context) ([]entity.Category, error) {
	list, err := s.posts.ListCategories(ctx)
	if err != nil {
		return nil, remoteFailure("carregar categorias", err)
	}
	return list, nil
}
