package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"userextra/internal/model"
	"userextra/internal/repository"
	"userextra/internal/storage"
)

var (
	ErrNotFound     = errors.New("user extra not found")
	ErrIDExists     = errors.New("a new user extra cannot already have an id")
	ErrIDNull       = errors.New("id is required")
	ErrIDInvalid    = errors.New("id in path does not match id in body")
	ErrUserTaken    = errors.New("user already has a user extra")
	ErrReaderNil    = errors.New("reader is nil")
	ErrInvalidSide  = errors.New("image side must be front or back")
	ErrImageMissing = errors.New("image is not set")
)

// ImageSide selects one of the two image references of a record.
type ImageSide string

const (
	FrontSide ImageSide = "front"
	BackSide  ImageSide = "back"
)

// ParseImageSide validates a side coming from a URL segment.
func ParseImageSide(s string) (ImageSide, error) {
	switch ImageSide(s) {
	case FrontSide, BackSide:
		return ImageSide(s), nil
	}
	return "", ErrInvalidSide
}

func (s ImageSide) prefix() string { return string(s) + "-images" }

// ImageUpload is one uploaded file as received from a multipart form.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// UserExtraService defines the use cases for managing user extras and their images.
type UserExtraService interface {
	// Create stores a new record. The record must not carry an ID.
	Create(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error)

	// Update replaces the record identified by id; e.ID must be set and equal id.
	Update(ctx context.Context, id int64, e *model.UserExtra) (*model.UserExtra, error)

	// PartialUpdate applies only the non-nil image fields of e to the stored record.
	PartialUpdate(ctx context.Context, id int64, e *model.UserExtra) (*model.UserExtra, error)

	// List returns records ordered by id. A zero limit returns all of them.
	List(ctx context.Context, limit, offset int) ([]model.UserExtra, error)

	// Get returns a single record by its ID.
	Get(ctx context.Context, id int64) (*model.UserExtra, error)

	// Delete removes the record and its stored images.
	Delete(ctx context.Context, id int64) error

	// UploadImages stores both images and points the record at them,
	// removing the uploaded objects again if the record cannot be saved.
	UploadImages(ctx context.Context, id int64, front, back ImageUpload) (*model.UserExtra, error)

	// ImageURL returns a presigned download URL for one of the record's images.
	ImageURL(ctx context.Context, id int64, side ImageSide) (string, error)
}

type userExtraService struct {
	store         storage.Storage
	repo          repository.UserExtraRepository
	presignExpiry time.Duration
}

// NewUserExtraService constructs a new UserExtraService.
func NewUserExtraService(store storage.Storage, repo repository.UserExtraRepository, presignExpiry time.Duration) UserExtraService {
	return &userExtraService{store: store, repo: repo, presignExpiry: presignExpiry}
}

func (s *userExtraService) Create(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	if e.ID != nil {
		return nil, ErrIDExists
	}
	if err := s.checkUserFree(ctx, e, 0); err != nil {
		return nil, err
	}
	saved, err := s.repo.Create(ctx, e)
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrUserTaken
	}
	return saved, err
}

func (s *userExtraService) Update(ctx context.Context, id int64, e *model.UserExtra) (*model.UserExtra, error) {
	if err := s.checkUpdatable(ctx, id, e); err != nil {
		return nil, err
	}
	if err := s.checkUserFree(ctx, e, id); err != nil {
		return nil, err
	}
	return s.save(ctx, e)
}

func (s *userExtraService) PartialUpdate(ctx context.Context, id int64, e *model.UserExtra) (*model.UserExtra, error) {
	if err := s.checkUpdatable(ctx, id, e); err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.FrontImage != nil {
		existing.FrontImage = e.FrontImage
	}
	if e.BackImage != nil {
		existing.BackImage = e.BackImage
	}
	return s.save(ctx, existing)
}

func (s *userExtraService) List(ctx context.Context, limit, offset int) ([]model.UserExtra, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
}

func (s *userExtraService) Get(ctx context.Context, id int64) (*model.UserExtra, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Delete removes stored images first; if that fails the row is kept so the references are not lost.
func (s *userExtraService) Delete(ctx context.Context, id int64) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	for _, key := range []*string{e.FrontImage, e.BackImage} {
		if key == nil || *key == "" {
			continue
		}
		if err := s.store.Delete(ctx, *key); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *userExtraService) UploadImages(ctx context.Context, id int64, front, back ImageUpload) (*model.UserExtra, error) {
	if front.Reader == nil || back.Reader == nil {
		return nil, ErrReaderNil
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	frontKey, err := s.putImage(ctx, FrontSide, front)
	if err != nil {
		return nil, err
	}
	backKey, err := s.putImage(ctx, BackSide, back)
	if err != nil {
		return nil, s.rollback(ctx, err, frontKey)
	}

	prevFront, prevBack := existing.FrontImage, existing.BackImage
	existing.FrontImage = &frontKey
	existing.BackImage = &backKey

	saved, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, s.rollback(ctx, fmt.Errorf("db save failed: %w", err), frontKey, backKey)
	}

	// Replaced objects are orphans now; a failed cleanup does not undo the upload.
	for _, prev := range []*string{prevFront, prevBack} {
		if prev != nil && *prev != "" {
			_ = s.store.Delete(ctx, *prev)
		}
	}
	return saved, nil
}

func (s *userExtraService) ImageURL(ctx context.Context, id int64, side ImageSide) (string, error) {
	if _, err := ParseImageSide(string(side)); err != nil {
		return "", err
	}
	e, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	key := e.FrontImage
	if side == BackSide {
		key = e.BackImage
	}
	if key == nil || *key == "" {
		return "", ErrImageMissing
	}
	return s.store.PresignGet(ctx, *key, s.presignExpiry)
}

func (s *userExtraService) checkUpdatable(ctx context.Context, id int64, e *model.UserExtra) error {
	if e.ID == nil {
		return ErrIDNull
	}
	if *e.ID != id {
		return ErrIDInvalid
	}
	ok, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// checkUserFree enforces the one-record-per-user rule; self is the record being updated, 0 on create.
func (s *userExtraService) checkUserFree(ctx context.Context, e *model.UserExtra, self int64) error {
	if e.User == nil {
		return nil
	}
	owner, err := s.repo.FindByUserID(ctx, e.User.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if owner.ID != nil && *owner.ID != self {
		return ErrUserTaken
	}
	return nil
}

func (s *userExtraService) save(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	saved, err := s.repo.Update(ctx, e)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return nil, ErrUserTaken
	}
	return saved, err
}

// putImage stores one upload under <side>-images/<uuid><ext> and returns the key.
func (s *userExtraService) putImage(ctx context.Context, side ImageSide, up ImageUpload) (string, error) {
	key := filepath.ToSlash(filepath.Join(side.prefix(), uuid.New().String()+filepath.Ext(up.Filename)))
	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	info, err := s.store.Put(ctx, key, up.Reader, storage.PutObjectOptions{
		Size:        up.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": up.Filename,
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload %s image to storage: %w", side, err)
	}
	return info.Key, nil
}

func (s *userExtraService) rollback(ctx context.Context, cause error, keys ...string) error {
	for _, key := range keys {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return fmt.Errorf("%w; rollback delete failed: %v", cause, delErr)
		}
	}
	return cause
}
