package videos

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"video-sharing/pkg/logger"
	"video-sharing/pkg/models"
)

type VideoStore interface {
	Get(id string) (*models.Video, error)
	Owner(id string) (string, error)
	GetMany(ids []string) (map[string]*models.Video, error)
	List() ([]models.Video, error)
	Search(keyword string) ([]models.Video, error)
	Update(id string, title, description string, hashtags models.Hashtags) error
	Delete(id string) error
	IncrementViews(id string) error
}

type UserStore interface {
	Get(id string) (*models.User, error)
	GetMany(ids []string) (map[string]*models.User, error)
}

// Publisher stores a new video and appends it to its owner's list.
type Publisher interface {
	Publish(video *models.Video) error
}

type Service struct {
	log       *logger.Logger
	videos    VideoStore
	users     UserStore
	publisher Publisher

	now func() time.Time
}

func NewService(log *logger.Logger, videos VideoStore, users UserStore, publisher Publisher) *Service {
	return &Service{
		log:       log,
		videos:    videos,
		users:     users,
		publisher: publisher,
		now:       time.Now,
	}
}

// Authorize reports whether caller owns video. It returns ErrNotFound for a
// nil video and ErrForbidden for anyone but the owner, including the
// anonymous caller "".
func (s *Service) Authorize(video *models.Video, caller string) error {
	if video == nil {
		return ErrNotFound
	}
	return authorizeOwner(video.OwnerID, caller)
}

func authorizeOwner(owner, caller string) error {
	if caller == "" || canonicalID(owner) != canonicalID(caller) {
		return ErrForbidden
	}
	return nil
}

// canonicalID brings both sides of an ownership check to one form. UUIDs
// compare in their lowercase hyphenated form.
func canonicalID(id string) string {
	id = strings.TrimSpace(id)
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

// ListAll returns the whole catalog, newest first, with owners resolved.
func (s *Service) ListAll() ([]models.Video, error) {
	videos, err := s.videos.List()
	if err != nil {
		return nil, err
	}
	return s.withAuthors(videos)
}

// Search matches keyword against titles as a case-insensitive literal
// substring, spaces included. A blank keyword yields no results rather than
// the catalog.
func (s *Service) Search(keyword string) ([]models.Video, error) {
	if strings.TrimSpace(keyword) == "" {
		return []models.Video{}, nil
	}

	videos, err := s.videos.Search(keyword)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(videos)
}

func (s *Service) GetByID(id string) (*models.Video, error) {
	video, err := s.videos.Get(id)
	if err != nil {
		return nil, err
	}

	resolved, err := s.withAuthors([]models.Video{*video})
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

func (s *Service) Create(owner, title, description, hashtagsText, mediaRef string) (*models.Video, error) {
	if owner == "" {
		return nil, ErrForbidden
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Message: "Video validation failed: title is required."}
	}
	if mediaRef == "" {
		return nil, &ValidationError{Message: "Video validation failed: a video file is required."}
	}

	video := &models.Video{
		Title:       title,
		Description: strings.TrimSpace(description),
		Hashtags:    models.FormatHashtags(hashtagsText),
		OwnerID:     canonicalID(owner),
		FileURL:     mediaRef,
		CreatedAt:   s.now(),
	}

	if err := s.publisher.Publish(video); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("owner %s: %w", owner, ErrNotFound)
		}
		return nil, err
	}

	s.log.Info("video created", slog.String("videoID", video.ID), slog.String("owner", video.OwnerID))
	return video, nil
}

// Update replaces title, description and hashtags. Ownership is checked on
// the owner column alone.
func (s *Service) Update(id, caller, title, description, hashtagsText string) error {
	owner, err := s.videos.Owner(id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(owner, caller); err != nil {
		s.log.Warn("update denied", slog.String("videoID", id), slog.String("caller", caller))
		return err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return &ValidationError{Message: "Video validation failed: title is required."}
	}

	return s.videos.Update(id, title, strings.TrimSpace(description), models.FormatHashtags(hashtagsText))
}

// Delete removes the video. Its id stays in the owner's list.
func (s *Service) Delete(id, caller string) error {
	video, err := s.videos.Get(id)
	if err != nil {
		return err
	}
	if err := s.Authorize(video, caller); err != nil {
		s.log.Warn("delete denied", slog.String("videoID", id), slog.String("caller", caller))
		return err
	}

	if err := s.videos.Delete(id); err != nil {
		return err
	}
	s.log.Info("video deleted", slog.String("videoID", id), slog.String("owner", video.OwnerID))
	return nil
}

// RegisterView counts one view. Anyone may call it, repeatedly.
func (s *Service) RegisterView(id string) error {
	return s.videos.IncrementViews(id)
}

// Channel returns a user and the videos it published, in publishing order.
// Ids of deleted videos are skipped.
func (s *Service) Channel(userID string) (*models.User, []models.Video, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, nil, err
	}

	found, err := s.videos.GetMany(user.Videos)
	if err != nil {
		return nil, nil, err
	}

	videos := make([]models.Video, 0, len(found))
	for _, id := range user.Videos {
		if v, ok := found[id]; ok {
			v.Author = user
			videos = append(videos, *v)
		}
	}
	return user, videos, nil
}

func (s *Service) withAuthors(videos []models.Video) ([]models.Video, error) {
	if len(videos) == 0 {
		return videos, nil
	}

	seen := make(map[string]bool)
	var ids []string
	for _, v := range videos {
		if !seen[v.OwnerID] {
			seen[v.OwnerID] = true
			ids = append(ids, v.OwnerID)
		}
	}

	authors, err := s.users.GetMany(ids)
	if err != nil {
		return nil, err
	}
	for i := range videos {
		videos[i].Author = authors[videos[i].OwnerID]
	}
	return videos, nil
}
