package repository

import (
	"log/slog"
	"strings"

	"github.com/jinzhu/gorm"
	"video-sharing/pkg/logger"
	"video-sharing/pkg/models"
)

type UsersRepository struct {
	log *logger.Logger
	db  *gorm.DB
}

func NewUsers(log *logger.Logger, db *gorm.DB) *UsersRepository {
	return &UsersRepository{
		log: log,
		db:  db,
	}
}

// Create fails with ErrUsernameTaken when the username already exists.
func (r *UsersRepository) Create(user *models.User) error {
	var count int
	if err := r.db.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		r.log.Error("failed to check username", err, slog.String("username", user.Username))
		return unavailable(err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		r.log.Error("failed to create user", err, slog.String("username", user.Username))
		return unavailable(err)
	}
	return nil
}

// Get loads a user together with its published-videos list.
func (r *UsersRepository) Get(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, r.lookupError("failed to get user", err, slog.String("userID", id))
	}

	ids, err := r.VideoIDs(id)
	if err != nil {
		return nil, err
	}
	user.Videos = ids
	return &user, nil
}

func (r *UsersRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, r.lookupError("failed to get user", err, slog.String("username", username))
	}
	return &user, nil
}

// GetMany resolves owners for a page of videos. Missing ids are absent from
// the result.
func (r *UsersRepository) GetMany(ids []string) (map[string]*models.User, error) {
	found := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var users []models.User
	if err := r.db.Where("id IN (?)", ids).Find(&users).Error; err != nil {
		r.log.Error("failed to get users by id", err, slog.Int("count", len(ids)))
		return nil, unavailable(err)
	}
	for i := range users {
		found[users[i].ID] = &users[i]
	}
	return found, nil
}

// VideoIDs returns the user's published-videos list in append order. Ids of
// deleted videos stay in the list.
func (r *UsersRepository) VideoIDs(userID string) ([]string, error) {
	ids := []string{}
	err := r.db.Model(&models.UserVideo{}).
		Where("user_id = ?", userID).
		Order("id asc").
		Pluck("video_id", &ids).Error
	if err != nil {
		r.log.Error("failed to list user videos", err, slog.String("userID", userID))
		return nil, unavailable(err)
	}
	return ids, nil
}

func (r *UsersRepository) AppendVideo(userID, videoID string) error {
	var count int
	if err := r.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		r.log.Error("failed to check user", err, slog.String("userID", userID))
		return unavailable(err)
	}
	if count == 0 {
		return models.ErrNotFound
	}

	entry := models.UserVideo{UserID: userID, VideoID: videoID}
	if err := r.db.Create(&entry).Error; err != nil {
		r.log.Error("failed to append user video", err, slog.String("userID", userID), slog.String("videoID", videoID))
		return unavailable(err)
	}
	return nil
}

func (r *UsersRepository) lookupError(msg string, err error, attr slog.Attr) error {
	if gorm.IsRecordNotFoundError(err) {
		return models.ErrNotFound
	}
	r.log.Error(msg, err, attr)
	return unavailable(err)
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
