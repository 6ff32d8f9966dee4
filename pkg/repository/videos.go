package repository

import (
	"log/slog"
	"strings"

	"github.com/jinzhu/gorm"
	"video-sharing/pkg/logger"
	"video-sharing/pkg/models"
)

// likeEscape marks the next pattern character as literal.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

type VideosRepository struct {
	log *logger.Logger
	db  *gorm.DB
}

func NewVideos(log *logger.Logger, db *gorm.DB) *VideosRepository {
	return &VideosRepository{
		log: log,
		db:  db,
	}
}

func (r *VideosRepository) Create(video *models.Video) error {
	if err := r.db.Create(video).Error; err != nil {
		r.log.Error("failed to create video", err, slog.String("owner", video.OwnerID))
		return unavailable(err)
	}
	return nil
}

func (r *VideosRepository) Get(id string) (*models.Video, error) {
	var video models.Video
	if err := r.db.Where("id = ?", id).First(&video).Error; err != nil {
		return nil, r.lookupError("failed to get video", err, id)
	}
	return &video, nil
}

// Owner is the existence check used before updates: it loads only the owner
// column.
func (r *VideosRepository) Owner(id string) (string, error) {
	var video models.Video
	if err := r.db.Select("id, owner").Where("id = ?", id).First(&video).Error; err != nil {
		return "", r.lookupError("failed to check video", err, id)
	}
	return video.OwnerID, nil
}

// GetMany returns the videos that still exist among ids, keyed by id.
func (r *VideosRepository) GetMany(ids []string) (map[string]*models.Video, error) {
	found := make(map[string]*models.Video, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var videos []models.Video
	if err := r.db.Where("id IN (?)", ids).Find(&videos).Error; err != nil {
		r.log.Error("failed to get videos by id", err, slog.Int("count", len(ids)))
		return nil, unavailable(err)
	}
	for i := range videos {
		found[videos[i].ID] = &videos[i]
	}
	return found, nil
}

func (r *VideosRepository) List() ([]models.Video, error) {
	videos := []models.Video{}
	if err := r.db.Order("created_at desc").Find(&videos).Error; err != nil {
		r.log.Error("failed to list videos", err)
		return nil, unavailable(err)
	}
	return videos, nil
}

// Search returns videos whose title contains keyword, ignoring case. The
// keyword is matched literally: LIKE wildcards in it are escaped.
func (r *VideosRepository) Search(keyword string) ([]models.Video, error) {
	pattern := "%" + likeReplacer.Replace(strings.ToLower(keyword)) + "%"

	videos := []models.Video{}
	err := r.db.Where("LOWER(title) LIKE ? ESCAPE '"+likeEscape+"'", pattern).
		Order("created_at desc").
		Find(&videos).Error
	if err != nil {
		r.log.Error("failed to search videos", err, slog.String("keyword", keyword))
		return nil, unavailable(err)
	}
	return videos, nil
}

func (r *VideosRepository) Update(id string, title, description string, hashtags models.Hashtags) error {
	result := r.db.Model(&models.Video{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
			"hashtags":    hashtags,
		})
	if result.Error != nil {
		r.log.Error("failed to update video", result.Error, slog.String("videoID", id))
		return unavailable(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// mysql reports 0 rows for an update that changes nothing.
	var count int
	if err := r.db.Model(&models.Video{}).Where("id = ?", id).Count(&count).Error; err != nil {
		r.log.Error("failed to check updated video", err, slog.String("videoID", id))
		return unavailable(err)
	}
	if count == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *VideosRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Video{})
	if result.Error != nil {
		r.log.Error("failed to delete video", result.Error, slog.String("videoID", id))
		return unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// IncrementViews adds one view in a single UPDATE so concurrent calls never
// lose an increment.
func (r *VideosRepository) IncrementViews(id string) error {
	result := r.db.Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("meta_views", gorm.Expr("meta_views + ?", 1))

	if result.Error != nil {
		r.log.Error("failed to increment views", result.Error, slog.String("videoID", id))
		return unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *VideosRepository) lookupError(msg string, err error, id string) error {
	if gorm.IsRecordNotFoundError(err) {
		return models.ErrNotFound
	}
	r.log.Error(msg, err, slog.String("videoID", id))
	return unavailable(err)
}
