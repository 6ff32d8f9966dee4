package repository

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jinzhu/gorm"
	"video-sharing/pkg/logger"
	"video-sharing/pkg/models"
)

var ErrUsernameTaken = errors.New("username already taken")

// Store bundles the repositories of one connection or transaction.
type Store struct {
	Users  *UsersRepository
	Videos *VideosRepository

	log *logger.Logger
	db  *gorm.DB
}

func New(log *logger.Logger, db *gorm.DB) *Store {
	return &Store{
		Users:  NewUsers(log, db),
		Videos: NewVideos(log, db),
		log:    log,
		db:     db,
	}
}

// Transaction runs fn against repositories bound to one transaction. It
// commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		s.log.Error("failed to begin transaction", tx.Error)
		return unavailable(tx.Error)
	}

	if err := fn(New(s.log, tx)); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			s.log.Error("failed to roll back transaction", rbErr)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		s.log.Error("failed to commit transaction", err)
		return unavailable(err)
	}
	return nil
}

// Publish inserts video and appends its id to the owner's list atomically.
// ErrNotFound means the owner does not exist; nothing is written then.
func (s *Store) Publish(video *models.Video) error {
	return s.Transaction(func(tx *Store) error {
		if err := tx.Videos.Create(video); err != nil {
			return err
		}
		if err := tx.Users.AppendVideo(video.OwnerID, video.ID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				s.log.Warn("publish for unknown owner", slog.String("owner", video.OwnerID))
			}
			return err
		}
		return nil
	})
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
}
