package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"video-sharing/pkg/auth"
	"video-sharing/pkg/logger"
	"video-sharing/pkg/media"
	"video-sharing/pkg/repository"
	"video-sharing/pkg/videos"
)

type Handler struct {
	log      *logger.Logger
	videos   *videos.Service
	users    *repository.UsersRepository
	media    media.Store
	tokens   *auth.Tokens
	sessions *auth.Sessions
}

func New(log *logger.Logger, svc *videos.Service, users *repository.UsersRepository, store media.Store, tokens *auth.Tokens, sessions *auth.Sessions) *Handler {
	return &Handler{
		log:      log,
		videos:   svc,
		users:    users,
		media:    store,
		tokens:   tokens,
		sessions: sessions,
	}
}

func (h *Handler) Routes(r *gin.Engine) {
	r.Use(auth.Identify(h.tokens, h.sessions))

	r.GET("/", h.Home)
	r.GET("/search", h.Search)
	r.POST("/join", h.Join)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	r.GET("/users/:id", h.Channel)

	v := r.Group("/videos")
	{
		v.GET("", h.Home)
		v.GET("/:id", h.Watch)

		owned := v.Group("", auth.RequireIdentity())
		owned.POST("/upload", h.Upload)
		owned.GET("/:id/edit", h.GetEdit)
		owned.POST("/:id/edit", h.PostEdit)
		owned.POST("/:id/delete", h.DeleteVideo)
	}

	r.POST("/api/videos/:id/view", h.RegisterView)

	if fs, ok := h.media.(*media.FSStore); ok {
		r.Static("/uploads", fs.Dir())
	}
}

// respondError maps core failures onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var vErr *videos.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.Is(err, videos.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found."})
	case errors.Is(err, videos.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of the video."})
	case errors.Is(err, videos.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage is unavailable, try again later."})
	default:
		h.log.Error("unhandled request error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
