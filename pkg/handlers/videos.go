package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"video-sharing/pkg/auth"
	"video-sharing/pkg/media"
	"video-sharing/pkg/videos"
)

type VideoForm struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Hashtags    string `form:"hashtags" json:"hashtags"`
}

func (h *Handler) Home(c *gin.Context) {
	list, err := h.videos.ListAll()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": list})
}

func (h *Handler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	hits, err := h.videos.Search(keyword)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keyword": keyword, "videos": hits})
}

func (h *Handler) Watch(c *gin.Context) {
	video, err := h.videos.GetByID(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": video})
}

func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video file not found in form data"})
		return
	}
	var form VideoForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer src.Close()

	key := media.NewKey(file.Filename)
	fileURL, err := h.media.Save(key, src)
	if err != nil {
		h.log.Error("failed to store media", err, slog.String("key", key))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save uploaded file"})
		return
	}

	video, err := h.videos.Create(auth.Identity(c), form.Title, form.Description, form.Hashtags, fileURL)
	if err != nil {
		if rmErr := h.media.Remove(key); rmErr != nil {
			h.log.Error("failed to remove orphaned media", rmErr, slog.String("key", key))
		}
		// The only missing record on create is the uploader.
		if errors.Is(err, videos.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found."})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "Video uploaded", "video": video})
}

// GetEdit returns the video for its edit form, only to its owner.
func (h *Handler) GetEdit(c *gin.Context) {
	video, err := h.videos.GetByID(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.videos.Authorize(video, auth.Identity(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": video})
}

func (h *Handler) PostEdit(c *gin.Context) {
	var form VideoForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	id := c.Param("id")
	if err := h.videos.Update(id, auth.Identity(c), form.Title, form.Description, form.Hashtags); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Video updated", "id": id})
}

func (h *Handler) DeleteVideo(c *gin.Context) {
	id := c.Param("id")
	if err := h.videos.Delete(id, auth.Identity(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Video deleted", "id": id})
}

func (h *Handler) RegisterView(c *gin.Context) {
	if err := h.videos.RegisterView(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
