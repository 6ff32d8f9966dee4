package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"video-sharing/pkg/database"
	"video-sharing/pkg/logger"
	"video-sharing/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(logger.Discard(), db)
}

func createUser(t *testing.T, s *Store, name string) *models.User {
	t.Helper()
	user := &models.User{Username: name, Password: "x"}
	require.NoError(t, s.Users.Create(user))
	return user
}

func createVideo(t *testing.T, s *Store, owner, title string, at time.Time) *models.Video {
	t.Helper()
	video := &models.Video{
		Title:     title,
		OwnerID:   owner,
		FileURL:   "/uploads/" + title,
		CreatedAt: at,
		Hashtags:  models.Hashtags{"#t"},
	}
	require.NoError(t, s.Publish(video))
	return video
}

func TestPublishAppendsToOwner(t *testing.T) {
	s := newTestStore(t)
	user := createUser(t, s, "alice")

	first := createVideo(t, s, user.ID, "first", time.Now())
	second := createVideo(t, s, user.ID, "second", time.Now())
	require.NotEmpty(t, first.ID)

	got, err := s.Users.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, got.Videos)

	stored, err := s.Videos.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.OwnerID)
	assert.Equal(t, models.Hashtags{"#t"}, stored.Hashtags)
	assert.Zero(t, stored.Meta.Views)
}

func TestPublishUnknownOwnerRollsBack(t *testing.T) {
	s := newTestStore(t)

	video := &models.Video{Title: "orphan", OwnerID: "nobody", FileURL: "/uploads/x"}
	err := s.Publish(video)
	assert.ErrorIs(t, err, models.ErrNotFound)

	all, err := s.Videos.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	user := createUser(t, s, "alice")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	createVideo(t, s, user.ID, "old", base)
	createVideo(t, s, user.ID, "new", base.Add(2*time.Hour))
	createVideo(t, s, user.ID, "mid", base.Add(time.Hour))

	videos, err := s.Videos.List()
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, "new", videos[0].Title)
	assert.Equal(t, "mid", videos[1].Title)
	assert.Equal(t, "old", videos[2].Title)
}

func TestSearchIsLiteralAndCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	user := createUser(t, s, "alice")
	now := time.Now()

	createVideo(t, s, user.ID, "Intro a.b* part", now)
	createVideo(t, s, user.ID, "axxb part", now)
	createVideo(t, s, user.ID, "100% Jazz", now)
	createVideo(t, s, user.ID, "1000 jazz", now)
	createVideo(t, s, user.ID, "snake_case", now)
	createVideo(t, s, user.ID, "snakeXcase", now)
	createVideo(t, s, user.ID, "wow!", now)

	titles := func(keyword string) []string {
		videos, err := s.Videos.Search(keyword)
		require.NoError(t, err)
		var out []string
		for _, v := range videos {
			out = append(out, v.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Intro a.b* part"}, titles("a.b*"))
	assert.Equal(t, []string{"100% Jazz"}, titles("100%"))
	assert.Equal(t, []string{"snake_case"}, titles("e_c"))
	assert.Equal(t, []string{"wow!"}, titles("w!"))
	assert.ElementsMatch(t, []string{"100% Jazz", "1000 jazz"}, titles("JAZZ"))
	assert.Empty(t, titles("nothing like this"))
}

func TestSearchFoldsUnicodeCase(t *testing.T) {
	s := newTestStore(t)
	user := createUser(t, s, "alice")
	now := time.Now()

	createVideo(t, s, user.ID, "Éclair Tutorial", now)
	createVideo(t, s, user.ID, "Über Jazz", now)
	createVideo(t, s, user.ID, "ÇA VA", now)

	titles := func(keyword string) []string {
		videos, err := s.Videos.Search(keyword)
		require.NoError(t, err)
		var out []string
		for _, v := range videos {
			out = append(out, v.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Éclair Tutorial"}, titles("Éclair"))
	assert.Equal(t, []string{"Éclair Tutorial"}, titles("éCLAIR"))
	assert.Equal(t, []string{"Über Jazz"}, titles("über"))
	assert.Equal(t, []string{"ÇA VA"}, titles("ça"))
}

func TestOwnerProjection(t *testing.T) {
	s := newTestStore(t)
	user := createUser(t, s, "alice")
	video := createVideo(t, s, user.ID, "clip", time.Now())

	owner, err := s.Videos.Owner(video.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, owner)

	_, err = s.Videos.Owner("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateLeavesImmutableFields(t *testing.T) {
	s := newTestStore(t)
	user := createUser(t, s, "alice")
	video := createVideo(t, s, user.ID, "clip", time.Now())
	require.NoError(t, s.Videos.IncrementViews(video.ID))

	require.NoError(t, s.Videos.Update(video.ID, "renamed", "", models.Hashtags{"#jazz"}))

	got, err := s.Videos.Get(video.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "", got.Description)
	assert.Equal(t, models.Hashtags{"#jazz"}, got.Hashtags)
	assert.Equal(t, user.ID, got.OwnerID)
	assert.Equal(t, video.FileURL, got.FileURL)
	assert.EqualValues(t, 1, got.Meta.Views)

	require.NoError(t, s.Videos.Update(video.ID, "renamed", "", models.Hashtags{"#jazz"}), "an update with no changes still succeeds")
}

func TestDeleteAndIncrementMissing(t *testing.T) {
	s := newTestStore(t)
	user := createUser(t, s, "alice")
	video := createVideo(t, s, user.ID, "clip", time.Now())

	require.NoError(t, s.Videos.Delete(video.ID))
	assert.ErrorIs(t, s.Videos.Delete(video.ID), models.ErrNotFound)
	assert.ErrorIs(t, s.Videos.IncrementViews(video.ID), models.ErrNotFound)
	assert.ErrorIs(t, s.Videos.Update(video.ID, "t", "", nil), models.ErrNotFound)

	_, err := s.Videos.Get(video.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// the owner's list keeps the dangling id
	got, err := s.Users.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{video.ID}, got.Videos)

	found, err := s.Videos.GetMany(got.Videos)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	err := s.Users.Create(&models.User{Username: "alice", Password: "y"})
	assert.True(t, errors.Is(err, ErrUsernameTaken))

	byName, err := s.Users.GetByUsername("bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, byName.ID)

	_, err = s.Users.GetByUsername("carol")
	assert.ErrorIs(t, err, models.ErrNotFound)

	many, err := s.Users.GetMany([]string{alice.ID, bob.ID, "ghost"})
	require.NoError(t, err)
	assert.Len(t, many, 2)
	assert.Equal(t, "alice", many[alice.ID].Username)

	assert.ErrorIs(t, s.Users.AppendVideo("ghost", "v"), models.ErrNotFound)
}

func TestClosedDatabaseIsUnavailable(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.db.Close())

	_, err := s.Videos.List()
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)

	_, err = s.Videos.Get("any")
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}
