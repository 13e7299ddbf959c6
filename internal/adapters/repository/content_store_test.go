package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/internal/domain/types"
)

func TestTeamStore(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	members := []*model.TeamMember{
		{ID: uuid.NewString(), Name: "Zed", Role: "Member", Department: "Tech", Order: 2},
		{ID: uuid.NewString(), Name: "Ria", Role: "President", Department: "Core", Order: 0},
		{ID: uuid.NewString(), Name: "Bob", Role: "Tech Lead", Department: "Tech", Order: 1},
	}
	for _, m := range members {
		m.Normalize()
		m.SocialMedia = []model.SocialLink{{Platform: "github", URL: "https://github.com/" + m.Name}}
		require.NoError(t, s.Team.Create(ctx, m))
	}

	all, err := s.Team.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ria", all[0].Name)
	assert.Equal(t, "Bob", all[1].Name)
	assert.Equal(t, "https://github.com/Ria", all[0].SocialMedia[0].URL)

	tech, err := s.Team.List(ctx, "tech")
	require.NoError(t, err)
	require.Len(t, tech, 2)

	bob := members[2]
	bob.Year = "2026"
	bob.Order = 0
	require.NoError(t, s.Team.Update(ctx, bob))
	got, err := s.Team.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026", got.Year)
	assert.Equal(t, 0, got.Order)

	require.NoError(t, s.Team.Delete(ctx, bob.ID))
	_, err = s.Team.Get(ctx, bob.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))
	assert.True(t, errors.Is(s.Team.Delete(ctx, bob.ID), model.ErrNotFound))
}

func TestHighlightStore(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	for _, h := range []*model.Highlight{
		{ID: uuid.NewString(), Title: "Issue 1", Type: model.HighlightMagazine, Date: "2025-01-10"},
		{ID: uuid.NewString(), Title: "Hackathon recap", Type: model.HighlightEvent, Date: "2025-03-02"},
		{ID: uuid.NewString(), Title: "Issue 2", Type: model.HighlightMagazine, Date: "2025-04-15"},
	} {
		require.NoError(t, s.Highlights.Create(ctx, h))
	}

	all, err := s.Highlights.List(ctx, HighlightQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Issue 2", all[0].Title)

	mags, err := s.Highlights.List(ctx, HighlightQuery{Type: model.HighlightMagazine, Page: types.Page{Limit: 1}})
	require.NoError(t, err)
	require.Len(t, mags, 1)
	assert.Equal(t, "Issue 2", mags[0].Title)

	h := all[1]
	h.Link = "https://example.com/recap"
	require.NoError(t, s.Highlights.Update(ctx, h))
	got, err := s.Highlights.Get(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/recap", got.Link)

	require.NoError(t, s.Highlights.Delete(ctx, h.ID))
	assert.True(t, errors.Is(s.Highlights.Update(ctx, h), model.ErrNotFound))
}

func TestFeedbackStore(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	var ids []string
	for _, msg := range []string{"first", "second", "third"} {
		f := &model.Feedback{ID: uuid.NewString(), Message: msg, Rating: 4}
		require.NoError(t, s.Feedback.Create(ctx, f))
		ids = append(ids, f.ID)
	}

	items, total, err := s.Feedback.List(ctx, FeedbackQuery{Page: types.Page{Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 2)

	require.NoError(t, s.Feedback.MarkRead(ctx, ids[0], true))
	unread, total, err := s.Feedback.List(ctx, FeedbackQuery{UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, f := range unread {
		assert.NotEqual(t, ids[0], f.ID)
	}

	got, err := s.Feedback.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, got.Read)

	assert.True(t, errors.Is(s.Feedback.MarkRead(ctx, uuid.NewString(), true), model.ErrNotFound))
	require.NoError(t, s.Feedback.Delete(ctx, ids[1]))
	_, total, err = s.Feedback.List(ctx, FeedbackQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestNewDBConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewDBConnection(Settings{Driver: "mysql"})
	assert.True(t, errors.Is(err, ErrUnsupportedDriver))
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate("event", nil))
	err := translate("event", errors.New("UNIQUE constraint failed: events.slug"))
	assert.True(t, errors.Is(err, model.ErrConflict))
	err = translate("event", errors.New("connection refused"))
	assert.Contains(t, err.Error(), "connection refused")
	assert.False(t, errors.Is(err, model.ErrConflict))
}
