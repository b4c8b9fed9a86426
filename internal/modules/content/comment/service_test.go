package comment_test

import (
	"testing"
	"time"

	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/modules/content/comment"
	"github.com/blogicum/core/internal/pkg/testdb"
	"github.com/stretchr/testify/require"
)

func TestListForPostOldestFirst(t *testing.T) {
	db := testdb.New(t)
	svc := comment.NewService(db)
	alice := testdb.User(t, db, "alice")
	open := testdb.Category(t, db, "open", true)
	p := testdb.Post(t, db, alice, open, "post")
	other := testdb.Post(t, db, alice, open, "other")

	now := time.Now()
	for i, text := range []string{"second", "first", "third"} {
		offsets := []time.Duration{-2 * time.Minute, -3 * time.Minute, -time.Minute}
		cm := &models.CommentModel{PostID: p.ID, AuthorID: alice.ID, Text: text, CreatedAt: now.Add(offsets[i])}
		require.NoError(t, db.Create(cm).Error)
	}
	testdb.Comment(t, db, other, alice, "elsewhere")

	comments, err := svc.ListForPost(p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	require.Equal(t, "first", comments[0].Text)
	require.Equal(t, "second", comments[1].Text)
	require.Equal(t, "third", comments[2].Text)
	require.Equal(t, "alice", comments[0].Author.Username)
}

func TestGetChecksPost(t *testing.T) {
	db := testdb.New(t)
	svc := comment.NewService(db)
	alice := testdb.User(t, db, "alice")
	open := testdb.Category(t, db, "open", true)
	p := testdb.Post(t, db, alice, open, "post")
	other := testdb.Post(t, db, alice, open, "other")
	cm := testdb.Comment(t, db, p, alice, "hi")

	got, err := svc.Get(p.ID, cm.ID)
	require.NoError(t, err)
	require.Equal(t, "hi", got.Text)

	_, err = svc.Get(other.ID, cm.ID)
	require.ErrorIs(t, err, comment.ErrNotFound)
}

func TestCreateUpdateDelete(t *testing.T) {
	db := testdb.New(t)
	svc := comment.NewService(db)
	alice := testdb.User(t, db, "alice")
	open := testdb.Category(t, db, "open", true)
	p := testdb.Post(t, db, alice, open, "post")

	_, err := svc.Create(p.ID, alice.ID, "   ")
	require.ErrorIs(t, err, comment.ErrEmptyText)

	cm, err := svc.Create(p.ID, alice.ID, " hello ")
	require.NoError(t, err)
	require.Equal(t, "hello", cm.Text)

	require.ErrorIs(t, svc.Update(cm, ""), comment.ErrEmptyText)
	require.NoError(t, svc.Update(cm, "edited"))

	stored, err := svc.Get(p.ID, cm.ID)
	require.NoError(t, err)
	require.Equal(t, "edited", stored.Text)
	require.Equal(t, alice.ID, stored.AuthorID)

	require.NoError(t, svc.Delete(cm))
	require.ErrorIs(t, svc.Delete(cm), comment.ErrNotFound)
}
