package category_test

import (
	"testing"

	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/modules/content/category"
	"github.com/blogicum/core/internal/pkg/testdb"
	"github.com/stretchr/testify/require"
)

func validDTO(slug string) *category.CreateCategoryDTO {
	return &category.CreateCategoryDTO{Title: "Travel", Description: "Trips", Slug: slug, IsPublished: true}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	db := testdb.New(t)
	svc := category.NewService(db)

	_, err := svc.Create(validDTO("travel"))
	require.NoError(t, err)

	_, err = svc.Create(validDTO("travel"))
	require.ErrorIs(t, err, category.ErrSlugTaken)

	var count int64
	require.NoError(t, db.Model(&models.CategoryModel{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestCreateValidates(t *testing.T) {
	db := testdb.New(t)
	svc := category.NewService(db)

	tests := []struct {
		name string
		dto  *category.CreateCategoryDTO
	}{
		{name: "bad slug", dto: validDTO("no spaces")},
		{name: "missing title", dto: &category.CreateCategoryDTO{Description: "d", Slug: "s"}},
		{name: "missing description", dto: &category.CreateCategoryDTO{Title: "t", Slug: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.dto)
			require.Error(t, err)
		})
	}
}

func TestGetPublishedBySlug(t *testing.T) {
	db := testdb.New(t)
	svc := category.NewService(db)
	testdb.Category(t, db, "open", true)
	testdb.Category(t, db, "hidden", false)

	cat, err := svc.GetPublishedBySlug("open")
	require.NoError(t, err)
	require.Equal(t, "open", cat.Slug)

	_, err = svc.GetPublishedBySlug("hidden")
	require.ErrorIs(t, err, category.ErrNotFound)

	_, err = svc.GetPublishedBySlug("missing")
	require.ErrorIs(t, err, category.ErrNotFound)
}

func TestSetPublishedAndDelete(t *testing.T) {
	db := testdb.New(t)
	svc := category.NewService(db)
	cat := testdb.Category(t, db, "news", true)
	author := testdb.User(t, db, "alice")
	p := testdb.Post(t, db, author, cat, "hello")

	require.NoError(t, svc.SetPublished("news", false))
	_, err := svc.GetPublishedBySlug("news")
	require.ErrorIs(t, err, category.ErrNotFound)
	require.ErrorIs(t, svc.SetPublished("missing", true), category.ErrNotFound)

	require.NoError(t, svc.Delete(cat.ID))
	var stored models.PostModel
	require.NoError(t, db.First(&stored, p.ID).Error)
	require.Nil(t, stored.CategoryID)

	exists, err := svc.Exists(cat.ID)
	require.NoError(t, err)
	require.False(t, exists)
}
