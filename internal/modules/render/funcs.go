package render

import (
	"html/template"
	"strconv"
	"time"

	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/modules/content/post"
	"github.com/blogicum/core/internal/modules/processing/markdown"
	"github.com/blogicum/core/internal/pkg/urls"
)

// MediaURLer maps a stored image key to its public address.
type MediaURLer interface {
	URL(key string) string
}

const dateLayout = "2 January 2006, 15:04"

// Funcs is the helper set shared by every page.
func Funcs(media MediaURLer) template.FuncMap {
	return template.FuncMap{
		"markdown": markdown.MustRender,
		"excerpt": func(text string) string {
			return markdown.Excerpt(text, post.ExcerptWords)
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(time.Local).Format(dateLayout)
		},
		"mediaURL": func(key string) string {
			if key == "" || media == nil {
				return ""
			}
			return media.URL(key)
		},
		"idString": func(id uint) string { return strconv.FormatUint(uint64(id), 10) },
		"isAuthor": func(viewer *models.UserModel, authorID uint) bool {
			return viewer != nil && viewer.ID == authorID
		},

		"indexURL":         func() string { return urls.Index },
		"postCreateURL":    func() string { return urls.PostCreate },
		"profileEditURL":   func() string { return urls.ProfileEdit },
		"loginURL":         func() string { return urls.Login },
		"logoutURL":        func() string { return urls.Logout },
		"registrationURL":  func() string { return urls.Registration },
		"postURL":          urls.PostDetail,
		"postCommentsURL":  urls.PostComments,
		"postEditURL":      urls.PostEdit,
		"postDeleteURL":    urls.PostDelete,
		"commentURL":       urls.PostComment,
		"commentEditURL":   urls.CommentEdit,
		"commentDeleteURL": urls.CommentDelete,
		"categoryURL":      urls.Category,
		"profileURL":       urls.Profile,
		"pageURL":          urls.Page,
	}
}
