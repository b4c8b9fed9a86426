// Package urls builds the public paths of the blog pages.
package urls

import (
	"net/url"
	"strconv"
)

const (
	Index         = "/"
	PostCreate    = "/posts/create/"
	ProfileEdit   = "/profile/edit/"
	Login         = "/auth/login/"
	Logout        = "/auth/logout/"
	Registration  = "/auth/registration/"
	commentAnchor = "#comments"
)

func post(id uint) string { return "/posts/" + strconv.FormatUint(uint64(id), 10) + "/" }

func PostDetail(id uint) string { return post(id) }

// PostComments points at the comment list of a post.
func PostComments(id uint) string { return post(id) + commentAnchor }

func PostEdit(id uint) string    { return post(id) + "edit/" }
func PostDelete(id uint) string  { return post(id) + "delete/" }
func PostComment(id uint) string { return post(id) + "comment/" }

func CommentEdit(postID, commentID uint) string {
	return post(postID) + "edit_comment/" + strconv.FormatUint(uint64(commentID), 10) + "/"
}

func CommentDelete(postID, commentID uint) string {
	return post(postID) + "delete_comment/" + strconv.FormatUint(uint64(commentID), 10) + "/"
}

func Category(slug string) string { return "/category/" + url.PathEscape(slug) + "/" }

func Profile(username string) string { return "/profile/" + url.PathEscape(username) + "/" }

// Page appends a page number to a listing path.
func Page(path string, n int) string {
	return path + "?page=" + strconv.Itoa(n)
}
