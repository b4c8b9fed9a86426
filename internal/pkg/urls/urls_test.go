package urls

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	require.Equal(t, "/posts/4/", PostDetail(4))
	require.Equal(t, "/posts/4/#comments", PostComments(4))
	require.Equal(t, "/posts/4/edit/", PostEdit(4))
	require.Equal(t, "/posts/4/delete/", PostDelete(4))
	require.Equal(t, "/posts/4/comment/", PostComment(4))
	require.Equal(t, "/posts/4/edit_comment/9/", CommentEdit(4, 9))
	require.Equal(t, "/posts/4/delete_comment/9/", CommentDelete(4, 9))
	require.Equal(t, "/category/travel/", Category("travel"))
	require.Equal(t, "/profile/jane%20doe/", Profile("jane doe"))
	require.Equal(t, "/?page=2", Page(Index, 2))
}
