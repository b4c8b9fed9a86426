package user

import (
	"regexp"
	"strings"

	"github.com/blogicum/core/internal/models"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// reservedUsernames collide with fixed paths under /profile/.
var reservedUsernames = map[string]bool{"edit": true}

func validUsername(name string) bool {
	return usernamePattern.MatchString(name) && !reservedUsernames[strings.ToLower(name)]
}

// CanEditProfile reports whether current may edit the profile named
// pathUsername. An empty pathUsername means the current user's own profile.
func CanEditProfile(pathUsername string, current *models.UserModel) bool {
	if current == nil {
		return false
	}
	return pathUsername == "" || pathUsername == current.Username
}

// safeNext accepts only local absolute paths as a post-login destination.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}

func profileFormFrom(u *models.UserModel) ProfileForm {
	return ProfileForm{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}
