package discourse

import (
	"strconv"
	"strings"
)

// Forum member reference, as embedded in topic lists and chat messages.
type User struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Name           *string `json:"name,omitempty"`
	AvatarTemplate string  `json:"avatar_template"`
}

// Expands the "{size}" placeholder of AvatarTemplate. The result is relative to the forum base URL unless the template was already absolute.
func (u *User) AvatarURL(size int) string {
	return strings.ReplaceAll(u.AvatarTemplate, "{size}", strconv.Itoa(size))
}

// Name if set, otherwise Username.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Username
}
