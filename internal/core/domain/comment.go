package domain

import "time"

// Comment is a discussion entry on a published post. Comments belong to
// exactly one content item and exist only as GitHub issue comments; there is
// no local comment persistence.
type Comment struct {
	// ID is the remote comment id.
	ID string `json:"id"`

	// Author is the commenting user's login.
	Author string `json:"author"`

	// AuthorAvatar is the commenting user's avatar URL.
	AuthorAvatar string `json:"author_avatar,omitempty"`

	// Body is the comment text.
	Body string `json:"body"`

	// CreatedAt is when the comment was posted.
	CreatedAt time.Time `json:"created_at"`
}
