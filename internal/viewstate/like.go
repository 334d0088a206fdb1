package viewstate

// Like button labels.
const (
	LikeLabel  = "Like"
	LikedLabel = "Liked"
)

// Like is the local toggle behind the like button. The zero value is not
// liked. It is never synchronized with a server.
type Like struct {
	liked bool
}

// Toggle inverts the flag. Each call is one click.
func (l Like) Toggle() Like {
	return Like{liked: !l.liked}
}

// Liked reports whether the button has been toggled on.
func (l Like) Liked() bool { return l.liked }

// Label is the button text for the current state.
func (l Like) Label() string {
	if l.liked {
		return LikedLabel
	}
	return LikeLabel
}
