package comments

import "errors"

var (
	// ErrCommentNotFound indicates the comment id resolves in neither source
	ErrCommentNotFound = errors.New("comment not found")

	// ErrNotAuthenticated is returned when a write is attempted anonymously
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when mutating a comment the actor doesn't
	// own, or when mutating a remote catalog comment at all
	ErrForbidden = errors.New("operation not permitted on this comment")
)
