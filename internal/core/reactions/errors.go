package reactions

import "errors"

var (
	// ErrNotAuthenticated is returned when an anonymous actor reacts
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when reacting to a remote catalog record
	ErrForbidden = errors.New("reactions are only allowed on local records")

	// ErrInvalidKind is returned for a reaction type other than like/dislike
	ErrInvalidKind = errors.New("invalid reaction kind: must be 'like' or 'dislike'")
)
