// Package permissions derives capability flags for a record given the
// current actor. Evaluation is pure: it consumes only the record snapshot
// (origin + owner) and the actor id, and performs no I/O.
package permissions

// Capabilities describes what the current actor may do with a record.
// A nil actor (anonymous) can read everything but write nothing.
type Capabilities struct {
	CanEdit    bool `json:"canEdit"`
	CanDelete  bool `json:"canDelete"`
	CanComment bool `json:"canComment"`
	CanReact   bool `json:"canReact"`
}

// Evaluate computes capability flags for a record.
// local: whether the record is locally stored (mutable) as opposed to a
// read-only catalog snapshot. ownerID: the record's author.
//
// Edit and delete require ownership of a local record. Commenting only
// requires authentication. Reacting requires a local record but not
// ownership: the owner may react to their own post. CanReact is also
// false for anonymous actors, slightly stricter than origin alone, so
// the flags never advertise an action the reaction endpoints reject.
func Evaluate(local bool, ownerID int64, actorID *int64) Capabilities {
	owns := actorID != nil && local && ownerID == *actorID
	return Capabilities{
		CanEdit:    owns,
		CanDelete:  owns,
		CanComment: actorID != nil,
		CanReact:   actorID != nil && local,
	}
}
