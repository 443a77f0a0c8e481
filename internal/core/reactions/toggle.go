// Package reactions reconciles like/dislike state on local posts and
// comments: aggregate counters and per-actor reaction records move together
// as one logical step. The toggle decisions are pure functions; persistence
// atomicity is the store's job.
package reactions

import "Blogview/internal/core/posts"

// ApplyPostToggle applies one actor's like/dislike click to a post's
// reaction state and returns the updated per-actor list, the updated
// aggregate counters and the actor's resulting reaction (nil = un-reacted).
//
// Semantics: no existing entry adds one; re-clicking the same kind removes
// it; clicking the opposite kind switches it. An actor never holds more
// than one entry, so both counters can never be incremented for one actor
// at once.
func ApplyPostToggle(entries []posts.UserReaction, counts posts.ReactionCounts, actorID int64, kind posts.ReactionKind) ([]posts.UserReaction, posts.ReactionCounts, *posts.ReactionKind) {
	existing := -1
	for i := range entries {
		if entries[i].UserID == actorID {
			existing = i
			break
		}
	}

	switch {
	case existing < 0:
		entries = append(entries, posts.UserReaction{UserID: actorID, Type: kind})
		counts = bump(counts, kind, 1)
		return entries, counts, &kind

	case entries[existing].Type == kind:
		entries = append(entries[:existing], entries[existing+1:]...)
		counts = bump(counts, kind, -1)
		return entries, counts, nil

	default:
		counts = bump(counts, entries[existing].Type, -1)
		counts = bump(counts, kind, 1)
		entries[existing].Type = kind
		return entries, counts, &kind
	}
}

// ApplyCommentLike toggles actor membership in a comment's like set.
// The counter floors at zero when removing, in case a historical record
// drifted below its set size.
func ApplyCommentLike(likedBy []int64, likes int, actorID int64) ([]int64, int, bool) {
	for i, id := range likedBy {
		if id == actorID {
			likedBy = append(likedBy[:i], likedBy[i+1:]...)
			if likes > 0 {
				likes--
			}
			return likedBy, likes, false
		}
	}
	return append(likedBy, actorID), likes + 1, true
}

func bump(counts posts.ReactionCounts, kind posts.ReactionKind, delta int) posts.ReactionCounts {
	if kind == posts.ReactionLike {
		counts.Likes += delta
	} else {
		counts.Dislikes += delta
	}
	return counts
}
