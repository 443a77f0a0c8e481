package posts

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MaxCatalogPostID is the highest post id served by the remote catalog.
// The id space is partitioned: ids at or below this are remote catalog
// snapshots, ids above it are locally stored posts. This partition is how
// the system decides whether a record can be mutated at all.
const MaxCatalogPostID = 251

// Origin tags which source a unified record came from
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginLocal  Origin = "local"
)

// ReactionKind is a post reaction type
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// ReactionCounts holds the aggregate reaction counters of a post.
// For local posts these always equal the per-kind count of UserReactions;
// for remote posts they are a static catalog snapshot.
type ReactionCounts struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// UserReaction is one actor's reaction to a local post.
// At most one entry exists per actor per post.
type UserReaction struct {
	UserID int64        `json:"userId"`
	Type   ReactionKind `json:"type"`
}

// UnmarshalJSON coerces userId to a canonical numeric form. Older persisted
// documents stored the actor id as a string; reaction matching must compare
// numerically, so the coercion happens once at decode time.
func (r *UserReaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		UserID json.RawMessage `json:"userId"`
		Type   ReactionKind    `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s := strings.Trim(string(raw.UserID), `"`)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid userId in reaction entry: %w", err)
	}

	r.UserID = id
	r.Type = raw.Type
	return nil
}

// Post is a unified blog entry from either source.
// UserReactions is populated for local posts only.
type Post struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Body          string         `json:"body"`
	Tags          []string       `json:"tags"`
	Reactions     ReactionCounts `json:"reactions"`
	UserReactions []UserReaction `json:"-"`
	AuthorID      int64          `json:"userId"`
	Origin        Origin         `json:"origin"`
}

// IsLocal reports whether the post is locally stored and therefore mutable
func (p *Post) IsLocal() bool {
	return p.Origin == OriginLocal
}

// ReactionOf returns the actor's current reaction on a local post, or nil
func (p *Post) ReactionOf(actorID int64) *ReactionKind {
	for i := range p.UserReactions {
		if p.UserReactions[i].UserID == actorID {
			kind := p.UserReactions[i].Type
			return &kind
		}
	}
	return nil
}

// SortField selects the comparison key for unified post ordering
type SortField string

// SortOrder flips the comparison direction; tie-break stability is unaffected
type SortOrder string

const (
	SortByID    SortField = "id"
	SortByTitle SortField = "title"
	SortByBody  SortField = "body"

	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortField returns the matching field, defaulting to id
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortByTitle:
		return SortByTitle
	case SortByBody:
		return SortByBody
	default:
		return SortByID
	}
}

// ParseSortOrder returns the matching order, defaulting to ascending
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == OrderDesc {
		return OrderDesc
	}
	return OrderAsc
}

// SortUnified sorts a merged collection in place by the given key.
// Id compares numerically (higher id = newer for both origins, since local
// ids are allocated after the last catalog id). Title and body compare
// case-insensitively. The sort is stable: ties keep relative input order
// regardless of direction.
func SortUnified(list []Post, field SortField, order SortOrder) {
	sort.SliceStable(list, func(i, j int) bool {
		var cmp int
		switch field {
		case SortByTitle:
			cmp = strings.Compare(strings.ToLower(list[i].Title), strings.ToLower(list[j].Title))
		case SortByBody:
			cmp = strings.Compare(strings.ToLower(list[i].Body), strings.ToLower(list[j].Body))
		default:
			switch {
			case list[i].ID < list[j].ID:
				cmp = -1
			case list[i].ID > list[j].ID:
				cmp = 1
			}
		}
		if order == OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// DedupeByID removes duplicate ids from a merged collection, keeping the
// first occurrence. Callers place remote results first so that remote
// entries win on an id collision.
func DedupeByID(list []Post) []Post {
	seen := make(map[int64]struct{}, len(list))
	out := list[:0]
	for _, p := range list {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// NormalizeTags trims tags, drops empties and collapses inner whitespace
// to hyphens so tags stay single-token slugs.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, strings.Join(strings.Fields(t), "-"))
	}
	return out
}
