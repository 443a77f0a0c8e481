package posts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserReaction_UnmarshalJSON_CoercesStringUserID(t *testing.T) {
	var r UserReaction
	require.NoError(t, json.Unmarshal([]byte(`{"userId": "17", "type": "like"}`), &r))
	assert.Equal(t, int64(17), r.UserID)
	assert.Equal(t, ReactionLike, r.Type)
}

func TestUserReaction_UnmarshalJSON_AcceptsNumericUserID(t *testing.T) {
	var r UserReaction
	require.NoError(t, json.Unmarshal([]byte(`{"userId": 17, "type": "dislike"}`), &r))
	assert.Equal(t, int64(17), r.UserID)
	assert.Equal(t, ReactionDislike, r.Type)
}

func TestUserReaction_UnmarshalJSON_RejectsGarbageUserID(t *testing.T) {
	var r UserReaction
	err := json.Unmarshal([]byte(`{"userId": "not-a-number", "type": "like"}`), &r)
	assert.Error(t, err)
}

func TestPost_ReactionOf_ComparesNumerically(t *testing.T) {
	p := Post{UserReactions: []UserReaction{
		{UserID: 3, Type: ReactionLike},
		{UserID: 17, Type: ReactionDislike},
	}}

	kind := p.ReactionOf(17)
	require.NotNil(t, kind)
	assert.Equal(t, ReactionDislike, *kind)
	assert.Nil(t, p.ReactionOf(99))
}

func TestSortUnified_TitleIsCaseInsensitive(t *testing.T) {
	list := []Post{
		{ID: 1, Title: "Banana"},
		{ID: 2, Title: "apple"},
		{ID: 3, Title: "Cherry"},
	}
	SortUnified(list, SortByTitle, OrderAsc)
	assert.Equal(t, []int64{2, 1, 3}, ids(list))
}

func TestSortUnified_DescFlipsDirectionOnly(t *testing.T) {
	list := []Post{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "c"},
		{ID: 3, Title: "b"},
	}
	SortUnified(list, SortByTitle, OrderDesc)
	assert.Equal(t, []int64{2, 3, 1}, ids(list))
}

func TestSortUnified_TiesKeepInputOrderBothDirections(t *testing.T) {
	asc := []Post{
		{ID: 10, Title: "same"},
		{ID: 20, Title: "same"},
		{ID: 30, Title: "same"},
	}
	SortUnified(asc, SortByTitle, OrderAsc)
	assert.Equal(t, []int64{10, 20, 30}, ids(asc))

	desc := []Post{
		{ID: 10, Title: "same"},
		{ID: 20, Title: "same"},
		{ID: 30, Title: "same"},
	}
	SortUnified(desc, SortByTitle, OrderDesc)
	assert.Equal(t, []int64{10, 20, 30}, ids(desc))
}

func TestSortUnified_IDComparesNumerically(t *testing.T) {
	list := []Post{
		{ID: 252},
		{ID: 9},
		{ID: 41},
	}
	SortUnified(list, SortByID, OrderAsc)
	assert.Equal(t, []int64{9, 41, 252}, ids(list))
}

func TestDedupeByID_FirstOccurrenceWins(t *testing.T) {
	list := []Post{
		{ID: 1, Title: "remote"},
		{ID: 2, Title: "other"},
		{ID: 1, Title: "local"},
	}
	out := DedupeByID(list)
	require.Len(t, out, 2)
	assert.Equal(t, "remote", out[0].Title)
}

func TestNormalizeTags_TrimsDropsAndHyphenates(t *testing.T) {
	out := NormalizeTags([]string{" go ", "", "  ", "two words", "a\tb"})
	assert.Equal(t, []string{"go", "two-words", "a-b"}, out)
}

func TestParseSortField_DefaultsToID(t *testing.T) {
	assert.Equal(t, SortByID, ParseSortField(""))
	assert.Equal(t, SortByID, ParseSortField("bogus"))
	assert.Equal(t, SortByTitle, ParseSortField("title"))
	assert.Equal(t, SortByBody, ParseSortField("body"))
}

func TestParseSortOrder_DefaultsToAsc(t *testing.T) {
	assert.Equal(t, OrderAsc, ParseSortOrder(""))
	assert.Equal(t, OrderAsc, ParseSortOrder("sideways"))
	assert.Equal(t, OrderDesc, ParseSortOrder("desc"))
}

func ids(list []Post) []int64 {
	out := make([]int64, len(list))
	for i, p := range list {
		out[i] = p.ID
	}
	return out
}
