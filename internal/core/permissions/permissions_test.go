package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	owner := int64(5)
	other := int64(6)

	tests := []struct {
		name    string
		local   bool
		ownerID int64
		actorID *int64
		want    Capabilities
	}{
		{
			name:  "anonymous on remote record",
			local: false, ownerID: owner, actorID: nil,
			want: Capabilities{},
		},
		{
			name:  "anonymous on local record",
			local: true, ownerID: owner, actorID: nil,
			want: Capabilities{},
		},
		{
			name:  "owner on local record",
			local: true, ownerID: owner, actorID: &owner,
			want: Capabilities{CanEdit: true, CanDelete: true, CanComment: true, CanReact: true},
		},
		{
			name:  "non-owner on local record",
			local: true, ownerID: owner, actorID: &other,
			want: Capabilities{CanComment: true, CanReact: true},
		},
		{
			name:  "owner id match on remote record grants nothing mutable",
			local: false, ownerID: owner, actorID: &owner,
			want: Capabilities{CanComment: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.local, tt.ownerID, tt.actorID))
		})
	}
}
