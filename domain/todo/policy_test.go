package todo

import (
	"testing"
)

func TestPolicy_Can(t *testing.T) {
	item := &Todo{
		ID:     "todo-1",
		UserID: "owner-1",
		Name:   "Buy milk",
	}

	tests := []struct {
		name    string
		actorID string
		ability Ability
		want    bool
	}{
		{
			name:    "owner can update",
			actorID: "owner-1",
			ability: AbilityUpdate,
			want:    true,
		},
		{
			name:    "owner can delete",
			actorID: "owner-1",
			ability: AbilityDelete,
			want:    true,
		},
		{
			name:    "non-owner cannot update",
			actorID: "other-user",
			ability: AbilityUpdate,
			want:    false,
		},
		{
			name:    "non-owner cannot delete",
			actorID: "other-user",
			ability: AbilityDelete,
			want:    false,
		},
		{
			name:    "empty actor id is denied",
			actorID: "",
			ability: AbilityUpdate,
			want:    false,
		},
		{
			name:    "unknown ability is denied even for owner",
			actorID: "owner-1",
			ability: Ability("share"),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Policy{}.Can(tt.actorID, tt.ability, item)
			if got != tt.want {
				t.Errorf("Can(%q, %q) = %v, want %v", tt.actorID, tt.ability, got, tt.want)
			}
		})
	}
}

func TestPolicy_CanEmptyOwner(t *testing.T) {
	// A todo with no owner should never be mutable, even by an actor
	// with an empty id.
	item := &Todo{ID: "todo-2", UserID: ""}

	if (Policy{}).Can("", AbilityDelete, item) {
		t.Error("Can() granted delete on an unowned todo to an empty actor")
	}
}
