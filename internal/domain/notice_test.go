package domain

import "testing"

func TestToggleReaction(t *testing.T) {
	var reactions []Reaction

	reactions = ToggleReaction(reactions, "👍", "bruno.costa")
	if len(reactions) != 1 {
		t.Fatalf("reactions = %d, want 1", len(reactions))
	}

	// Same emoji from another member coexists.
	reactions = ToggleReaction(reactions, "👍", "gabriella.souza")
	if len(reactions) != 2 {
		t.Fatalf("reactions = %d, want 2", len(reactions))
	}

	// Repeating the pair removes only that reaction.
	reactions = ToggleReaction(reactions, "👍", "bruno.costa")
	if len(reactions) != 1 {
		t.Fatalf("reactions = %d, want 1 after removal", len(reactions))
	}
	if reactions[0].Handle != "gabriella.souza" {
		t.Errorf("remaining reaction = %+v", reactions[0])
	}
}

func TestToggleReactionDoesNotMutateShared(t *testing.T) {
	original := []Reaction{
		{Emoji: "👍", Handle: "a"},
		{Emoji: "👍", Handle: "b"},
		{Emoji: "🎉", Handle: "c"},
	}
	snapshot := append([]Reaction{}, original...)

	_ = ToggleReaction(original, "👍", "b")

	for i := range snapshot {
		if original[i] != snapshot[i] {
			t.Fatalf("input slice mutated at %d: %+v", i, original[i])
		}
	}
}

func TestAudienceIncludes(t *testing.T) {
	tests := []struct {
		name     string
		audience Audience
		handle   string
		want     bool
	}{
		{"everyone", Audience{Everyone: true}, "anyone", true},
		{"listed", Audience{Handles: []string{"bruno.costa"}}, "bruno.costa", true},
		{"not listed", Audience{Handles: []string{"bruno.costa"}}, "gabriella.souza", false},
		{"empty", Audience{}, "bruno.costa", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.audience.Includes(tc.handle); got != tc.want {
				t.Errorf("Includes(%q) = %v, want %v", tc.handle, got, tc.want)
			}
		})
	}
}
