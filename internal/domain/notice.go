package domain

import "time"

// Reaction is a single emoji reaction by one staff member.
type Reaction struct {
	Emoji  string `json:"emoji"`
	Handle string `json:"handle"`
}

// Comment is one entry in a notice's discussion thread.
type Comment struct {
	ID        string     `json:"id"`
	Author    string     `json:"author"`
	Content   string     `json:"content"`
	Reactions []Reaction `json:"reactions"`
	CreatedAt time.Time  `json:"created_at"`
}

// Audience defines who a notice is addressed to.
type Audience struct {
	Everyone bool     `json:"everyone"`
	Handles  []string `json:"handles,omitempty"`
}

// Includes reports whether the audience covers the given handle.
func (a Audience) Includes(handle string) bool {
	if a.Everyone {
		return true
	}
	for _, h := range a.Handles {
		if h == handle {
			return true
		}
	}
	return false
}

// Notice is a board announcement with reactions and comments.
type Notice struct {
	ID        string
	Author    string
	Content   string
	Audience  Audience
	Reactions []Reaction
	Comments  []Comment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToggleReaction adds the (emoji, handle) reaction if absent and removes it
// if present. A member holds at most one reaction per distinct emoji.
func ToggleReaction(reactions []Reaction, emoji, handle string) []Reaction {
	for i, r := range reactions {
		if r.Emoji == emoji && r.Handle == handle {
			return append(reactions[:i:i], reactions[i+1:]...)
		}
	}
	return append(reactions, Reaction{Emoji: emoji, Handle: handle})
}
