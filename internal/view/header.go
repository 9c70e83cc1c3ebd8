package view

import (
	"html/template"
	"strings"
)

const (
	// DefaultUserName substitutes the display name when no user is signed in.
	DefaultUserName = "User"
	// DefaultAvatarInitial substitutes the avatar badge character.
	DefaultAvatarInitial = "U"
)

// Header is the view model for the page header partial: resolved page
// title, greeting line, the small-viewport avatar badge and the two
// icon-only affordances.
type Header struct {
	Title    string
	Greeting string
	Initial  string
	Bell     template.HTML
	Gear     template.HTML
}

// NewHeader builds the header for the given path and signed-in user's
// display name. An empty name degrades to the fixed defaults.
func NewHeader(path, userName string) Header {
	name := strings.TrimSpace(userName)
	if name == "" {
		name = DefaultUserName
	}
	return Header{
		Title:    ResolveTitle(path),
		Greeting: "Welcome back, " + name,
		Initial:  avatarInitial(userName),
		Bell:     IconBell,
		Gear:     IconGear,
	}
}

func avatarInitial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return DefaultAvatarInitial
}
