package services

// Announcer receives short human-readable outcome messages such as
// "Prompt added".
type Announcer interface {
	Announce(msg string)
}

// AnnouncerFunc adapts a function to Announcer.
type AnnouncerFunc func(msg string)

func (f AnnouncerFunc) Announce(msg string) { f(msg) }

type silent struct{}

func (silent) Announce(string) {}
