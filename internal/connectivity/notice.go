package connectivity

import "time"

// NoticeTTL is how long a connectivity notice stays on screen.
const NoticeTTL = 4 * time.Second

// NoticeLevel is the notice style.
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeWarning
)

// Notice is a transient banner describing a connectivity change.
type Notice struct {
	Level   NoticeLevel
	Message string
	Expires time.Time
}

// NoticeFor describes c.
func NoticeFor(c Change) Notice {
	n := Notice{
		Level:   NoticeSuccess,
		Message: "You're back online. New content can be generated.",
		Expires: c.At.Add(NoticeTTL),
	}
	if !c.Online {
		n.Level = NoticeWarning
		n.Message = "You're offline. Saved materials are still available."
	}
	return n
}

// Active reports whether n should still be shown at now.
func (n Notice) Active(now time.Time) bool {
	return n.Message != "" && now.Before(n.Expires)
}
