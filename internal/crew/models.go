// Package crew fetches the current astronaut roster.
package crew

import (
	"errors"
	"net/url"
	"strings"
)

// Crew errors.
var (
	// ErrUnavailable means the roster provider failed. The roster itself
	// degrades to empty rather than failing the whole request.
	ErrUnavailable = errors.New("astronaut roster unavailable")
)

// Member is one person currently in space.
type Member struct {
	Name  string
	Craft string
}

// ProfileURL returns the member's Wikipedia reference, built from the name as
// a deterministic URL template. The page is not validated to exist.
func (m Member) ProfileURL() string {
	page := strings.ReplaceAll(strings.TrimSpace(m.Name), " ", "_")
	return "https://en.wikipedia.org/wiki/" + url.PathEscape(page)
}

// Roster is the full set of people in space, grouped by spacecraft on demand.
type Roster struct {
	Members []Member
}

// Count returns the number of people on the roster.
func (r *Roster) Count() int {
	return len(r.Members)
}

// ByCraft groups members by the spacecraft they are aboard.
func (r *Roster) ByCraft() map[string][]Member {
	grouped := make(map[string][]Member)
	for _, m := range r.Members {
		grouped[m.Craft] = append(grouped[m.Craft], m)
	}
	return grouped
}
