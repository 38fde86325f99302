// Package filters builds combinable predicates over profiles, posts and
// reactions from optional query parameters. A filter starts as match-all and
// every present parameter narrows it; parameters combine with logical AND.
// The stores translate a filter into their native query language, and the
// Match methods give the same semantics for in-memory evaluation.
package filters

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nanosocial/backend/internal/models"
)

// ProfileFilter narrows a profile listing.
type ProfileFilter struct {
	Username  string // case-insensitive substring match
	Bio       string // case-insensitive substring match
	Following []uint // profile must follow at least one of these profile ids
}

// ParseProfileFilter reads the optional username, bio and following query
// parameters. The following parameter is a comma-separated list of ids.
func ParseProfileFilter(q url.Values) (ProfileFilter, error) {
	f := ProfileFilter{
		Username: q.Get("username"),
		Bio:      q.Get("bio"),
	}
	if raw := q.Get("following"); raw != "" {
		ids, err := ParseIDList(raw)
		if err != nil {
			return f, err
		}
		f.Following = ids
	}
	return f, nil
}

// Match reports whether a profile passes the filter. following is the set of
// profile ids the candidate profile follows.
func (f ProfileFilter) Match(p models.Profile, following []uint) bool {
	if f.Username != "" && !containsFold(p.Username, f.Username) {
		return false
	}
	if f.Bio != "" && !containsFold(p.Bio, f.Bio) {
		return false
	}
	if len(f.Following) > 0 {
		found := false
		for _, want := range f.Following {
			for _, got := range following {
				if got == want {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// PostFilter narrows a post listing. OwnerIDs is resolved by the caller from
// the username parameter (substring match against the owning profile's
// username); HasOwnerFilter distinguishes "no username filter" from
// "username filter matched nobody".
type PostFilter struct {
	Title          string
	Message        string
	Hashtag        string
	OwnerIDs       []uint
	HasOwnerFilter bool
}

// ParsePostFilter reads the optional title, message and hashtag query
// parameters. The username parameter is returned separately because it is
// resolved against the profile store before it can constrain posts.
func ParsePostFilter(q url.Values) (PostFilter, string) {
	return PostFilter{
		Title:   q.Get("title"),
		Message: q.Get("message"),
		Hashtag: q.Get("hashtag"),
	}, q.Get("username")
}

// Match reports whether a post passes the filter.
func (f PostFilter) Match(p models.Post) bool {
	if f.Title != "" && !containsFold(p.Title, f.Title) {
		return false
	}
	if f.Message != "" && !containsFold(p.Message, f.Message) {
		return false
	}
	if f.Hashtag != "" && !containsFold(p.Hashtag, f.Hashtag) {
		return false
	}
	if f.HasOwnerFilter {
		found := false
		for _, id := range f.OwnerIDs {
			if p.UserID == id {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ReactionFilter narrows a listing of the caller's own reactions.
type ReactionFilter struct {
	PostID   string
	Reaction string
}

// ParseReactionFilter reads the optional post and reaction query parameters.
func ParseReactionFilter(q url.Values) ReactionFilter {
	return ReactionFilter{
		PostID:   q.Get("post"),
		Reaction: q.Get("reaction"),
	}
}

// Match reports whether a reaction passes the filter.
func (f ReactionFilter) Match(r models.UserReaction) bool {
	if f.PostID != "" && r.PostID != f.PostID {
		return false
	}
	if f.Reaction != "" && !strings.EqualFold(r.Reaction, f.Reaction) {
		return false
	}
	return true
}

// ParseIDList converts a string of format "1,2,3" to []uint{1, 2, 3}.
func ParseIDList(raw string) ([]uint, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q in list", part)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
