// Package auth implements the allow-list gate consulted before any command
// or flow entry runs.
package auth

// Gate decides whether a chat/user pair may use the bot. A nil or empty
// allow-list admits everyone, which is the development default.
type Gate interface {
	// IsAllowed reports whether the command may proceed. Private chats are
	// admitted on the user id, group chats on the chat id.
	IsAllowed(chatID, userID int64, isPrivate bool) bool
}

// AllowList is the production Gate: a fixed set of admitted identifiers.
type AllowList struct {
	ids map[int64]struct{}
}

func NewAllowList(ids []int64) *AllowList {
	g := &AllowList{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		g.ids[id] = struct{}{}
	}
	return g
}

func (g *AllowList) IsAllowed(chatID, userID int64, isPrivate bool) bool {
	if len(g.ids) == 0 {
		return true
	}
	id := chatID
	if isPrivate {
		id = userID
	}
	_, ok := g.ids[id]
	return ok
}
