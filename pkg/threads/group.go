// Package threads turns a flat collection of canonical messages into
// sorted, metadata-bearing conversation threads. It is pure: no store
// access, no platform knowledge beyond the tag it stamps on the output.
package threads

import (
	"sort"

	"chatsource/pkg/models"
)

// group holds the members of one conversation. It can only be created
// with a first message, so an empty thread is unrepresentable.
type group struct {
	head models.Message
	rest []models.Message
}

func newGroup(first models.Message) *group {
	return &group{head: first}
}

func (g *group) add(m models.Message) {
	g.rest = append(g.rest, m)
}

func (g *group) members() []models.Message {
	out := make([]models.Message, 0, 1+len(g.rest))
	out = append(out, g.head)
	return append(out, g.rest...)
}

// Group partitions msgs by chat id and materializes one thread per
// non-empty partition. Member messages are sorted strictly descending by
// timestamp, with ties broken by original fetch order; the returned
// threads are sorted descending by last message date the same way. Zero
// messages yield zero threads.
func Group(platform models.Platform, msgs []models.Message) []models.MessageThread {
	if len(msgs) == 0 {
		return nil
	}

	sorted := make([]models.Message, len(msgs))
	copy(sorted, msgs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	var order []string
	groups := make(map[string]*group)
	for _, m := range sorted {
		g, ok := groups[m.ChatID]
		if !ok {
			groups[m.ChatID] = newGroup(m)
			order = append(order, m.ChatID)
			continue
		}
		g.add(m)
	}

	out := make([]models.MessageThread, 0, len(order))
	for _, chatID := range order {
		out = append(out, materialize(platform, chatID, groups[chatID]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageDate.After(out[j].LastMessageDate)
	})
	return out
}

func materialize(platform models.Platform, chatID string, g *group) models.MessageThread {
	members := g.members()
	unread := 0
	for _, m := range members {
		if m.Direction == models.DirectionIncoming && !m.IsRead {
			unread++
		}
	}
	// The display name comes from the head member even when that message
	// is outgoing and carries no sender name. Older members may know the
	// contact's name; attribution still follows the latest message.
	return models.MessageThread{
		ContactIdentifier: chatID,
		ContactName:       g.head.SenderName,
		Platform:          platform,
		Messages:          members,
		UnreadCount:       unread,
		LastMessageDate:   g.head.Timestamp,
	}
}
