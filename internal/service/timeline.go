package service

import (
	"time"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/google/uuid"
)

// compactionWindow is how close together two messages from the same author
// have to be before the second one is rendered without its own header.
const compactionWindow = 5 * time.Minute

const dayKeyFormat = "2006-01-02"

// ReactionGroup is one emoji on one message, aggregated across members.
// Groups keep the order the emoji were first used in, not alphabetical or
// by count.
type ReactionGroup struct {
	Value       string      `json:"value"`
	Count       int         `json:"count"`
	MemberIDs   []uuid.UUID `json:"member_ids"`
	ReactedByMe bool        `json:"reacted_by_me"`
}

type TimelineMessage struct {
	domain.Message
	Reactions []ReactionGroup       `json:"reactions"`
	Compact   bool                  `json:"compact"`
	Thread    *domain.ThreadSummary `json:"thread,omitempty"`
}

type DayGroup struct {
	Date     string            `json:"date"`
	Label    string            `json:"label"`
	Messages []TimelineMessage `json:"messages"`
}

// AssembleTimeline turns a newest-first page of messages into the
// day-grouped view the client renders. It is a pure function of its inputs:
// re-running it on every page or live update yields the same result, so the
// caller never needs invalidation logic.
//
// The viewer's time zone and current date are both taken from now.
func AssembleTimeline(
	messages []domain.Message,
	reactions map[uuid.UUID][]domain.Reaction,
	threads map[uuid.UUID]*domain.ThreadSummary,
	viewerMemberID uuid.UUID,
	now time.Time,
) []DayGroup {
	loc := now.Location()

	groupIdx := make(map[string]int)
	var groups []DayGroup

	for _, msg := range messages {
		key := msg.CreatedAt.In(loc).Format(dayKeyFormat)
		idx, ok := groupIdx[key]
		if !ok {
			groups = append(groups, DayGroup{
				Date:  key,
				Label: formatDayLabel(key, now),
			})
			idx = len(groups) - 1
			groupIdx[key] = idx
		}

		tm := TimelineMessage{
			Message:   msg,
			Reactions: aggregateReactions(reactions[msg.ID], viewerMemberID),
			Thread:    threads[msg.ID],
		}

		// The page arrives newest first, so prepend to keep each day's
		// messages in chronological order.
		groups[idx].Messages = append([]TimelineMessage{tm}, groups[idx].Messages...)
	}

	// Day groups were encountered newest first; the feed wants oldest first.
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}

	for gi := range groups {
		markCompact(groups[gi].Messages)
	}

	return groups
}

// markCompact suppresses the avatar/name header on messages that continue a
// run: same author as the message right above and less than five minutes
// after it. The first message of a day group always gets a full header.
func markCompact(messages []TimelineMessage) {
	for i := 1; i < len(messages); i++ {
		prev := messages[i-1]
		messages[i].Compact = messages[i].MemberID == prev.MemberID &&
			messages[i].CreatedAt.Sub(prev.CreatedAt) < compactionWindow
	}
}

// aggregateReactions folds raw reaction rows into per-emoji groups in
// first-seen order. The (message, member, value) uniqueness invariant means
// every row contributes a distinct member to its group.
func aggregateReactions(rows []domain.Reaction, viewerMemberID uuid.UUID) []ReactionGroup {
	var groups []ReactionGroup
	index := make(map[string]int)

	for _, r := range rows {
		idx, ok := index[r.Value]
		if !ok {
			groups = append(groups, ReactionGroup{Value: r.Value})
			idx = len(groups) - 1
			index[r.Value] = idx
		}

		g := &groups[idx]
		g.Count++
		g.MemberIDs = append(g.MemberIDs, r.MemberID)
		if r.MemberID == viewerMemberID {
			g.ReactedByMe = true
		}
	}

	return groups
}

// formatDayLabel renders a day separator: "Today", "Yesterday", or the full
// weekday/month/day form for anything older.
func formatDayLabel(dateKey string, now time.Time) string {
	switch dateKey {
	case now.Format(dayKeyFormat):
		return "Today"
	case now.AddDate(0, 0, -1).Format(dayKeyFormat):
		return "Yesterday"
	}

	date, err := time.ParseInLocation(dayKeyFormat, dateKey, now.Location())
	if err != nil {
		return dateKey
	}
	return date.Format("Monday, January 2")
}
