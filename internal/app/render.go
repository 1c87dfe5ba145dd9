package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/dkeye/Steward/internal/core"
	"github.com/dkeye/Steward/internal/domain"
)

const (
	maxListedOccupants = 8
	maxListedOptIns    = 6
)

// RenderSessionView builds the announcement payload as a pure function of
// live channel state and the opt-in set. It tolerates an empty channel and
// an unset capacity, and summarizes long lists instead of overflowing.
func RenderSessionView(
	owner domain.MemberID,
	description string,
	ch *domain.Channel,
	occupants []domain.Member,
	optIns []domain.MemberID,
	updatedAt time.Time,
) core.AnnouncementView {
	capacity := "∞"
	if ch.UserLimit > 0 {
		capacity = fmt.Sprintf("%d", ch.UserLimit)
	}

	view := core.AnnouncementView{
		Title: "🎯 ПОИСК ИГРОКОВ",
		Description: fmt.Sprintf("**%s ищет команду!**\n\n**📝 Описание поиска:**\n%s",
			owner.Mention(), description),
		Footer:    "Заходи быстрее💀",
		Timestamp: updatedAt,
	}

	view.Fields = append(view.Fields, core.Field{
		Name: "🔊 ГОЛОСОВОЙ КАНАЛ",
		Value: fmt.Sprintf("**➥ %s**\n👥 **Игроков:** %d/%s",
			ch.ID.Mention(), len(occupants), capacity),
	})

	if len(occupants) > 0 {
		lines := make([]string, 0, maxListedOccupants+1)
		for i, m := range occupants {
			if i == maxListedOccupants {
				lines = append(lines, fmt.Sprintf("• ... и еще %d игроков", len(occupants)-maxListedOccupants))
				break
			}
			lines = append(lines, "• "+m.ID.Mention())
		}
		view.Fields = append(view.Fields, core.Field{
			Name:   fmt.Sprintf("👥 В канале (%d)", len(occupants)),
			Value:  strings.Join(lines, "\n"),
			Inline: true,
		})
	} else {
		view.Fields = append(view.Fields, core.Field{
			Name:   "👥 В канале",
			Value:  "*Канал пуст*",
			Inline: true,
		})
	}

	if len(optIns) > 0 {
		lines := make([]string, 0, maxListedOptIns+1)
		for i, m := range optIns {
			if i == maxListedOptIns {
				lines = append(lines, fmt.Sprintf("• ... и еще %d", len(optIns)-maxListedOptIns))
				break
			}
			lines = append(lines, "• "+m.Mention())
		}
		view.Fields = append(view.Fields, core.Field{
			Name:   fmt.Sprintf("🎮 Откликнулись (%d)", len(optIns)),
			Value:  strings.Join(lines, "\n"),
			Inline: true,
		})
	} else {
		view.Fields = append(view.Fields, core.Field{
			Name:   "🎮 Откликнулись",
			Value:  "*Пока никто*",
			Inline: true,
		})
	}

	return view
}
