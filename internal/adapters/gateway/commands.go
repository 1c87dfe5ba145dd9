package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkeye/Steward/internal/app"
	"github.com/dkeye/Steward/internal/core"
	"github.com/dkeye/Steward/internal/domain"
	"github.com/rs/zerolog/log"
)

// Control identifiers carried by announcement buttons.
const (
	ControlJoin   = "mm_join"
	ControlLeave  = "mm_leave"
	ControlCancel = "mm_cancel"
)

const replyTTL = 15 * time.Second

// Commands maps text commands and announcement controls onto app services.
// The prefix parsing here is deliberately thin: all rules live in the app
// layer, this only translates and words the user-facing replies.
type Commands struct {
	Matchmaking *app.Matchmaking
	Verifier    *app.Verifier
	Vacations   *app.Vacations
	Cooldowns   *app.CooldownGate
	Announce    core.Announcer

	// VerifyChannel and VacationChannel, when set, restrict the matching
	// command groups to those channels. Commands elsewhere are ignored.
	VerifyChannel   domain.ChannelID
	VacationChannel domain.ChannelID
}

func (c *Commands) inChannel(restricted, actual domain.ChannelID) bool {
	return restricted == "" || restricted == actual
}

func (c *Commands) Dispatch(ctx context.Context, ev messageEvent) {
	if !strings.HasPrefix(ev.Content, "!") {
		return
	}
	name, arg, _ := strings.Cut(strings.TrimPrefix(ev.Content, "!"), " ")
	arg = strings.TrimSpace(arg)
	actor := domain.MemberID(ev.AuthorID)
	channel := domain.ChannelID(ev.ChannelID)

	switch name {
	case "i", "поиск":
		if !c.Cooldowns.Allow(actor, "player_search") {
			return
		}
		if arg == "" {
			arg = "Ищем игроков!"
		}
		if _, err := c.Matchmaking.Create(ctx, actor, arg); err != nil {
			c.replyError(ctx, channel, err)
		}
	case "verify":
		if !c.inChannel(c.VerifyChannel, channel) {
			return
		}
		if !c.Cooldowns.Allow(actor, "verify") {
			return
		}
		rec, err := c.Verifier.Verify(ctx, actor, arg)
		if err != nil {
			c.replyError(ctx, channel, err)
			return
		}
		c.reply(ctx, channel, fmt.Sprintf(
			"✅ Верификация успешна! Установите серверный ник: `%s`", rec.Identity.ServerNickname()))
	case "сменить_ник":
		if !c.inChannel(c.VerifyChannel, channel) {
			return
		}
		if !c.Cooldowns.Allow(actor, "change_nickname") {
			return
		}
		rec, err := c.Verifier.Rename(ctx, actor, arg)
		if err != nil {
			c.replyError(ctx, channel, err)
			return
		}
		c.reply(ctx, channel, fmt.Sprintf(
			"✅ Данные обновлены! Новый ник: `%s`", rec.Identity.ServerNickname()))
	case "проверить":
		if !c.Cooldowns.Allow(actor, "check_verification") {
			return
		}
		target := actor
		if m, ok := parseMention(arg); ok {
			target = m
		}
		if rec, ok := c.Verifier.Lookup(target); ok {
			c.reply(ctx, channel, fmt.Sprintf(
				"✅ %s верифицирован: `%s`", target.Mention(), rec.Identity.ServerNickname()))
		} else {
			c.reply(ctx, channel, fmt.Sprintf(
				"❌ %s не верифицирован. Используйте `!verify <никнейм> (<имя>)`", target.Mention()))
		}
	case "отпуск":
		if !c.inChannel(c.VacationChannel, channel) {
			return
		}
		if !c.Cooldowns.Allow(actor, "vacation") {
			return
		}
		if arg == "" {
			c.reply(ctx, channel, "🏖️ Использование: `!отпуск <3д | неделя | 2недели>`")
			return
		}
		rec, err := c.Vacations.Start(ctx, actor, arg)
		if err != nil {
			c.replyError(ctx, channel, err)
			return
		}
		c.reply(ctx, channel, fmt.Sprintf(
			"🎉 Заявка принята! Отпуск до %s. Для возвращения: `!вернулся`", rec.EndsAt.Format("02.01.2006")))
	case "вернулся":
		if !c.inChannel(c.VacationChannel, channel) {
			return
		}
		if !c.Cooldowns.Allow(actor, "back_from_vacation") {
			return
		}
		if err := c.Vacations.Return(ctx, actor); err != nil {
			c.replyError(ctx, channel, err)
			return
		}
		c.reply(ctx, channel, "🎉 Добро пожаловать обратно! Роль отпуска снята.")
	case "верификация", "инструкция":
		c.reply(ctx, channel,
			"🔐 Команда: `!verify <никнейм> (<имя>)` — английский ник, русское имя в скобках.")
	}
}

func (c *Commands) DispatchControl(ctx context.Context, ev interactionEvent) {
	actor := domain.MemberID(ev.ActorID)
	owner := domain.MemberID(ev.OwnerID)
	channel := domain.ChannelID(ev.ChannelID)

	var err error
	switch ev.Control {
	case ControlJoin:
		err = c.Matchmaking.OptIn(ctx, owner, actor)
	case ControlLeave:
		err = c.Matchmaking.OptOut(ctx, owner, actor)
	case ControlCancel:
		err = c.Matchmaking.Cancel(ctx, owner, actor)
	default:
		log.Debug().Str("module", "gateway").Str("control", ev.Control).Msg("unknown control")
		return
	}
	if err != nil {
		c.replyError(ctx, channel, err)
	}
}

func (c *Commands) reply(ctx context.Context, ch domain.ChannelID, text string) {
	if err := c.Announce.Notify(ctx, ch, text, replyTTL); err != nil {
		log.Warn().Err(err).Str("module", "gateway").Msg("reply failed")
	}
}

func (c *Commands) replyError(ctx context.Context, ch domain.ChannelID, err error) {
	c.reply(ctx, ch, userText(err))
	log.Info().Err(err).Str("module", "gateway").Msg("command rejected")
}

// userText words rejection reasons the way members see them.
func userText(err error) string {
	switch {
	case errors.Is(err, domain.ErrSessionExists):
		return "❌ У вас уже есть активный поиск! Завершите его перед созданием нового."
	case errors.Is(err, domain.ErrNotInVoice):
		return "❌ Вы должны находиться в голосовом канале для создания поиска!"
	case errors.Is(err, domain.ErrNoSession):
		return "❌ Поиск не найден или уже завершен."
	case errors.Is(err, domain.ErrOwnSession):
		return "❌ Вы не можете присоединиться к своему поиску!"
	case errors.Is(err, domain.ErrAlreadyOptedIn):
		return "❌ Вы уже присоединились!"
	case errors.Is(err, domain.ErrNotOptedIn):
		return "❌ Вы не присоединялись!"
	case errors.Is(err, domain.ErrNotOwner):
		return "❌ Только автор может завершить поиск!"
	case errors.Is(err, domain.ErrAlreadyVerified):
		return "❌ Вы уже прошли верификацию ранее!"
	case errors.Is(err, domain.ErrNotVerified):
		return "❌ Сначала пройдите верификацию командой `!verify`"
	case errors.Is(err, domain.ErrOnVacation):
		return "❌ Вы уже в отпуске!"
	case errors.Is(err, domain.ErrNotOnVacation):
		return "❌ У вас нет роли отпуска."
	case errors.Is(err, domain.ErrValidation):
		return "❌ Неверный формат. " + strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	case errors.Is(err, domain.ErrPermission):
		return "❌ Ошибка прав. Проверьте права бота."
	default:
		return "❌ Произошла ошибка. Попробуйте позже."
	}
}

func parseMention(s string) (domain.MemberID, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<@") && strings.HasSuffix(s, ">") && len(s) > 3 {
		return domain.MemberID(s[2 : len(s)-1]), true
	}
	return "", false
}
