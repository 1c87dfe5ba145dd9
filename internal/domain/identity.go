package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	MinNicknameLen = 3
	MaxNicknameLen = 20
	MinGivenLen    = 2
	MaxGivenLen    = 15
)

// identityRe matches "Nickname (Имя)": latin game nickname, then a Russian
// given name in mandatory parentheses.
var identityRe = regexp.MustCompile(`^([a-zA-Z0-9_\-.]+)\s+\(([а-яА-ЯёЁ\s]+)\)$`)

// Identity is the verified pair of game nickname and real given name.
type Identity struct {
	Nickname string
	Given    string
}

// ParseIdentity validates raw "!verify" input. Returns ErrValidation with a
// human-readable reason on every rejection path.
func ParseIdentity(raw string) (Identity, error) {
	m := identityRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Identity{}, fmt.Errorf("%w: expected format `никнейм (имя)`", ErrValidation)
	}
	id := Identity{Nickname: m[1], Given: m[2]}
	if n := len(id.Nickname); n < MinNicknameLen || n > MaxNicknameLen {
		return Identity{}, fmt.Errorf("%w: nickname must be %d-%d characters", ErrValidation, MinNicknameLen, MaxNicknameLen)
	}
	if n := len([]rune(id.Given)); n < MinGivenLen || n > MaxGivenLen {
		return Identity{}, fmt.Errorf("%w: given name must be %d-%d characters", ErrValidation, MinGivenLen, MaxGivenLen)
	}
	return id, nil
}

// ServerNickname is the nickname format members are asked to set on the guild.
func (i Identity) ServerNickname() string {
	return fmt.Sprintf("%s (%s)", i.Nickname, i.Given)
}

// VerifiedPlayer is the in-memory verification record for one member.
type VerifiedPlayer struct {
	Identity   Identity
	VerifiedAt time.Time
	UpdatedAt  time.Time
}
