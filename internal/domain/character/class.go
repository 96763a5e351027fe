package character

import (
	"strings"

	arenaerr "github.com/KirkDiggler/battle-arena/internal/errors"
)

// Class is the archetype tag of a character. The set is closed.
type Class string

const (
	ClassWarrior Class = "Warrior"
	ClassArcher  Class = "Archer"
	ClassMage    Class = "Mage"
)

// Classes lists every class in display order
func Classes() []Class {
	return []Class{ClassWarrior, ClassArcher, ClassMage}
}

// Valid reports whether c is one of the known classes
func (c Class) Valid() bool {
	switch c {
	case ClassWarrior, ClassArcher, ClassMage:
		return true
	default:
		return false
	}
}

func (c Class) String() string {
	return string(c)
}

// ParseClass resolves a tag such as "warrior" or " Mage " to a Class
func ParseClass(tag string) (Class, error) {
	trimmed := strings.TrimSpace(tag)
	for _, c := range Classes() {
		if strings.EqualFold(trimmed, string(c)) {
			return c, nil
		}
	}
	return "", arenaerr.Configurationf("unknown class %q", tag).WithMeta("class", tag)
}
