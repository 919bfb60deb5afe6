package shape

import (
	"fmt"
	"strings"
)

// Kind identifies one of the shapes a gesture can produce.
type Kind int

const (
	KindEllipse Kind = iota
	KindCircle
	KindRectangle
	KindLine
)

var kindNames = []string{"ellipse", "circle", "rectangle", "line"}

var kindAliases = map[string]Kind{
	"oval": KindEllipse,
	"rect": KindRectangle,
}

// Kinds returns the selectable kinds in picker order.
func Kinds() []Kind {
	return []Kind{KindEllipse, KindCircle, KindRectangle, KindLine}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the four known kinds.
func (k Kind) Valid() bool {
	return k >= KindEllipse && k <= KindLine
}

// ParseKind resolves a shape name as shown by the shape picker.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	return KindEllipse, fmt.Errorf("unknown shape %q", s)
}
