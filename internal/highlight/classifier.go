package highlight

import (
	"maps"
	"strings"

	"github.com/bethropolis/tide-nvim/internal/logger"
)

// baseRules is the built-in kind table. Unknown kinds, error nodes and the
// empty kind all fall through to Normal.
var baseRules = map[string]Group{
	"def":        Keyword,
	"identifier": Identifier,
}

// Classifier maps node kinds to highlight groups. It is immutable once built.
type Classifier struct {
	table map[string]Group
}

// NewClassifier returns the built-in table extended with extra kind → group
// rules. Extra rules may override built-in ones; blank entries are ignored.
func NewClassifier(extra map[string]string) *Classifier {
	table := maps.Clone(baseRules)
	for kind, group := range extra {
		group = strings.TrimSpace(group)
		if kind == "" || group == "" {
			logger.WarnTagf("classify", "Ignoring highlight rule %q = %q", kind, group)
			continue
		}
		table[kind] = Group(group)
	}
	return &Classifier{table: table}
}

// Classify returns the group for kind. It is total: every kind gets a group.
func (c *Classifier) Classify(kind string) Group {
	if g, ok := c.table[kind]; ok {
		return g
	}
	return Normal
}

// Rules returns the number of entries in the table.
func (c *Classifier) Rules() int {
	return len(c.table)
}
