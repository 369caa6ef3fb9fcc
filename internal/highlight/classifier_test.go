package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestClassifyBuiltins(t *testing.T) {
	c := NewClassifier(nil)
	assert.Equal(t, Keyword, c.Classify("def"))
	assert.Equal(t, Identifier, c.Classify("identifier"))
	assert.Equal(t, Normal, c.Classify(""))
	assert.Equal(t, Normal, c.Classify("ERROR"))
	assert.Equal(t, Normal, c.Classify("Def"))
}

func TestClassifierExtraRules(t *testing.T) {
	c := NewClassifier(map[string]string{
		"comment":    "Comment",
		"identifier": "Function",
		"string":     "  ",
		"":           "Keyword",
	})
	assert.Equal(t, Group("Comment"), c.Classify("comment"))
	assert.Equal(t, Group("Function"), c.Classify("identifier"))
	assert.Equal(t, Normal, c.Classify("string"))
	assert.Equal(t, Keyword, c.Classify("def"))
	assert.Equal(t, 3, c.Rules())

	assert.Equal(t, Identifier, NewClassifier(nil).Classify("identifier"), "base table must not be mutated")
}

func TestClassifyIsTotal(t *testing.T) {
	c := NewClassifier(nil)
	rapid.Check(t, func(rt *rapid.T) {
		kind := rapid.String().Draw(rt, "kind")
		g := c.Classify(kind)
		switch kind {
		case "def":
			if g != Keyword {
				rt.Fatalf("def classified as %s", g)
			}
		case "identifier":
			if g != Identifier {
				rt.Fatalf("identifier classified as %s", g)
			}
		default:
			if g != Normal {
				rt.Fatalf("%q classified as %s", kind, g)
			}
		}
	})
}
