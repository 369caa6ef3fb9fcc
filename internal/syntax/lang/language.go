package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Language pairs a tree-sitter grammar with the buffers it applies to.
type Language struct {
	// Name is the display name of the language, matched case-insensitively.
	Name string

	// TreeSitterLang is the tree-sitter language instance.
	TreeSitterLang *sitter.Language

	// Extensions maps file extensions to this language.
	Extensions []string
}
