package lang

import (
	"sync"

	"github.com/bethropolis/tide-nvim/internal/logger"

	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"
)

var defaultsOnce sync.Once

// RegisterDefaults registers the bundled grammars once.
func RegisterDefaults() {
	defaultsOnce.Do(func() {
		Register(&Language{
			Name:           "Python",
			TreeSitterLang: pythonsrc.GetLanguage(),
			Extensions:     []string{".py", ".pyw", ".pyi"},
		})
		Register(&Language{
			Name:           "Go",
			TreeSitterLang: gosrc.GetLanguage(),
			Extensions:     []string{".go"},
		})
		Register(&Language{
			Name:           "JavaScript",
			TreeSitterLang: jssrc.GetLanguage(),
			Extensions:     []string{".js", ".mjs", ".cjs", ".json"},
		})
		Register(&Language{
			Name:           "Rust",
			TreeSitterLang: rustsrc.GetLanguage(),
			Extensions:     []string{".rs"},
		})
		logger.DebugTagf("lang", "Registration complete. Registered %d languages.", len(GetAll()))
	})
}
