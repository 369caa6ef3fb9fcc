package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/tide-nvim/internal/logger"
)

var (
	// Global language registry
	registry struct {
		sync.RWMutex
		languages     []*Language
		byName        map[string]*Language
		extToLanguage map[string]*Language
	}

	initOnce sync.Once
)

// Initialize ensures the registry is ready for use.
func Initialize() {
	initOnce.Do(func() {
		registry.byName = make(map[string]*Language)
		registry.extToLanguage = make(map[string]*Language)
		logger.DebugTagf("lang", "Language registry initialized")
	})
}

// Register adds a language to the registry. A later registration of the
// same name or extension replaces the earlier one.
func Register(lang *Language) {
	Initialize()

	registry.Lock()
	defer registry.Unlock()

	name := strings.ToLower(lang.Name)
	if existing, ok := registry.byName[name]; ok {
		for i, l := range registry.languages {
			if l == existing {
				registry.languages = append(registry.languages[:i], registry.languages[i+1:]...)
				break
			}
		}
	}
	registry.languages = append(registry.languages, lang)
	registry.byName[name] = lang

	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[lowerExt]; ok && existing != lang {
			logger.WarnTagf("lang", "Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.Name, lang.Name)
		}
		registry.extToLanguage[lowerExt] = lang
	}

	logger.DebugTagf("lang", "Registered language: %s with extensions: %v", lang.Name, lang.Extensions)
}

// GetForFile returns the language for a file path by extension, or nil.
func GetForFile(filePath string) *Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		return nil
	}
	return registry.extToLanguage[ext]
}

// GetByName returns the language registered under name, or nil.
func GetByName(name string) *Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()
	return registry.byName[strings.ToLower(name)]
}

// Resolve picks the language for a buffer: its file extension first, then
// the fallback name.
func Resolve(bufferName, fallback string) *Language {
	if l := GetForFile(bufferName); l != nil {
		return l
	}
	return GetByName(fallback)
}

// GetAll returns all registered languages in registration order.
func GetAll() []*Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}
