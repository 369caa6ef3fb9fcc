// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/tide-nvim/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero values.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string
	DebugLog       *bool
	Socket         *string
	Buffer         *int
	Topics         *string
	Language       *string
	Namespace      *string
	PaintNormal    *bool
	WatchConfig    *bool
}

// NewFlags defines the command-line flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Trace the log filtering handler to stderr")
	f.Socket = fs.String("socket", "", fmt.Sprintf("Neovim RPC socket address (default $NVIM or %s)", DefaultSocket))
	f.Buffer = fs.Int("buffer", -1, "Buffer handle to highlight (0 is the current buffer)")
	f.Topics = fs.String("topics", "", "Comma-separated rpcnotify topics that trigger a re-highlight")
	f.Language = fs.String("language", "", "Fallback language when the buffer name has no known extension")
	f.Namespace = fs.String("namespace", "", "Neovim namespace to paint into and clear before each pass")
	f.PaintNormal = fs.Bool("paint-normal", true, "Send paint calls for leaves classified as Normal")
	f.WatchConfig = fs.Bool("watch-config", false, "Reload highlight rules when the config file changes")
	return f
}

// Parse parses args and returns the remaining non-flag arguments.
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates cfg with the flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value.String())
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "socket":
			if *f.Socket != "" {
				cfg.Nvim.Socket = *f.Socket
			}
		case "buffer":
			if *f.Buffer >= 0 {
				cfg.Nvim.Buffer = *f.Buffer
			}
		case "topics":
			if topics := splitCommaList(*f.Topics); len(topics) > 0 {
				cfg.Nvim.Topics = topics
			}
		case "language":
			if *f.Language != "" {
				cfg.Highlight.Language = *f.Language
			}
		case "namespace":
			cfg.Highlight.Namespace = *f.Namespace
		case "paint-normal":
			cfg.Highlight.PaintNormal = *f.PaintNormal
		case "watch-config":
			cfg.Highlight.WatchConfig = *f.WatchConfig
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
