package config

// Base application details
const AppName = "tide-nvim"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "tide-nvim.log"

// Neovim session
const DefaultSocket = "/tmp/nvimsocket"
const DefaultBuffer = 0 // 0 addresses the current buffer in the nvim API
const DefaultQueueSize = 64
const DefaultGreeting = `echom "connected to tide-nvim"`
const DefaultFarewell = `echom "tide-nvim disconnected from neovim"`

// Highlighting
const DefaultLanguage = "python"

// DefaultTopics are the rpcnotify topics that trigger a re-highlight.
var DefaultTopics = []string{"text-changed", "cursor-moved", "insert-enter"}

// socketEnvVars are consulted, in order, when no socket is configured.
var socketEnvVars = []string{"NVIM", "NVIM_LISTEN_ADDRESS"}
