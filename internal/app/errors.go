package app

import "errors"

var (
	// ErrConnect means the editor session could not be opened or greeted.
	ErrConnect = errors.New("cannot connect to nvim")
	// ErrSubscribe means a notification topic could not be subscribed.
	ErrSubscribe = errors.New("cannot subscribe to nvim notifications")

	errNoLanguage = errors.New("no language for buffer")
)
