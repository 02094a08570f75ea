// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package snapshot

import (
	"fmt"

	"github.com/funmapco/funmap/logger"
)

// Warnings collects the skip reasons of one build. Each distinct message is
// kept and logged once. A nil *Warnings discards everything.
type Warnings struct {
	log  *logger.Logger
	seen map[string]struct{}
	list []string
}

func NewWarnings(log *logger.Logger) *Warnings {
	if log == nil {
		log = logger.NewNop()
	}
	return &Warnings{log: log, seen: make(map[string]struct{})}
}

func (w *Warnings) Add(format string, args ...any) {
	if w == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if _, dup := w.seen[msg]; dup {
		return
	}
	w.seen[msg] = struct{}{}
	w.list = append(w.list, msg)
	w.log.Warn("snapshot warning", "message", msg)
}

// List returns the messages in the order they were first added. Never nil.
func (w *Warnings) List() []string {
	if w == nil {
		return []string{}
	}
	return append([]string{}, w.list...)
}

func (w *Warnings) Len() int {
	if w == nil {
		return 0
	}
	return len(w.list)
}
