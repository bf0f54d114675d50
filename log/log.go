/*
 *
 * xk6-browser - a browser automation extension for k6
 * Copyright (C) 2021 Load Impact
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

// Package log provides the category-tagged, elapsed-time-annotated logger
// used throughout the frame coordination core and its surrounding
// scaffolding.
package log

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Logger wraps a *logrus.Logger with category filtering and an
// elapsed-since-last-call field, attached to every entry it emits.
type Logger struct {
	ctx context.Context
	*logrus.Logger

	mu             sync.Mutex
	lastLogCall    int64
	debugOverride  bool
	categoryFilter *regexp.Regexp
}

// NullLogger returns a *logrus.Logger that discards all output, for use
// in tests that don't care about log content.
func NullLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// NewLogger returns a Logger that writes through to logger, attaching a
// category and elapsed-time field to every entry. If categoryFilter is
// non-nil, only categories matching it are emitted.
func NewLogger(
	ctx context.Context, logger *logrus.Logger, debugOverride bool, categoryFilter *regexp.Regexp,
) *Logger {
	return &Logger{
		ctx:            ctx,
		Logger:         logger,
		debugOverride:  debugOverride,
		categoryFilter: categoryFilter,
	}
}

func (l *Logger) Tracef(category string, msg string, args ...interface{}) {
	l.Logf(logrus.TraceLevel, category, msg, args...)
}

func (l *Logger) Debugf(category string, msg string, args ...interface{}) {
	l.Logf(logrus.DebugLevel, category, msg, args...)
}

func (l *Logger) Errorf(category string, msg string, args ...interface{}) {
	l.Logf(logrus.ErrorLevel, category, msg, args...)
}

func (l *Logger) Infof(category string, msg string, args ...interface{}) {
	l.Logf(logrus.InfoLevel, category, msg, args...)
}

func (l *Logger) Warnf(category string, msg string, args ...interface{}) {
	l.Logf(logrus.WarnLevel, category, msg, args...)
}

// Logf is the funnel every other level method goes through: it attaches
// category, elapsed and goroutine fields, then defers to the underlying
// logrus.Logger (or a colorized stdout fallback if none is attached).
func (l *Logger) Logf(level logrus.Level, category string, msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Logger != nil && l.Logger.GetLevel() < level && !l.debugOverride {
		return
	}
	if l.categoryFilter != nil && !l.categoryFilter.MatchString(category) {
		return
	}

	now := time.Now().UnixNano() / int64(time.Millisecond)
	elapsed := now - l.lastLogCall
	if l.lastLogCall == 0 {
		elapsed = 0
	}
	defer func() { l.lastLogCall = now }()

	if l.Logger == nil {
		magenta := color.New(color.FgMagenta).SprintFunc()
		fmt.Fprintf(
			color.Output, "%s [%d]: %s - %s ms\n",
			magenta(category), goRoutineID(), fmt.Sprintf(msg, args...), magenta(elapsed),
		)
		return
	}

	entry := l.Logger.WithFields(logrus.Fields{
		"category":  category,
		"elapsed":   fmt.Sprintf("%d ms", elapsed),
		"goroutine": goRoutineID(),
	})
	entry.Logf(level, msg, args...)
}

// SetLevel sets the logger level from a level string, e.g. "debug".
func (l *Logger) SetLevel(level string) error {
	pl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", level, err)
	}
	l.Logger.SetLevel(pl)
	return nil
}

// DebugMode returns true if the logger level is set to Debug or higher.
func (l *Logger) DebugMode() bool {
	return l.Logger != nil && l.Logger.GetLevel() >= logrus.DebugLevel
}

// ReportCaller adds source file and function names to log entries,
// stripped of the module's own import path prefix.
func (l *Logger) ReportCaller() {
	const mod = "github.com/browsercore/xk6-frame"

	strip := func(s string) string {
		if !strings.Contains(s, mod) {
			return s
		}
		s = strings.TrimPrefix(s, mod)
		return strings.TrimPrefix(s, "/")
	}
	caller := func(f *runtime.Frame) (fn string, loc string) {
		fn = f.Func.Name()
		loc = strip(fmt.Sprintf("%s:%d", f.File, f.Line))
		return fn, loc
	}
	l.Logger.SetFormatter(&logrus.TextFormatter{
		CallerPrettyfier: caller,
	})
	l.Logger.SetReportCaller(true)
}

func goRoutineID() int {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	idField := strings.Fields(strings.TrimPrefix(string(buf[:n]), "goroutine "))[0]
	id, err := strconv.Atoi(idField)
	if err != nil {
		return 0
	}
	return id
}
