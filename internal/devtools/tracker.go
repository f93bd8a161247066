// Package devtools records the Redis traffic behind a command for debugging.
package devtools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLogLimit = 500

type originKey struct{}

// EntryKind describes the type of a tracked entry.
type EntryKind int

const (
	// EntryCommand represents a single Redis command.
	EntryCommand EntryKind = iota
	// EntryPipelineBegin marks the start of a pipeline execution.
	EntryPipelineBegin
	// EntryPipelineExec marks the execution of a pipeline.
	EntryPipelineExec
)

func (k EntryKind) String() string {
	switch k {
	case EntryPipelineBegin:
		return "pipeline"
	case EntryPipelineExec:
		return "exec"
	default:
		return "command"
	}
}

// Entry captures a single tracked entry.
type Entry struct {
	Kind     EntryKind
	Command  string
	Duration time.Duration
	Err      string
}

// LogEntry captures a single tracked log line.
type LogEntry struct {
	Seq    uint64
	Time   time.Time
	Origin string
	Entry  Entry
}

// Tracker keeps the most recent Redis commands in a ring buffer.
type Tracker struct {
	logLimit int
	logMu    sync.RWMutex
	log      []LogEntry
	logHead  int
	logFull  bool
	logSeq   uint64
}

// NewTracker creates a tracker holding the last 500 entries.
func NewTracker() *Tracker {
	return NewTrackerWithLimit(defaultLogLimit)
}

// NewTrackerWithLimit creates a tracker holding the last limit entries.
func NewTrackerWithLimit(limit int) *Tracker {
	return &Tracker{logLimit: max(limit, 0)}
}

// WithOrigin returns a context whose Redis commands are attributed to origin.
func WithOrigin(ctx context.Context, origin string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if origin == "" {
		return ctx
	}
	return context.WithValue(ctx, originKey{}, origin)
}

// OriginFromContext extracts the origin label from context.
func OriginFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if origin, ok := ctx.Value(originKey{}).(string); ok {
		return origin
	}
	return ""
}

// LogEntries returns the tracked entries in chronological order.
func (t *Tracker) LogEntries() []LogEntry {
	t.logMu.RLock()
	defer t.logMu.RUnlock()
	if len(t.log) == 0 {
		return nil
	}
	if !t.logFull {
		return slices.Clone(t.log)
	}
	result := make([]LogEntry, 0, len(t.log))
	result = append(result, t.log[t.logHead:]...)
	result = append(result, t.log[:t.logHead]...)
	return result
}

// AppendLog appends a log entry to the ring buffer.
func (t *Tracker) AppendLog(entry LogEntry) {
	if t == nil || t.logLimit == 0 {
		return
	}

	t.logMu.Lock()
	defer t.logMu.Unlock()
	entry.Seq = t.logSeq
	t.logSeq++
	if len(t.log) < t.logLimit {
		t.log = append(t.log, entry)
		t.logFull = len(t.log) == t.logLimit
		return
	}
	t.log[t.logHead] = entry
	t.logHead = (t.logHead + 1) % t.logLimit
}

// Counts returns how many times each command name was issued.
func (t *Tracker) Counts() map[string]int {
	counts := make(map[string]int)
	for _, entry := range t.LogEntries() {
		if entry.Entry.Kind != EntryCommand {
			continue
		}
		name, _, _ := strings.Cut(entry.Entry.Command, " ")
		counts[strings.ToLower(name)]++
	}
	return counts
}

// Report writes every tracked entry to logger at info level.
func (t *Tracker) Report(ctx context.Context, logger *slog.Logger) {
	if t == nil || logger == nil {
		return
	}
	for _, entry := range t.LogEntries() {
		attrs := []slog.Attr{
			slog.Uint64("seq", entry.Seq),
			slog.String("origin", entry.Origin),
			slog.String("kind", entry.Entry.Kind.String()),
		}
		if entry.Entry.Command != "" {
			attrs = append(attrs, slog.String("command", entry.Entry.Command))
		}
		if entry.Entry.Duration > 0 {
			attrs = append(attrs, slog.String("took", FormatDuration(entry.Entry.Duration)))
		}
		if entry.Entry.Err != "" {
			attrs = append(attrs, slog.String("error", entry.Entry.Err))
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "redis", attrs...)
	}
}

// Hook returns a Redis hook for tracking commands.
func (t *Tracker) Hook() redis.Hook {
	return hook{tracker: t}
}

// FormatDuration renders a compact duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < 10*time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

type hook struct {
	tracker *Tracker
}

func (h hook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h hook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.record(ctx, cmd, time.Since(start))
		return err
	}
}

func (h hook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		if len(cmds) == 0 {
			return next(ctx, cmds)
		}
		h.recordMarker(ctx, EntryPipelineBegin, 0)
		start := time.Now()
		err := next(ctx, cmds)
		for _, cmd := range cmds {
			h.record(ctx, cmd, 0)
		}
		h.recordMarker(ctx, EntryPipelineExec, time.Since(start))
		return err
	}
}

func (h hook) record(ctx context.Context, cmd redis.Cmder, duration time.Duration) {
	entry := Entry{
		Kind:     EntryCommand,
		Command:  formatCommand(cmd),
		Duration: duration,
	}
	if err := cmd.Err(); err != nil && !errors.Is(err, redis.Nil) {
		entry.Err = err.Error()
	}
	h.tracker.appendLogEntry(ctx, entry)
}

func (h hook) recordMarker(ctx context.Context, kind EntryKind, duration time.Duration) {
	h.tracker.appendLogEntry(ctx, Entry{Kind: kind, Duration: duration})
}

func (t *Tracker) appendLogEntry(ctx context.Context, entry Entry) {
	if t == nil {
		return
	}
	origin := OriginFromContext(ctx)
	if origin == "" {
		origin = originFromCallers()
	}
	if origin == "" {
		origin = "unknown"
	}
	t.AppendLog(LogEntry{
		Time:   time.Now(),
		Origin: origin,
		Entry:  entry,
	})
}

// originFromCallers names the innermost pipeline or command frame, falling
// back to the store method that issued the command.
func originFromCallers() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(4, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var storeFallback string
	for {
		frame, more := frames.Next()
		fn := frame.Function
		switch {
		case fn == "":
		case inPackage(fn, "pipeline"), inPackage(fn, "cmd"):
			return shortFuncName(fn)
		case storeFallback == "" && inPackage(fn, "store"):
			storeFallback = shortFuncName(fn)
		}
		if !more {
			break
		}
	}
	return storeFallback
}

func inPackage(fn, pkg string) bool {
	return strings.Contains(fn, "/internal/"+pkg+".") || strings.Contains(fn, "/internal/"+pkg+"/")
}

func shortFuncName(fn string) string {
	if idx := strings.LastIndex(fn, "/"); idx >= 0 {
		fn = fn[idx+1:]
	}
	fn = strings.TrimSuffix(fn, ".func1")
	fn = strings.ReplaceAll(fn, "(*", "")
	fn = strings.ReplaceAll(fn, ")", "")
	return fn
}

func formatCommand(cmd redis.Cmder) string {
	args := cmd.Args()
	if len(args) == 0 {
		return cmd.Name()
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	return strings.Join(parts, " ")
}
