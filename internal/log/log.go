// Package log provides the audit log for opentag operations.
// Entries are stored in ~/.opentag/log/opentag-log.db and record every
// action run against a tag and every change to the tag tree, from the CLI
// and from MCP tools alike.
//
// # Fluent API
//
//	log.Event("cli:open", "open").
//		Tag("work docs").
//		Target(path).
//		Write(err)
//
//	log.Event("mcp:ot_add", "add").
//		Tag(address).
//		Detail("names", names).
//		Write(err)
//
// The source is "cli:{action}" for the command line and "mcp:{tool}" for
// MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g. "cli:print", "mcp:ot_update"
	Action string // verb: open, print, copy, add, remove, update, ...
	Tag    string // address of the tag, space separated names
	Target string // path or URL acted on

	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs a log entry. Create with [Event], chain setters, then
// call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event starts a log entry for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Tag sets the address of the tag the operation concerns.
func (b *Builder) Tag(address string) *Builder {
	b.entry.Tag = address
	return b
}

// Target sets the path or URL the operation acted on.
func (b *Builder) Target(target string) *Builder {
	b.entry.Target = target
	return b
}

// Detail adds a key-value pair to the entry's detail map.
// Can be called multiple times.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write records the entry, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent entries. The
// identifier is derived from the tags file path, so entries from different
// tag collections can be told apart.
func SetProject(dataFile string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dataFile)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
