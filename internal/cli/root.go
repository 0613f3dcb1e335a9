package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/ai"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/backup"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/compose"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/config"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/journal"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage/sqlite"
)

// BackendFactory builds the AI backend on first use so commands that never
// call the model work without an API key
type BackendFactory func(ctx context.Context) (ai.Backend, error)

type Context struct {
	Config     *config.Config
	Store      storage.Provider
	Journal    *journal.Store
	NewBackend BackendFactory

	// Out and In default to the process's stdout and stdin
	Out io.Writer
	In  io.Reader
	// Now defaults to time.Now
	Now func() time.Time
	// OnWarning receives journal warnings instead of Out when set
	OnWarning func(message string)

	backend ai.Backend
}

// Stdout returns where commands print their output
func (c *Context) Stdout() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

// Stdin returns where commands read answers from
func (c *Context) Stdin() io.Reader {
	if c.In != nil {
		return c.In
	}
	return os.Stdin
}

// Printf writes formatted output for the user
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Println writes a line of output for the user
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Clock returns the current time
func (c *Context) Clock() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Locale returns the configured language, Chinese by default
func (c *Context) Locale() constants.Locale {
	if c.Config == nil || c.Config.Locale == "" {
		return constants.LocaleZH
	}
	return c.Config.Locale
}

// Location returns the timezone calendar days are computed in
func (c *Context) Location() *time.Location {
	if c.Journal != nil {
		return c.Journal.Location()
	}
	return time.Local
}

// Backend returns the AI backend, building it on the first call
func (c *Context) Backend(ctx context.Context) (ai.Backend, error) {
	if c.backend != nil {
		return c.backend, nil
	}
	if c.NewBackend == nil {
		return nil, fmt.Errorf("no AI backend configured")
	}
	b, err := c.NewBackend(ctx)
	if err != nil {
		return nil, err
	}
	c.backend = b
	return b, nil
}

// Workflow returns a composition workflow over the journal
func (c *Context) Workflow(opts ...compose.Option) *compose.Workflow {
	opts = append([]compose.Option{compose.WithLocale(c.Locale())}, opts...)
	return compose.New(c.Journal, opts...)
}

// PerformAutomaticBackup snapshots the SQLite journal and silently handles
// errors. Other backends manage their own durability.
func (c *Context) PerformAutomaticBackup() {
	s, ok := c.Store.(*sqlite.Store)
	if !ok {
		logger.Debug("Skipping automatic backup", "store", fmt.Sprintf("%T", c.Store))
		return
	}
	mgr := backup.NewManager(s.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Warner returns a journal warner that prints to the command's output, or
// hands the message to OnWarning when a full-screen UI owns the terminal
func (c *Context) Warner() journal.Warner {
	return func(message string) {
		if c.OnWarning != nil {
			c.OnWarning(message)
			return
		}
		c.Println("⚠", message)
	}
}
