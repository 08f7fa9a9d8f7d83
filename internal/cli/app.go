package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/promptkeeper/internal/config"
	"github.com/dmitrijs2005/promptkeeper/internal/exporter"
	"github.com/dmitrijs2005/promptkeeper/internal/logging"
	"github.com/dmitrijs2005/promptkeeper/internal/services"
	"github.com/dmitrijs2005/promptkeeper/internal/storage"
	"github.com/dmitrijs2005/promptkeeper/internal/store"
)

// statStore is the part of *store.Store the status command needs.
type statStore interface {
	Stat(ctx context.Context) (store.Stat, error)
}

type App struct {
	config  *config.Config
	records services.RecordService
	store   statStore
	sink    exporter.Sink
	logger  logging.Logger

	reader *bufio.Reader
	out    io.Writer

	interactive bool
	importPath  string
	now         func() time.Time
	closeFn     func() error
}

// announcer prints outcome messages to w.
type announcer struct{ w io.Writer }

func (a announcer) Announce(msg string) { fmt.Fprintln(a.w, "»", msg) }

// NewApp wires storage, the record service and the export sink from c.
// With c.Ephemeral the collection lives in memory only.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	var (
		kv      storage.KV
		closeFn = func() error { return nil }
	)
	if c.Ephemeral {
		kv = storage.NewMemoryKV()
	} else {
		db, err := storage.InitDatabase(ctx, c.DatabasePath)
		if err != nil {
			logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "err", err)
			return nil, err
		}
		kv = storage.NewSQLiteKV(db)
		closeFn = db.Close
	}

	sink, err := newSink(ctx, c)
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	st := store.New(kv, c.StorageKey, logger)
	rs := services.NewRecordService(st,
		services.WithMetadataTracking(c.TrackMetadata),
		services.WithAnnouncer(announcer{w: os.Stderr}),
		services.WithLogger(logger),
	)

	return &App{
		config:      c,
		records:     rs,
		store:       st,
		sink:        sink,
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(int(os.Stdin.Fd())),
		now:         time.Now,
		closeFn:     closeFn,
	}, nil
}

func newSink(ctx context.Context, c *config.Config) (exporter.Sink, error) {
	if c.S3.Enabled() {
		return exporter.NewS3Sink(ctx, c.S3)
	}
	return exporter.NewFileSink(c.ExportDir), nil
}

// Run prints a welcome line and the current collection, then blocks in the
// REPL until the user exits. Storage is closed on return.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if a.interactive {
		fmt.Fprintln(a.out, "Welcome to PromptKeeper (type 'help' for commands)")
	}
	a.render(a.records.Load(ctx))

	runREPL(ctx, a, a.prompt, a.reader)
	return nil
}

// Close releases the storage handle.
func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	err := a.closeFn()
	a.closeFn = nil
	return err
}

func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	if a.records.Degraded() {
		return "pk (unsaved)> "
	}
	return "pk> "
}

// promptOut is where input prompts go: the terminal in interactive sessions,
// nowhere otherwise.
func (a *App) promptOut() io.Writer {
	if a.interactive {
		return a.out
	}
	return io.Discard
}
