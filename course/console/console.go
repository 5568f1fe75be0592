package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/df-mc/gauntlet/course"
	"github.com/df-mc/gauntlet/course/coursedb"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnknownCommand is returned by Execute for a command that does not exist.
var ErrUnknownCommand = errors.New("unknown command")

// Console provides a simple CLI that reads commands from an io.Reader
// (defaulting to os.Stdin) and executes them on the provided course.
type Console struct {
	c      *course.Course
	log    *slog.Logger
	reader io.Reader
	p      *message.Printer
	now    func() time.Time

	commands map[string]command
}

type command struct {
	usage string
	run   func(args []string) error
}

// New returns a Console bound to the provided course. The console reads from
// os.Stdin and writes command output to the supplied logger.
func New(c *course.Course, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	con := &Console{
		c:      c,
		log:    log,
		reader: os.Stdin,
		p:      message.NewPrinter(language.English),
		now:    time.Now,
	}
	con.commands = map[string]command{
		"generate": {usage: "generate [YYYY-MM-DD]", run: con.generate},
		"today":    {usage: "today", run: con.today},
		"record":   {usage: "record <YYYY-MM-DD>", run: con.record},
		"history":  {usage: "history", run: con.history},
		"help":     {usage: "help", run: con.help},
	}
	return con
}

// WithReader sets a custom reader for the console input. It enables testing the
// console without relying on os.Stdin.
func (con *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		con.reader = r
	}
	return con
}

// WithLanguage sets the language numbers in command output are formatted in.
func (con *Console) WithLanguage(tag language.Tag) *Console {
	con.p = message.NewPrinter(tag)
	return con
}

// WithClock replaces the function used to find the current time.
func (con *Console) WithClock(now func() time.Time) *Console {
	if now != nil {
		con.now = now
	}
	return con
}

// Run starts consuming commands from the console. It blocks until the context
// is cancelled or the underlying reader reaches EOF.
func (con *Console) Run(ctx context.Context) {
	scanner := bufio.NewScanner(con.reader)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				con.log.Error("console input error", "err", err)
			}
			return
		}
		if err := con.Execute(scanner.Text()); err != nil {
			con.log.Error(err.Error())
		}
	}
}

// Execute runs a single command line. Empty lines are ignored and a leading
// slash is optional.
func (con *Console) Execute(line string) error {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "/"))
	if len(fields) == 0 {
		return nil
	}
	cmd, ok := con.commands[strings.ToLower(fields[0])]
	if !ok {
		return fmt.Errorf("%w %q, try help", ErrUnknownCommand, fields[0])
	}
	return cmd.run(fields[1:])
}

func (con *Console) generate(args []string) error {
	at := con.now()
	if len(args) > 0 {
		day, err := parseDay(args[0])
		if err != nil {
			return err
		}
		at = day
	}
	l, err := con.c.Reset(at)
	if err != nil {
		// The level was still generated, only storing its record failed.
		con.log.Error(fmt.Sprintf("generate: %v", err))
	}
	if l != nil {
		con.log.Info(con.summary(l.Record))
	}
	return nil
}

func (con *Console) today([]string) error {
	l, ok := con.c.Level()
	if !ok {
		return errors.New("today: no level generated yet")
	}
	con.log.Info(con.summary(l.Record))
	con.log.Info(strings.Join(l.Record.Operations, " > "))
	return nil
}

func (con *Console) record(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: " + con.commands["record"].usage)
	}
	day, err := parseDay(args[0])
	if err != nil {
		return err
	}
	r, err := con.c.Record(day)
	if errors.Is(err, coursedb.ErrRecordNotFound) {
		return fmt.Errorf("record: no level stored for %v", args[0])
	} else if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	con.log.Info(con.summary(r))
	con.log.Info(strings.Join(r.Operations, " > "))
	return nil
}

func (con *Console) history([]string) error {
	records, err := con.c.History()
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if len(records) == 0 {
		con.log.Info("No levels stored.")
		return nil
	}
	for _, r := range records {
		con.log.Info(con.summary(r))
	}
	return nil
}

func (con *Console) help([]string) error {
	names := make([]string, 0, len(con.commands))
	for name := range con.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		con.log.Info(con.commands[name].usage)
	}
	return nil
}

func (con *Console) summary(r coursedb.Record) string {
	return con.p.Sprintf("%s: %d blocks, %d particles, seed %d, fingerprint %016x", r.Day, len(r.Operations), r.Particles, r.Seed, r.Fingerprint)
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(course.DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
