package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"

	"github.com/trezcool/studyplanner/apps"
	"github.com/trezcool/studyplanner/apps/shared"
	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
	"github.com/trezcool/studyplanner/core/notification"
	"github.com/trezcool/studyplanner/core/stats"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf       *core.Config
	logger     core.Logger
	storage    *shared.Storage
	schedule   *activity.Schedule
	alerts     *notification.Engine
	stats      *stats.Engine
	email      core.EmailService
	validate   *validator.Validate
	translator ut.Translator
	in         io.Reader
	out        io.Writer
}

var commands = []struct {
	name  string
	usage string
}{
	{"add", "add -kind KIND -title TITLE -date DATE -start HH:MM -end HH:MM -subject SUBJECT [...] - add an activity"},
	{"list", "list [-today] [-week] [-date DATE] [-subject S] [-status S] [-kind K] [-search TEXT] [-json] - list activities"},
	{"show", "show -id ID - show the details of an activity"},
	{"edit", "edit -id ID [-title TITLE] [...] - change the given fields of an activity"},
	{"status", "status -id ID -set STATUS - set the status of an activity"},
	{"progress", "progress -id ID -set 0-100 - set the progress of an assignment"},
	{"remove", "remove -id ID - remove an activity"},
	{"clear", "clear [-yes] - remove every activity"},
	{"notify", "notify [-important] [-email] - show the current alerts, optionally e-mailing the digest"},
	{"stats", "stats [-json] - show the study statistics"},
	{"export", "export [-format csv|xlsx|ics] [-o FILE] - export the schedule"},
	{"backup", "backup [-o FILE] - copy the schedule to a text file"},
	{"profile", "profile - show the student profile and the courses"},
	{"migrate", "migrate COMMAND [ARGS] - run the database migrations (postgres storage only)"},
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	for _, c := range commands {
		fmt.Fprintln(cli.out, "  "+c.usage)
	}
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	name, rest := args[1], args[2:]
	switch name {
	case "add":
		return cli.add(ctx, rest)
	case "list":
		return cli.list(rest)
	case "show":
		return cli.show(rest)
	case "edit":
		return cli.edit(ctx, rest)
	case "status":
		return cli.setStatus(ctx, rest)
	case "progress":
		return cli.setProgress(ctx, rest)
	case "remove":
		return cli.remove(ctx, rest)
	case "clear":
		return cli.clear(ctx, rest)
	case "notify":
		return cli.notify(ctx, rest)
	case "stats":
		return cli.statistics(rest)
	case "export":
		return cli.export(rest)
	case "backup":
		return cli.backup(ctx, rest)
	case "profile":
		return cli.profile(rest)
	case "migrate":
		return cli.migrate(rest)
	default:
		cli.printUsage()
		if s := suggest(name); s != "" {
			fmt.Fprintf(cli.out, "\nunknown command %q, did you mean %q?\n", name, s)
		}
		return errHelp
	}
}

// suggest returns the command closest to name, or "" when none is similar enough.
func suggest(name string) string {
	best, bestRatio := "", 0.6
	for _, c := range commands {
		m := difflib.NewMatcher(strings.Split(name, ""), strings.Split(c.name, ""))
		if r := m.Ratio(); r >= bestRatio {
			best, bestRatio = c.name, r
		}
	}
	return best
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return apps.NewArgumentError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return nil
}

// parseWithID parses a command that targets one activity through -id.
func parseWithID(fs *flag.FlagSet, args []string) (int, error) {
	id := fs.Int("id", 0, "The activity id.")
	if err := parse(fs, args); err != nil {
		return 0, err
	}
	if *id <= 0 {
		fs.Usage()
		return 0, errHelp
	}
	return *id, nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// describe renders validation errors field by field.
func (cli *commandLine) describe(err error) string {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return joinFields(core.TranslateErrors(vErrs, cli.translator))
	}
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		flds := make(map[string]string, len(vErr.Fields))
		for _, f := range vErr.Fields {
			flds[f.Field] = f.Error
		}
		return joinFields(flds)
	}
	if errors.Is(err, activity.ErrNotFound) {
		return "activity not found"
	}
	return err.Error()
}

func joinFields(flds map[string]string) string {
	names := make([]string, 0, len(flds))
	for name := range flds {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, name+": "+flds[name])
	}
	return strings.Join(lines, "; ")
}
