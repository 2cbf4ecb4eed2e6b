package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/apps"
	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
)

// bindActivityFlags registers the NewActivity fields on fs. The returned func copies the flags
// that were actually set onto an input, so edits keep the other fields.
func bindActivityFlags(fs *flag.FlagSet) func(*activity.NewActivity) {
	var in activity.NewActivity
	fs.StringVar(&in.Kind, "kind", "", "StudySession, Assignment or Exam.")
	fs.StringVar(&in.Title, "title", "", "The title.")
	fs.StringVar(&in.Date, "date", "", "The date, YYYY-MM-DD.")
	fs.StringVar(&in.Start, "start", "", "The start time, HH:MM.")
	fs.StringVar(&in.End, "end", "", "The end time, HH:MM.")
	fs.StringVar(&in.Status, "status", "", "NotStarted, InProgress or Done.")
	fs.StringVar(&in.Subject, "subject", "", "The subject.")
	fs.StringVar(&in.Topic, "topic", "", "The topic of a study session.")
	fs.StringVar(&in.Deadline, "deadline", "", "The deadline of an assignment, YYYY-MM-DD.")
	fs.StringVar(&in.Priority, "priority", "", "The priority of an assignment: High, Medium or Low.")
	progress := fs.Int("progress", 0, "The progress of an assignment, 0-100.")
	fs.StringVar(&in.Room, "room", "", "The room of an exam.")
	fs.StringVar(&in.ExamKind, "examkind", "", "The kind of exam (Midterm, Final, Quiz...).")
	fs.StringVar(&in.Syllabus, "syllabus", "", "The syllabus of an exam.")

	return func(na *activity.NewActivity) {
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "kind":
				na.Kind = in.Kind
			case "title":
				na.Title = in.Title
			case "date":
				na.Date = in.Date
			case "start":
				na.Start = in.Start
			case "end":
				na.End = in.End
			case "status":
				na.Status = in.Status
			case "subject":
				na.Subject = in.Subject
			case "topic":
				na.Topic = in.Topic
			case "deadline":
				na.Deadline = in.Deadline
			case "priority":
				na.Priority = in.Priority
			case "progress":
				p := *progress
				na.Progress = &p
			case "room":
				na.Room = in.Room
			case "examkind":
				na.ExamKind = in.ExamKind
			case "syllabus":
				na.Syllabus = in.Syllabus
			}
		})
	}
}

func (cli *commandLine) build(na *activity.NewActivity) (activity.Activity, error) {
	if err := na.Validate(cli.validate); err != nil {
		return activity.Activity{}, err
	}
	return na.Build()
}

func (cli *commandLine) add(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("add")
	apply := bindActivityFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NFlag() == 0 {
		fs.Usage()
		return errHelp
	}

	var na activity.NewActivity
	apply(&na)
	a, err := cli.build(&na)
	if err != nil {
		return err
	}
	if a, err = cli.schedule.Add(ctx, &a); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "added #%d %s\n", a.ID, a)
	return nil
}

func (cli *commandLine) edit(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("edit")
	apply := bindActivityFlags(fs)
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}

	current, err := cli.schedule.Get(id)
	if err != nil {
		return err
	}
	na := activity.InputOf(current)
	apply(&na)
	a, err := cli.build(&na)
	if err != nil {
		return err
	}
	// -status alone on an assignment overrides the status its kept progress gives
	if isSet(fs, "status") && !isSet(fs, "progress") {
		if st, ok := activity.ParseStatus(na.Status); ok {
			a.SetStatus(st)
		}
	}
	if a, err = cli.schedule.Edit(ctx, id, &a); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "updated #%d %s\n", a.ID, a)
	return nil
}

func (cli *commandLine) list(args []string) error {
	fs := cli.newFlagSet("list")
	today := fs.Bool("today", false, "Only today's activities.")
	week := fs.Bool("week", false, "Only this week's activities (Monday to Sunday).")
	date := fs.String("date", "", "Only the activities of this date, YYYY-MM-DD.")
	subject := fs.String("subject", "", "Only this subject (case-insensitive).")
	status := fs.String("status", "", "Only this status.")
	kind := fs.String("kind", "", "Only this kind of activity.")
	search := fs.String("search", "", "Only titles containing this text (case-insensitive).")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table.")
	if err := parse(fs, args); err != nil {
		return err
	}

	var keep []activity.Predicate
	now := core.Today()
	if *today {
		keep = append(keep, activity.OnDate(now))
	}
	if *week {
		keep = append(keep, activity.InWeek(now))
	}
	if *date != "" {
		d, err := activity.ParseDate(*date)
		if err != nil {
			return apps.NewArgumentError("date must be YYYY-MM-DD")
		}
		keep = append(keep, activity.OnDate(d))
	}
	if s := strings.TrimSpace(*subject); s != "" {
		keep = append(keep, activity.HasSubject(s))
	}
	if *status != "" {
		st, ok := activity.ParseStatus(*status)
		if !ok {
			return apps.NewArgumentError("unknown status %q", *status)
		}
		keep = append(keep, activity.HasStatus(st))
	}
	if *kind != "" {
		k, ok := activity.ParseKind(*kind)
		if !ok {
			return apps.NewArgumentError("unknown kind %q", *kind)
		}
		keep = append(keep, activity.OfKind(k))
	}
	if s := strings.TrimSpace(*search); s != "" {
		keep = append(keep, activity.TitleContains(s))
	}

	acts := cli.schedule.Filter(activity.And(keep...))

	if *asJSON {
		enc := json.NewEncoder(cli.out)
		enc.SetIndent("", "  ")
		return enc.Encode(acts)
	}
	if len(acts) == 0 {
		fmt.Fprintln(cli.out, "No activities.")
		return nil
	}
	tw := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tTITLE\tDATE\tTIME\tSTATUS\tSUBJECT")
	for _, a := range acts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s-%s\t%s\t%s\n",
			a.ID, a.Kind(), a.Title, a.Date, activity.FormatClock(a.Start), activity.FormatClock(a.End), a.Status, a.Subject())
	}
	return tw.Flush()
}

func (cli *commandLine) show(args []string) error {
	id, err := parseWithID(cli.newFlagSet("show"), args)
	if err != nil {
		return err
	}
	a, err := cli.schedule.Get(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "#%d [%s]\n", a.ID, a.Status)
	fmt.Fprint(cli.out, a.Detail(core.Today()))
	return nil
}

// setStatus ignores unknown statuses and prints the activity as it is.
func (cli *commandLine) setStatus(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("status")
	set := fs.String("set", "", "NotStarted, InProgress or Done.")
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}
	if *set == "" {
		fs.Usage()
		return errHelp
	}

	st, ok := activity.ParseStatus(*set)
	if !ok {
		st = activity.Status(*set)
	}
	if err = cli.schedule.UpdateStatus(ctx, id, st); err != nil {
		return err
	}
	return cli.printActivity(id)
}

// setProgress ignores values outside [0, 100] and prints the activity as it is.
func (cli *commandLine) setProgress(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("progress")
	set := fs.Int("set", 0, "The progress, 0-100.")
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}
	if !isSet(fs, "set") {
		fs.Usage()
		return errHelp
	}
	if err = cli.schedule.UpdateProgress(ctx, id, *set); err != nil {
		if errors.Is(err, activity.ErrNotAssignment) {
			return apps.NewArgumentError("only assignments have a progress")
		}
		return err
	}
	return cli.printActivity(id)
}

func (cli *commandLine) printActivity(id int) error {
	a, err := cli.schedule.Get(id)
	if err != nil {
		return err
	}
	line := fmt.Sprintf("#%d %s [%s]", a.ID, a, a.Status)
	if asg, ok := a.AsAssignment(); ok {
		line += fmt.Sprintf(" %d%%", asg.Progress)
	}
	fmt.Fprintln(cli.out, line)
	return nil
}

func (cli *commandLine) remove(ctx context.Context, args []string) error {
	id, err := parseWithID(cli.newFlagSet("remove"), args)
	if err != nil {
		return err
	}
	if err = cli.schedule.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "removed #%d\n", id)
	return nil
}

// clear asks for a confirmation when stdin is a terminal, unless -yes is given.
func (cli *commandLine) clear(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("clear")
	yes := fs.Bool("yes", false, "Do not ask for confirmation.")
	if err := parse(fs, args); err != nil {
		return err
	}

	n := cli.schedule.Count()
	if !*yes && isTerminalFunc(int(os.Stdin.Fd())) {
		fmt.Fprintf(cli.out, "Remove all %d activities? [y/N] ", n)
		answer, err := bufio.NewReader(cli.in).ReadString('\n')
		if err != nil && answer == "" {
			return errors.Wrap(err, "reading confirmation")
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
		default:
			fmt.Fprintln(cli.out, "aborted")
			return nil
		}
	}
	if err := cli.schedule.RemoveAll(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "removed %d activities\n", n)
	return nil
}
