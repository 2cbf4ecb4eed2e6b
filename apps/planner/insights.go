package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/apps"
	"github.com/trezcool/studyplanner/core/notification"
	"github.com/trezcool/studyplanner/services/reminder"
)

func (cli *commandLine) notify(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("notify")
	important := fs.Bool("important", false, "Only overdue, due today and exam today alerts.")
	email := fs.Bool("email", false, "E-mail the digest to reminder.to.")
	if err := parse(fs, args); err != nil {
		return err
	}

	alerts := cli.alerts.Check()
	summary := notification.Summarize(alerts)
	if *important {
		alerts = notification.FilterImportant(alerts)
	}
	for _, a := range alerts {
		fmt.Fprintln(cli.out, a.Message)
	}
	fmt.Fprintln(cli.out, summary)

	if !*email {
		return nil
	}
	rem, err := reminder.New(cli.conf, cli.alerts, cli.email, cli.logger)
	if err != nil {
		return err
	}
	sent, err := rem.Send(ctx)
	if err != nil {
		if errors.Is(err, reminder.ErrNoRecipient) {
			return apps.NewArgumentError("set reminder.to to e-mail the digest")
		}
		return err
	}
	if sent {
		fmt.Fprintf(cli.out, "digest sent to %s\n", cli.conf.Reminder.To)
	} else {
		fmt.Fprintln(cli.out, "nothing to send")
	}
	return nil
}

func (cli *commandLine) statistics(args []string) error {
	fs := cli.newFlagSet("stats")
	asJSON := fs.Bool("json", false, "Print the full report as JSON.")
	if err := parse(fs, args); err != nil {
		return err
	}

	report := cli.stats.Report()
	if *asJSON {
		enc := json.NewEncoder(cli.out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprint(cli.out, report.Summary())
	fmt.Fprintln(cli.out, "\nThis week:")
	for _, d := range report.HoursPerDay {
		fmt.Fprintf(cli.out, "  %-9s %s  %.1f h\n", d.Name, d.Date, d.Hours)
	}
	if len(report.HoursBySubject) > 0 {
		fmt.Fprintln(cli.out, "\nBy subject:")
		for _, s := range report.HoursBySubject {
			fmt.Fprintf(cli.out, "  %s: %.1f h\n", s.Subject, s.Hours)
		}
	}
	return nil
}

func (cli *commandLine) profile(args []string) error {
	if err := parse(cli.newFlagSet("profile"), args); err != nil {
		return err
	}

	if cli.conf.Student.IsEmpty() {
		fmt.Fprintln(cli.out, "No student profile configured.")
	} else {
		fmt.Fprintln(cli.out, cli.conf.Student)
	}
	if len(cli.conf.Courses) == 0 {
		return nil
	}
	fmt.Fprintln(cli.out, "\nCourses:")
	for _, c := range cli.conf.Courses {
		fmt.Fprintln(cli.out, "  "+c.String())
	}
	return nil
}
