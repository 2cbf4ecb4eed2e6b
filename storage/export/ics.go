package export

import (
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/civil"
	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
)

const productID = "-//studyplanner//schedule export//EN"

// namespace of the stable event UIDs
var uidSpace = uuid.MustParse("0f0dca0e-54c3-4b8c-8c2e-55d4f7f0a0b1")

func eventUID(kind string, id int) string {
	return uuid.NewSHA1(uidSpace, []byte(fmt.Sprintf("%s/%d", kind, id))).String() + "@studyplanner"
}

func at(d civil.Date, t civil.Time) time.Time {
	return civil.DateTime{Date: d, Time: t}.In(time.Local)
}

// WriteICS writes one timed event per activity and an all-day "Deadline:" event for every
// unfinished assignment.
func WriteICS(w io.Writer, activities []activity.Activity) error {
	now := core.NowFunc()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, a := range activities {
		ev := cal.AddEvent(eventUID("activity", a.ID))
		ev.SetDtStampTime(now)
		ev.SetStartAt(at(a.Date, a.Start))
		ev.SetEndAt(at(a.Date, a.End))
		ev.SetSummary(fmt.Sprintf("[%s] %s", a.Kind(), a.Title))
		ev.SetDescription(fmt.Sprintf("Subject: %s\nStatus: %s\n%s", a.Subject(), a.Status, detail(a)))
		if exam, ok := a.AsExam(); ok && exam.Room != "" {
			ev.SetLocation(exam.Room)
		}

		if asg, ok := a.AsAssignment(); ok && !asg.IsDone() {
			dl := cal.AddEvent(eventUID("deadline", a.ID))
			dl.SetDtStampTime(now)
			dl.SetAllDayStartAt(at(asg.Deadline, civil.Time{}))
			dl.SetAllDayEndAt(at(asg.Deadline.AddDays(1), civil.Time{}))
			dl.SetSummary("Deadline: " + a.Title)
			dl.SetDescription(fmt.Sprintf("Subject: %s\nPriority: %s\nProgress: %d%%", asg.SubjectName, asg.Priority, asg.Progress))
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return errors.Wrap(err, "writing calendar")
}
