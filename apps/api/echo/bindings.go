package echoapi

import (
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
)

// ActivityFilter holds the query parameters of GET /activities. Every set filter must match.
type ActivityFilter struct {
	Today   bool
	Week    bool
	Date    *civil.Date
	Subject string
	Status  activity.Status
	Kind    activity.Kind
	Search  string

	today civil.Date
}

func boolParam(ctx echo.Context, name string) (bool, error) {
	v := ctx.QueryParam(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, core.NewValidationError(nil, core.FieldError{Field: name, Error: name + " must be a boolean"})
	}
	return b, nil
}

func (f *ActivityFilter) Bind(ctx echo.Context) error {
	var err error
	if f.Today, err = boolParam(ctx, "today"); err != nil {
		return err
	}
	if f.Week, err = boolParam(ctx, "week"); err != nil {
		return err
	}
	if v := ctx.QueryParam("date"); v != "" {
		d, err := activity.ParseDate(v)
		if err != nil {
			return errInvalidDate
		}
		f.Date = &d
	}
	if v := ctx.QueryParam("status"); v != "" {
		st, ok := activity.ParseStatus(v)
		if !ok {
			return core.NewValidationError(nil, core.FieldError{Field: "status", Error: "unknown status " + strconv.Quote(v)})
		}
		f.Status = st
	}
	if v := ctx.QueryParam("kind"); v != "" {
		k, ok := activity.ParseKind(v)
		if !ok {
			return core.NewValidationError(nil, core.FieldError{Field: "kind", Error: "unknown kind " + strconv.Quote(v)})
		}
		f.Kind = k
	}
	f.Subject = strings.TrimSpace(ctx.QueryParam("subject"))
	f.Search = strings.TrimSpace(ctx.QueryParam("search"))
	f.today = core.Today()
	return nil
}

// Predicate composes the set filters.
func (f ActivityFilter) Predicate() activity.Predicate {
	preds := make([]activity.Predicate, 0, 7)
	if f.Today {
		preds = append(preds, activity.OnDate(f.today))
	}
	if f.Week {
		preds = append(preds, activity.InWeek(f.today))
	}
	if f.Date != nil {
		preds = append(preds, activity.OnDate(*f.Date))
	}
	if f.Subject != "" {
		preds = append(preds, activity.HasSubject(f.Subject))
	}
	if f.Status != "" {
		preds = append(preds, activity.HasStatus(f.Status))
	}
	if f.Kind != "" {
		preds = append(preds, activity.OfKind(f.Kind))
	}
	if f.Search != "" {
		preds = append(preds, activity.TitleContains(f.Search))
	}
	return activity.And(preds...)
}
