package activity

import (
	"strings"

	"cloud.google.com/go/civil"

	"github.com/trezcool/studyplanner/core"
)

// A Predicate selects activities. Schedule.Filter and both front-ends compose them.
type Predicate func(Activity) bool

// And matches when every predicate does. No predicate matches everything.
func And(preds ...Predicate) Predicate {
	return func(a Activity) bool {
		for _, p := range preds {
			if !p(a) {
				return false
			}
		}
		return true
	}
}

func OnDate(d civil.Date) Predicate {
	return func(a Activity) bool { return a.Date == d }
}

// InRange matches the activities dated from `from` to `to`, both inclusive.
func InRange(from, to civil.Date) Predicate {
	return func(a Activity) bool { return inRange(a.Date, from, to) }
}

// InWeek matches the activities of the Monday to Sunday week containing d.
func InWeek(d civil.Date) Predicate {
	return InRange(WeekOf(d))
}

// HasSubject compares subject names case-insensitively.
func HasSubject(subject string) Predicate {
	subject = core.CleanString(subject)
	return func(a Activity) bool { return strings.EqualFold(a.Subject(), subject) }
}

func HasStatus(st Status) Predicate {
	return func(a Activity) bool { return a.Status == st }
}

func OfKind(k Kind) Predicate {
	return func(a Activity) bool { return a.Kind() == k }
}

// TitleContains does a case-insensitive substring match on titles.
func TitleContains(keyword string) Predicate {
	keyword = strings.ToLower(keyword)
	return func(a Activity) bool { return strings.Contains(strings.ToLower(a.Title), keyword) }
}
