package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/core/activity"
)

// text columns that are always quoted
var quoted = map[int]bool{2: true, 7: true, 8: true}

// WriteCSV writes one row per activity under the header line. Title, subject and detail are
// always double-quoted so spreadsheet tools keep them as text.
func WriteCSV(w io.Writer, activities []activity.Activity) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(columns, ",") + "\n"); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, a := range activities {
		fields := row(a)
		for i, f := range fields {
			if quoted[i] || strings.ContainsAny(f, ",\"\r\n") {
				fields[i] = quote(f)
			}
		}
		if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}
	return errors.Wrap(bw.Flush(), "writing csv")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
