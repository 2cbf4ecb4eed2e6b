package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/academic"
	"github.com/trezcool/studyplanner/core/activity"
	"github.com/trezcool/studyplanner/core/notification"
	"github.com/trezcool/studyplanner/services/email"
	"github.com/trezcool/studyplanner/services/logger"
	"github.com/trezcool/studyplanner/tests"
)

type list []activity.Activity

func (l list) All() []activity.Activity { return l }

func setup(t *testing.T, to string, acts ...activity.Activity) (*Reminder, *emailsvc.MockService) {
	t.Helper()
	core.NowFunc = func() time.Time { return time.Date(2026, 10, 17, 7, 0, 0, 0, time.Local) }
	t.Cleanup(func() { core.NowFunc = time.Now })

	for i := range acts {
		acts[i].ID = i + 1
	}
	conf := &core.Config{
		AppName:  "Study Planner",
		Student:  academic.NewStudent("2301", "Budi", 3, "Informatics"),
		Reminder: core.ReminderConfig{To: to, Schedule: "0 7 * * *"},
	}
	mock := emailsvc.NewMockService(conf.AppName)
	r, err := New(conf, notification.NewEngine(list(acts)), mock, logsvc.NewNopLogger())
	require.NoError(t, err)
	return r, mock
}

func TestReminder_Send(t *testing.T) {
	today := testutil.Date(t, "2026-10-17")
	r, mock := setup(t, "Budi <budi@example.com>",
		testutil.Assignment(t, "Essay", today.AddDays(-1), 50, "History"),
		testutil.Exam(t, "Final", today.AddDays(2), "Math"),
	)

	sent, err := r.Send(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)

	msgs := mock.SentMessages()
	require.Len(t, msgs, 1)
	msg := msgs[0]
	assert.Equal(t, "budi@example.com", msg.To[0].Address)
	assert.Equal(t, "Study reminder: 1 overdue | 1 upcoming exam(s)", msg.Subject)
	assert.Contains(t, msg.TextContent, "Hi Budi,")
	assert.Contains(t, msg.TextContent, "- OVERDUE: assignment 'Essay' - deadline 2026-10-16")
	assert.Contains(t, msg.TextContent, "Study Planner")
	assert.Contains(t, msg.HTMLContent, "<li>EXAM IN 2 DAYS: Midterm - Math</li>")
}

func TestReminder_Send_nothingToSend(t *testing.T) {
	today := testutil.Date(t, "2026-10-17")
	r, mock := setup(t, "budi@example.com", testutil.Assignment(t, "Essay", today.AddDays(10), 0, "History"))

	sent, err := r.Send(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, mock.SentMessages())
}

func TestReminder_noRecipient(t *testing.T) {
	r, _ := setup(t, "")

	_, err := r.Send(context.Background())
	assert.ErrorIs(t, err, ErrNoRecipient)
	assert.ErrorIs(t, r.Start("@daily"), ErrNoRecipient)
}

func TestReminder_Start(t *testing.T) {
	r, _ := setup(t, "budi@example.com")

	assert.Error(t, r.Start("every day at seven"))
	require.NoError(t, r.Start("0 7 * * *"))
	r.Stop()
}

func TestNew_invalidRecipient(t *testing.T) {
	conf := &core.Config{Reminder: core.ReminderConfig{To: "not an address"}}
	_, err := New(conf, notification.NewEngine(list{}), emailsvc.NewMockService(""), logsvc.NewNopLogger())
	assert.Error(t, err)
}

func TestNew_recipients(t *testing.T) {
	today := testutil.Date(t, "2026-10-17")
	r, _ := setup(t, "Budi <budi@example.com>, ani@example.com",
		testutil.Assignment(t, "Essay", today.AddDays(-1), 50, "History"),
	)

	msg, ok := r.Digest()
	require.True(t, ok)
	require.Len(t, msg.To, 2)
	assert.Equal(t, "Budi", msg.To[0].Name)
	assert.Equal(t, "ani@example.com", msg.To[1].Address)
}
