package emailsvc

import (
	"bytes"
	"context"
	"net/mail"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/services/logger"
)

var ctx = context.Background()

func testConfig() *core.Config {
	return &core.Config{AppName: "Study Planner"}
}

func messages() []*core.EmailMessage {
	to := []mail.Address{{Name: "Budi", Address: "budi@example.com"}}
	return []*core.EmailMessage{
		{To: to, Subject: "first", BodyStr: "hello"},
		{To: to, Subject: "second", BodyStr: "world"},
		{Subject: "no recipient", BodyStr: "dropped"},
		{To: to, Subject: "no content"},
	}
}

func TestMockService(t *testing.T) {
	svc := NewMockService("Study Planner")
	require.NoError(t, svc.SendMessages(ctx, messages()...))

	sent := svc.SentMessages()
	subjects := make([]string, 0, len(sent))
	for _, m := range sent {
		subjects = append(subjects, m.Subject)
	}
	assert.ElementsMatch(t, []string{"first", "second"}, subjects)
}

func TestConsoleService(t *testing.T) {
	var out bytes.Buffer
	svc := NewConsoleService(testConfig(), &out)
	require.NoError(t, svc.SendMessages(ctx, messages()[0]))

	s := out.String()
	assert.Contains(t, s, "Subject: [Study Planner] first")
	assert.Contains(t, s, `To: "Budi" <budi@example.com>`)
	assert.Contains(t, s, "hello")
	assert.NotContains(t, s, "text/html")
}

func TestSendgridService(t *testing.T) {
	orig := callAPI
	t.Cleanup(func() { callAPI = orig })

	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "accepted", status: 202},
		{name: "rejected", status: 400, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			callAPI = func(_ context.Context, req rest.Request) (*rest.Response, error) {
				atomic.AddInt32(&calls, 1)
				assert.Equal(t, rest.Post, req.Method)
				assert.True(t, strings.HasSuffix(req.BaseURL, endpoint))
				assert.Contains(t, string(req.Body), "[Study Planner] ")
				return &rest.Response{StatusCode: tt.status}, nil
			}

			conf := testConfig()
			conf.SendgridApiKey = "SG.test"
			svc := New(conf, logsvc.NewNopLogger())
			err := svc.SendMessages(ctx, messages()...)

			assert.Equal(t, tt.wantErr, err != nil, "error = %v", err)
			assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
		})
	}
}
