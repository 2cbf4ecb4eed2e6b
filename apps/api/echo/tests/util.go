package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/trezcool/studyplanner/apps/api/echo"
	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/academic"
	"github.com/trezcool/studyplanner/core/activity"
	"github.com/trezcool/studyplanner/core/notification"
	"github.com/trezcool/studyplanner/core/stats"
	"github.com/trezcool/studyplanner/services/logger"
	"github.com/trezcool/studyplanner/tests"
)

type env struct {
	app      echoapi.Server
	schedule *activity.Schedule
	store    *testutil.MemoryStore
	conf     *core.Config
}

// setup starts an API over an empty in-memory schedule, with today fixed on Saturday 2026-10-17.
func setup(t *testing.T) *env {
	t.Helper()
	core.NowFunc = func() time.Time { return time.Date(2026, 10, 17, 10, 0, 0, 0, time.Local) }
	t.Cleanup(func() { core.NowFunc = time.Now })

	conf := &core.Config{
		AppName:  "Study Planner",
		TestMode: true,
		Student:  academic.NewStudent("2301", "Budi", 3, "Informatics"),
		Courses:  []academic.Course{academic.NewCourse("IF201", "Object Oriented Programming", 3, "Dr. Sari", "R-101")},
	}
	logger := logsvc.NewNopLogger()
	store := testutil.NewMemoryStore()
	sched := activity.NewSchedule(context.Background(), store, logger)
	validate, translator := core.NewValidator()

	app := echoapi.NewServer(&echoapi.Deps{
		Conf:       conf,
		Logger:     logger,
		Schedule:   sched,
		Alerts:     notification.NewEngine(sched),
		Stats:      stats.NewEngine(sched),
		Validate:   validate,
		Translator: translator,
	})
	return &env{app: app, schedule: sched, store: store, conf: conf}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func (e *env) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	e.app.ServeHTTP(rec, req)
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...activity.Activity) []byte {
	if objs == nil {
		objs = []activity.Activity{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, e *env, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(tt.method, tt.path, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}
