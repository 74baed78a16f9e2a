package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestRecordHTTPRequest(t *testing.T) {
	m := New()
	m.RecordHTTPRequest("GET", "/students", 200, 20*time.Millisecond)
	m.RecordHTTPRequest("GET", "/students", 200, 30*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `gympoint_http_requests_total{method="GET",path="/students",status="200"} 2`)
	assert.Contains(t, body, `gympoint_http_request_duration_seconds_count{method="GET",path="/students"} 2`)
}

func TestRecordMailJob(t *testing.T) {
	m := New()
	m.RecordMailJob("answer_mail", nil)
	m.RecordMailJob("answer_mail", errors.New("smtp down"))

	body := scrape(t, m)
	assert.Contains(t, body, `gympoint_mail_jobs_total{kind="answer_mail",success="true"} 1`)
	assert.Contains(t, body, `gympoint_mail_jobs_total{kind="answer_mail",success="false"} 1`)
}

func TestHandlerExposesGauges(t *testing.T) {
	m := New()
	m.IncrementInFlight()
	m.RecordImport("completed")

	body := scrape(t, m)
	assert.Contains(t, body, "gympoint_http_inflight_requests 1")
	assert.Contains(t, body, `gympoint_import_files_total{status="completed"} 1`)
}
