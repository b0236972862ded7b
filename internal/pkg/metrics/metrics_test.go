package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAttendance(t *testing.T) {
	before := testutil.ToFloat64(attendanceRecorded.WithLabelValues("late"))
	pointsBefore := testutil.ToFloat64(pointsAwarded)

	RecordAttendance("late", 10)

	assert.Equal(t, before+1, testutil.ToFloat64(attendanceRecorded.WithLabelValues("late")))
	assert.Equal(t, pointsBefore+10, testutil.ToFloat64(pointsAwarded))
}

func TestHandlerExposesCounters(t *testing.T) {
	ObserveHTTP(http.MethodGet, "/api/seating", 200, 12*time.Millisecond)
	RecordPurchase("skin", "success")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `classpoints_http_requests_total{method="GET",path="/api/seating",status="200"}`)
	assert.Contains(t, body, `classpoints_store_purchases_total{kind="skin",outcome="success"}`)
}
