package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/recommend", "200"))
	RecordAPIRequest("POST", "/recommend", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/recommend", "200"))

	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %f", after-before)
	}
}

func TestRecordCatalogLoad(t *testing.T) {
	RecordCatalogLoad(4, nil)
	if got := testutil.ToFloat64(CatalogSize); got != 4 {
		t.Errorf("expected catalog size 4, got %f", got)
	}

	before := testutil.ToFloat64(CatalogLoadErrors)
	RecordCatalogLoad(0, errors.New("boom"))
	if got := testutil.ToFloat64(CatalogLoadErrors); got-before != 1 {
		t.Errorf("expected error counter to increase by 1, got %f", got-before)
	}
	// failed loads keep the last known size
	if got := testutil.ToFloat64(CatalogSize); got != 4 {
		t.Errorf("expected catalog size 4 after failure, got %f", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("expected %f active, got %f", before+1, got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("expected %f active, got %f", before, got)
	}
}
