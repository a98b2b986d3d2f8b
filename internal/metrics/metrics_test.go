package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	reg := prometheus.NewRegistry()
	active := 2
	m, err := NewUpload(reg, Gauges{
		ActiveSessions:  func() int { return active },
		RealtimeClients: func() int { return 1 },
	})
	require.NoError(t, err)

	m.BatchStored(3)
	m.BatchStored(1)
	m.BatchFailed("session_invalid")

	assert.Equal(t, 4.0, testutil.ToFloat64(m.files))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.batches.WithLabelValues("stored")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.batches.WithLabelValues("session_invalid")))

	active = 5
	expected := `
# HELP upload_sessions_active Upload sessions issued and not yet consumed or expired.
# TYPE upload_sessions_active gauge
upload_sessions_active 5
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "upload_sessions_active"))
}

func TestUpload_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewUpload(reg, Gauges{})
	require.NoError(t, err)
	_, err = NewUpload(reg, Gauges{})
	assert.Error(t, err)
}
