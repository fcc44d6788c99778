package mcp

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()

	m.observe(toolKBSearch, outcomeOK, time.Now())
	m.observe(toolKBSearch, outcomeOK, time.Now())
	m.observe(toolKBSearch, outcomeError, time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.calls.WithLabelValues(toolKBSearch, outcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues(toolKBSearch, outcomeError)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.latency))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.observe(toolWebSearch, outcomeOK, time.Now())
	})
}
