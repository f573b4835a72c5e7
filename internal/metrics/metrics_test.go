package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	require.Equal(t, ResultOK, Result(nil))
	require.Equal(t, ResultError, Result(errors.New("x")))
}

func TestCVSaves_Increments(t *testing.T) {
	before := testutil.ToFloat64(CVSaves.WithLabelValues(ResultOK))
	CVSaves.WithLabelValues(ResultOK).Inc()
	require.Equal(t, before+1, testutil.ToFloat64(CVSaves.WithLabelValues(ResultOK)))
}
