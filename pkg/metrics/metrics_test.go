package metrics

import (
	"database/sql"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// newUnregisteredMetrics собирает Metrics без регистрации в дефолтном
// registry, чтобы тесты могли создавать независимые экземпляры
func newUnregisteredMetrics() *Metrics {
	return &Metrics{
		dbPoolOpen:   prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "db_pool_open_connections"}, []string{}),
		dbPoolInUse:  prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "db_pool_in_use_connections"}, []string{}),
		dbPoolIdle:   prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "db_pool_idle_connections"}, []string{}),
		dbPoolWaited: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "db_pool_wait_count_total"}, []string{}),
	}
}

func TestSetDBPoolStats_WaitCountDelta(t *testing.T) {
	m := newUnregisteredMetrics()

	m.SetDBPoolStats(sql.DBStats{OpenConnections: 3, InUse: 1, Idle: 2, WaitCount: 5})
	assert.Equal(t, 5.0, testutil.ToFloat64(m.dbPoolWaited.WithLabelValues()))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dbPoolOpen.WithLabelValues()))

	// Счётчик растёт на дельту, а не на абсолютное значение снэпшота
	m.SetDBPoolStats(sql.DBStats{WaitCount: 8})
	assert.Equal(t, 8.0, testutil.ToFloat64(m.dbPoolWaited.WithLabelValues()))

	// Без новых ожиданий счётчик не меняется
	m.SetDBPoolStats(sql.DBStats{WaitCount: 8})
	assert.Equal(t, 8.0, testutil.ToFloat64(m.dbPoolWaited.WithLabelValues()))
}

func TestSetDBPoolStats_InstancesAreIndependent(t *testing.T) {
	first := newUnregisteredMetrics()
	first.SetDBPoolStats(sql.DBStats{WaitCount: 8})

	// Снэпшот первого экземпляра не должен занижать дельту второго
	second := newUnregisteredMetrics()
	second.SetDBPoolStats(sql.DBStats{WaitCount: 3})
	assert.Equal(t, 3.0, testutil.ToFloat64(second.dbPoolWaited.WithLabelValues()))
}
