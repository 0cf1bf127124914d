/*Package metrics wraps datadog-go to facilitate metric recording.
Naming convention:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
*/
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/astromart/goledger/base/log"
)

const (
	// ddRate is the rate to pass metrics to the datadog agent. 1 means always.
	ddRate = 1
	// buffer this many counters before sending to statsd
	bufferMetrics = 10

	ddDefaultPort = 8125
)

// Ender ends a BumpTime measurement
type Ender interface {
	End()
}

// Service provides the metric recording interface
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

var (
	initOnce sync.Once
	ddClient statsCli
)

func initDDClient() {
	addr := fmt.Sprintf("%s:%d", viper.GetString("datadog_host"), ddDefaultPort)
	cli, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
	}
	ddClient = cli
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	return &metricsImpl{
		pkgName: pkgName,
		ddTags: []string{
			"host:", // remove unused host tag
			"env:" + viper.GetString("env_name"),
			"app:" + viper.GetString("app_name"),
		},
	}
}

type metricsImpl struct {
	pkgName string
	ddTags  []string
}

func (mt *metricsImpl) key(key string) string {
	return mt.pkgName + "." + key
}

func (mt *metricsImpl) tags(tags []string) []string {
	merged := append([]string{}, mt.ddTags...)
	for i := 0; i+1 < len(tags); i += 2 {
		merged = append(merged, tags[i]+":"+tags[i+1])
	}
	return merged
}

// BumpAvg bumps the average for the given key
func (mt *metricsImpl) BumpAvg(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	ddClient.Gauge(mt.key(key), val, mt.tags(tags), ddRate)
}

// BumpSum bumps the sum for the given key
func (mt *metricsImpl) BumpSum(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	ddClient.Count(mt.key(key), int64(val), mt.tags(tags), ddRate)
}

// BumpHistogram bumps the histogram for the given key
func (mt *metricsImpl) BumpHistogram(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	ddClient.Histogram(mt.key(key), val, mt.tags(tags), ddRate)
}

// BumpTime measures the duration between the call and End()
func (mt *metricsImpl) BumpTime(key string, tags ...string) Ender {
	initOnce.Do(initDDClient)
	return &timeEnder{
		metrics: mt,
		key:     key,
		tags:    tags,
		start:   time.Now(),
	}
}

type timeEnder struct {
	metrics *metricsImpl
	key     string
	tags    []string
	start   time.Time
}

func (te *timeEnder) End() {
	elapsed := float64(time.Since(te.start)) / float64(time.Millisecond)
	ddClient.TimeInMilliseconds(te.metrics.key(te.key), elapsed, te.metrics.tags(te.tags), ddRate)
}
