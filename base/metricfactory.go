package base

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/relex/gotils/logger"
)

// MetricFactory manages Prometheus metrics of one transformer run
//
// All metrics are registered in a private registry owned by the root factory, so that multiple runs in the same
// process (e.g. tests) never conflict.
type MetricFactory struct {
	namePrefix        string
	parentLabelNames  []string
	parentLabelValues []string
	registryLock      *sync.Mutex
	registry          *prometheus.Registry
	collectors        map[string]prometheus.Collector
}

// NewMetricFactory creates a factory with prefix for metrics names and fixed labels for all metrics created from this new factory
func NewMetricFactory(prefix string, labelNames []string, labelValues []string) *MetricFactory {
	if len(labelNames) != len(labelValues) {
		logger.Panicf("different len of labelNames (%s) and labelValues (%s)",
			strings.Join(labelNames, ","), strings.Join(labelValues, ","))
	}
	return &MetricFactory{
		namePrefix:        prefix,
		parentLabelNames:  labelNames,
		parentLabelValues: labelValues,
		registryLock:      &sync.Mutex{},
		registry:          prometheus.NewPedanticRegistry(),
		collectors:        make(map[string]prometheus.Collector, 20),
	}
}

// NewSubFactory creates a sub-factory which inherits the parent's prefix, fixed labels and registry,
// with more prefix and fixed labels added to all metrics created from this new sub-factory
func (factory *MetricFactory) NewSubFactory(prefix string, labelNames []string, labelValues []string) *MetricFactory {
	fullPrefix, allLabelNames, allLabelValues := factory.concatNameAndLabels(prefix, labelNames, labelValues)
	return &MetricFactory{
		namePrefix:        fullPrefix,
		parentLabelNames:  allLabelNames,
		parentLabelValues: allLabelValues,
		registryLock:      factory.registryLock,
		registry:          factory.registry,
		collectors:        factory.collectors,
	}
}

// AddOrGetCounter adds or gets a counter
func (factory *MetricFactory) AddOrGetCounter(name string, help string, labelNames []string, labelValues []string) prometheus.Counter {
	if len(labelNames) != len(labelValues) {
		logger.Panicf("different lengths of labelNames (%s) and labelValues (%s)",
			strings.Join(labelNames, ","), strings.Join(labelValues, ","))
	}
	return factory.AddOrGetCounterVec(name, help, labelNames, labelValues).WithLabelValues()
}

// AddOrGetCounterVec adds or gets a counter-vec with leftmost label values
func (factory *MetricFactory) AddOrGetCounterVec(name string, help string, labelNames []string, leftmostLabelValues []string) *prometheus.CounterVec {
	fullName, allLabelNames, allLeftmostLabelValues := factory.concatNameAndLabels(name, labelNames, leftmostLabelValues)

	factory.registryLock.Lock()
	var counterVec *prometheus.CounterVec
	if existing, ok := factory.collectors[fullName]; ok {
		counterVec = existing.(*prometheus.CounterVec)
	} else {
		counterOpts := prometheus.CounterOpts{}
		counterOpts.Name = fullName
		counterOpts.Help = help
		counterVec = prometheus.NewCounterVec(counterOpts, allLabelNames)
		factory.collectors[fullName] = counterVec
		if err := factory.registry.Register(counterVec); err != nil {
			logger.Panicf("failed to register counter-vec '%s': %s", fullName, err.Error())
		}
	}
	factory.registryLock.Unlock()

	curryLabels := buildLabels(allLabelNames, allLeftmostLabelValues)
	curriedCounterVec, cerr := counterVec.CurryWith(curryLabels)
	if cerr != nil {
		logger.Panicf("failed to curry counter-vec '%s' with %s: %s", fullName, curryLabels, cerr.Error())
	}
	return curriedCounterVec
}

// AddOrGetGauge adds or gets a gauge
func (factory *MetricFactory) AddOrGetGauge(name string, help string, labelNames []string, labelValues []string) prometheus.Gauge {
	if len(labelNames) != len(labelValues) {
		logger.Panicf("different lengths of labelNames (%s) and labelValues (%s)",
			strings.Join(labelNames, ","), strings.Join(labelValues, ","))
	}
	fullName, allLabelNames, allLabelValues := factory.concatNameAndLabels(name, labelNames, labelValues)

	factory.registryLock.Lock()
	defer factory.registryLock.Unlock()
	var gaugeVec *prometheus.GaugeVec
	if existing, ok := factory.collectors[fullName]; ok {
		gaugeVec = existing.(*prometheus.GaugeVec)
	} else {
		gaugeOpts := prometheus.GaugeOpts{}
		gaugeOpts.Name = fullName
		gaugeOpts.Help = help
		gaugeVec = prometheus.NewGaugeVec(gaugeOpts, allLabelNames)
		factory.collectors[fullName] = gaugeVec
		if err := factory.registry.Register(gaugeVec); err != nil {
			logger.Panicf("failed to register gauge-vec '%s': %s", fullName, err.Error())
		}
	}
	return gaugeVec.WithLabelValues(allLabelValues...)
}

// DumpMetrics dumps all metrics created in this factory and derived sub-factories into the .prom text format without comments
func (factory *MetricFactory) DumpMetrics(includeZeroValues bool) (string, error) {
	metricFamilies, err := factory.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("failed to gather metrics: %w", err)
	}
	writer := &bytes.Buffer{}
	for _, mf := range metricFamilies {
		if !strings.HasPrefix(mf.GetName(), factory.namePrefix) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(writer, mf); err != nil {
			return "", fmt.Errorf("failed to export '%s': %w", mf.GetName(), err)
		}
	}
	lines := strings.Split(writer.String(), "\n")
	linesFiltered := make([]string, 0, len(lines)/2)
	for _, ln := range lines {
		if strings.HasPrefix(ln, "#") {
			continue
		}
		if !includeZeroValues && strings.HasSuffix(ln, " 0") {
			continue
		}
		linesFiltered = append(linesFiltered, ln)
	}
	return strings.Join(linesFiltered, "\n"), nil
}

// Gatherer returns the registry shared by this factory and all sub-factories
func (factory *MetricFactory) Gatherer() prometheus.Gatherer {
	return factory.registry
}

func (factory *MetricFactory) concatNameAndLabels(name string, labelNames []string, leftmostLabelValues []string) (string, []string, []string) {
	if len(labelNames) < len(leftmostLabelValues) {
		logger.Panicf("length of labelNames (%s) should be equal or greater than length of leftmostLabelValues (%s)",
			strings.Join(labelNames, ","), strings.Join(leftmostLabelValues, ","))
	}
	fullName := factory.namePrefix + name
	allLabelNames := append(append([]string(nil), factory.parentLabelNames...), labelNames...)
	allLeftmostLabelValues := append(append([]string(nil), factory.parentLabelValues...), leftmostLabelValues...)
	return fullName, allLabelNames, allLeftmostLabelValues
}

func buildLabels(labelNames []string, leftmostLabelValues []string) map[string]string {
	labelMap := make(map[string]string, len(leftmostLabelValues))
	for i, value := range leftmostLabelValues {
		labelMap[labelNames[i]] = value
	}
	return labelMap
}
