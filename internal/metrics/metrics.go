package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus counters for the application
type Metrics struct {
	RegistrationsCreated prometheus.Counter
	RecordsImported      prometheus.Counter
	ImportRowErrors      prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "citizen_registry_registrations_created_total",
			Help: "Total number of public registrations accepted",
		}),
		RecordsImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "citizen_registry_nin_records_imported_total",
			Help: "Total number of NIN records upserted by bulk imports",
		}),
		ImportRowErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "citizen_registry_import_row_errors_total",
			Help: "Total number of rows that failed persistence during bulk imports",
		}),
	}
}

// IncRegistrationsCreated increments the registrations counter. Safe on a
// nil receiver so services can run without metrics in tests.
func (m *Metrics) IncRegistrationsCreated() {
	if m == nil {
		return
	}
	m.RegistrationsCreated.Inc()
}

// IncRecordsImported increments the imported-rows counter
func (m *Metrics) IncRecordsImported() {
	if m == nil {
		return
	}
	m.RecordsImported.Inc()
}

// IncImportRowErrors increments the failed-rows counter
func (m *Metrics) IncImportRowErrors() {
	if m == nil {
		return
	}
	m.ImportRowErrors.Inc()
}
