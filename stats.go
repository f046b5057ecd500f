package ftgmac

import "github.com/rcrowley/go-metrics"

// Stats is a snapshot of a device's counters.
type Stats struct {
	TxPackets   int64
	TxBytes     int64
	TxTimeouts  int64
	TxRingFull  int64
	RxPackets   int64
	RxBytes     int64
	RxDropped   int64
	LinkChanges int64
}

type deviceMetrics struct {
	txPackets   metrics.Counter
	txBytes     metrics.Counter
	txTimeouts  metrics.Counter
	txRingFull  metrics.Counter
	rxPackets   metrics.Counter
	rxBytes     metrics.Counter
	rxDropped   metrics.Counter
	linkChanges metrics.Counter
}

// deviceRegistry returns the view of r that holds the counters of the device
// called name. It fails if another device already registered under name.
func deviceRegistry(r metrics.Registry, name string) (metrics.Registry, error) {
	if name != "" {
		r = metrics.NewPrefixedChildRegistry(r, name+".")
	}
	if r.Get("tx.packets") != nil {
		return nil, &FieldError{Field: "Name", Err: ErrMetricsInUse}
	}
	return r, nil
}

func newDeviceMetrics(r metrics.Registry) deviceMetrics {
	return deviceMetrics{
		txPackets:   metrics.GetOrRegisterCounter("tx.packets", r),
		txBytes:     metrics.GetOrRegisterCounter("tx.bytes", r),
		txTimeouts:  metrics.GetOrRegisterCounter("tx.timeouts", r),
		txRingFull:  metrics.GetOrRegisterCounter("tx.ring_full", r),
		rxPackets:   metrics.GetOrRegisterCounter("rx.packets", r),
		rxBytes:     metrics.GetOrRegisterCounter("rx.bytes", r),
		rxDropped:   metrics.GetOrRegisterCounter("rx.dropped", r),
		linkChanges: metrics.GetOrRegisterCounter("link.changes", r),
	}
}

func (m *deviceMetrics) snapshot() Stats {
	return Stats{
		TxPackets:   m.txPackets.Count(),
		TxBytes:     m.txBytes.Count(),
		TxTimeouts:  m.txTimeouts.Count(),
		TxRingFull:  m.txRingFull.Count(),
		RxPackets:   m.rxPackets.Count(),
		RxBytes:     m.rxBytes.Count(),
		RxDropped:   m.rxDropped.Count(),
		LinkChanges: m.linkChanges.Count(),
	}
}
