// Package metrics provides Prometheus counters for menu transactions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BundleSlotsFilled counts ingredient slots durably filled.
	BundleSlotsFilled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bundleforge_bundle_slots_filled_total",
			Help: "Total number of bundle ingredient slots filled",
		},
	)

	// BundleCompletions counts bundles and areas completed, by scope.
	BundleCompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundleforge_bundle_completions_total",
			Help: "Total number of bundle and area completions",
		},
		[]string{"scope"},
	)

	// PartialContributions counts partial donation ledger transitions.
	PartialContributions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundleforge_partial_contributions_total",
			Help: "Partial contribution ledger transitions by outcome",
		},
		[]string{"outcome"},
	)

	// CraftTransactions counts crafting station transitions by station and outcome.
	CraftTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundleforge_craft_transactions_total",
			Help: "Crafting transactions by station and outcome",
		},
		[]string{"station", "outcome"},
	)

	// ShopTransactions counts shop purchases and sales by outcome.
	ShopTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundleforge_shop_transactions_total",
			Help: "Shop transactions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// RescuedItems counts units returned during menu close or shutdown, by destination.
	RescuedItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundleforge_rescued_item_units_total",
			Help: "Item units rescued on menu close by destination",
		},
		[]string{"destination"},
	)
)

func RecordSlotFilled() {
	BundleSlotsFilled.Inc()
}

func RecordCompletion(scope string) {
	BundleCompletions.WithLabelValues(scope).Inc()
}

func RecordPartial(outcome string) {
	PartialContributions.WithLabelValues(outcome).Inc()
}

func RecordCraft(station, outcome string) {
	CraftTransactions.WithLabelValues(station, outcome).Inc()
}

func RecordShop(kind, outcome string) {
	ShopTransactions.WithLabelValues(kind, outcome).Inc()
}

func RecordRescue(destination string, units int) {
	if units <= 0 {
		return
	}
	RescuedItems.WithLabelValues(destination).Add(float64(units))
}
