package costing

import "nailpos/internal/model"

// Source tells where a resolved recipe list came from.
type Source string

const (
	SourceManual Source = "manual" // the service carries the list, possibly empty
	SourceLegacy Source = "legacy" // absent on the service, found in a legacy recipe
	SourceNone   Source = "none"   // absent on the service and no legacy recipe
)

// Recipe is the normalized recipe of one service: the two lists the roll-up
// consumes plus their provenance.
type Recipe struct {
	Materials       []model.MaterialLine
	Consumables     []model.ConsumableLine
	MaterialsFrom   Source
	ConsumablesFrom Source
}
