// Package emissions derives Scope 1 and Scope 2 CO2 quantities from facility
// energy and fuel readings and aggregates them into a KPI snapshot.
package emissions

import "github.com/rshade/esgready/internal/dataset"

// Record is one facility-day of readings.
type Record struct {
	Date         string  `json:"date"`
	Facility     string  `json:"facility"`
	EnergyKWh    float64 `json:"energy_kwh"`
	RenewableKWh float64 `json:"renewable_kwh"`
	FuelLiters   float64 `json:"fuel_liters"`
}

// NewTable builds a dataset holding the five required columns from records.
func NewTable(records []Record) *dataset.Table {
	t := dataset.New(RequiredColumns...)
	for _, r := range records {
		t.AddRecord(map[string]dataset.Value{
			ColumnDate:         dataset.Text(r.Date),
			ColumnFacility:     dataset.Text(r.Facility),
			ColumnEnergyKWh:    dataset.Number(r.EnergyKWh),
			ColumnRenewableKWh: dataset.Number(r.RenewableKWh),
			ColumnFuelLiters:   dataset.Number(r.FuelLiters),
		})
	}
	return t
}
