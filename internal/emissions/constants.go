package emissions

// Emission factors applied to facility readings.
const (
	// GridEmissionFactor is kg CO2 per kWh of non-renewable grid electricity.
	GridEmissionFactor = 0.82

	// FuelEmissionFactor is kg CO2 per liter of diesel burned on site.
	FuelEmissionFactor = 2.31
)

// Input columns of a facility energy dataset.
const (
	ColumnDate         = "date"
	ColumnFacility     = "facility"
	ColumnEnergyKWh    = "energy_kwh"
	ColumnRenewableKWh = "renewable_kwh"
	ColumnFuelLiters   = "fuel_liters"
)

// Columns derived by Calculate.
const (
	ColumnScope1 = "scope1_co2_kg"
	ColumnScope2 = "scope2_co2_kg"
	ColumnTotal  = "total_co2_kg"
)

// RequiredColumns are the columns an audit expects in every dataset.
//
//nolint:gochecknoglobals // Constant lookup table.
var RequiredColumns = []string{
	ColumnDate,
	ColumnFacility,
	ColumnEnergyKWh,
	ColumnRenewableKWh,
	ColumnFuelLiters,
}

// CalculationColumns are the columns Calculate cannot run without.
//
//nolint:gochecknoglobals // Constant lookup table.
var CalculationColumns = []string{
	ColumnEnergyKWh,
	ColumnRenewableKWh,
	ColumnFuelLiters,
}
