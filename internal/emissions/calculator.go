package emissions

import (
	"context"
	"fmt"
	"math"

	"github.com/rshade/esgready/internal/dataset"
	"github.com/rshade/esgready/internal/kpi"
	"github.com/rshade/esgready/internal/logging"
)

// Calculate returns a copy of t enriched with scope1_co2_kg, scope2_co2_kg
// and total_co2_kg:
//
//	scope2 = (energy_kwh - renewable_kwh) * GridEmissionFactor
//	scope1 = fuel_liters * FuelEmissionFactor
//	total  = scope1 + scope2
//
// A null input cell yields a null derived cell. Returns ErrMissingColumn when
// any of energy_kwh, renewable_kwh or fuel_liters is absent and
// ErrNonNumeric when one of them holds text.
func Calculate(ctx context.Context, t *dataset.Table) (*dataset.Table, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "emissions").
		Str("operation", "Calculate").
		Logger()

	for _, col := range CalculationColumns {
		if !t.Has(col) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	rows := t.Len()
	scope1 := make([]dataset.Value, rows)
	scope2 := make([]dataset.Value, rows)
	total := make([]dataset.Value, rows)

	for r := range rows {
		energy, energyOK, err := numericCell(t, ColumnEnergyKWh, r)
		if err != nil {
			return nil, err
		}
		renewable, renewableOK, err := numericCell(t, ColumnRenewableKWh, r)
		if err != nil {
			return nil, err
		}
		fuel, fuelOK, err := numericCell(t, ColumnFuelLiters, r)
		if err != nil {
			return nil, err
		}

		s2 := dataset.NullValue()
		if energyOK && renewableOK {
			s2 = dataset.Number((energy - renewable) * GridEmissionFactor)
		}
		s1 := dataset.NullValue()
		if fuelOK {
			s1 = dataset.Number(fuel * FuelEmissionFactor)
		}
		sum := dataset.NullValue()
		if !s1.Null && !s2.Null {
			sum = dataset.Number(s1.Num + s2.Num)
		}

		scope1[r], scope2[r], total[r] = s1, s2, sum
	}

	out, err := t.WithColumn(ColumnScope2, scope2)
	if err != nil {
		return nil, err
	}
	if out, err = out.WithColumn(ColumnScope1, scope1); err != nil {
		return nil, err
	}
	if out, err = out.WithColumn(ColumnTotal, total); err != nil {
		return nil, err
	}

	logger.Debug().Int("rows", rows).Msg("calculated emissions")
	return out, nil
}

// numericCell reads a cell that must be a number or null.
func numericCell(t *dataset.Table, column string, row int) (float64, bool, error) {
	v := t.Value(column, row)
	if v.Null {
		return 0, false, nil
	}
	f, ok := v.Float()
	if !ok {
		return 0, false, fmt.Errorf("%w: %s row %d = %q", ErrNonNumeric, column, row, v.Text)
	}
	return f, true, nil
}

// Aggregate sums an enriched dataset into a KPI snapshot.
//
// Total energy is truncated to a whole kWh; every other metric is rounded to
// two decimals. When total energy is zero the renewable share is reported as
// 0 and the snapshot is marked Degenerate instead of producing NaN.
// Returns ErrMissingColumn if t has not been through Calculate.
func Aggregate(t *dataset.Table) (kpi.Snapshot, error) {
	for _, col := range []string{ColumnEnergyKWh, ColumnRenewableKWh, ColumnScope1, ColumnScope2, ColumnTotal} {
		if !t.Has(col) {
			return kpi.Snapshot{}, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	energy := t.Sum(ColumnEnergyKWh)
	renewable := t.Sum(ColumnRenewableKWh)

	renewablePct := 0.0
	degenerate := energy == 0
	if !degenerate {
		renewablePct = kpi.Round(renewable/energy*100, 2)
	}

	s := kpi.New(
		kpi.Metric{Name: kpi.MetricTotalEnergy, Value: math.Trunc(energy)},
		kpi.Metric{Name: kpi.MetricRenewablePct, Value: renewablePct},
		kpi.Metric{Name: kpi.MetricScope1, Value: kpi.Round(t.Sum(ColumnScope1), 2)},
		kpi.Metric{Name: kpi.MetricScope2, Value: kpi.Round(t.Sum(ColumnScope2), 2)},
		kpi.Metric{Name: kpi.MetricTotalCO2, Value: kpi.Round(t.Sum(ColumnTotal), 2)},
	)
	s.Degenerate = degenerate
	return s, nil
}

// MissingRequired lists the RequiredColumns absent from t, in order.
func MissingRequired(t *dataset.Table) []string {
	var missing []string
	for _, col := range RequiredColumns {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	return missing
}
