package ingest_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgready/internal/ingest"
	"github.com/rshade/esgready/internal/scope3"
)

const emissionsCSV = "\ufeffdate,facility,energy_kwh,renewable_kwh,fuel_liters,notes\n" +
	"2025-01-01,Plant A,1000,200,50,ok\n" +
	"2025-01-02,Plant A,,NA,10,\n"

func TestParseEmissionsCSV(t *testing.T) {
	tbl, err := ingest.ParseEmissionsCSV(context.Background(), strings.NewReader(emissionsCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "facility", "energy_kwh", "renewable_kwh", "fuel_liters", "notes"}, tbl.Columns())
	assert.Equal(t, 2, tbl.Len())
	assert.InDelta(t, 1000.0, tbl.Sum("energy_kwh"), 1e-9)
	assert.True(t, tbl.Value("energy_kwh", 1).Null)
	assert.True(t, tbl.Value("renewable_kwh", 1).Null)
	assert.True(t, tbl.Value("notes", 1).Null)
	assert.Equal(t, "Plant A", tbl.Value("facility", 0).String())
}

func TestParseEmissionsCSV_Errors(t *testing.T) {
	_, err := ingest.ParseEmissionsCSV(context.Background(), strings.NewReader(""))
	assert.True(t, errors.Is(err, ingest.ErrEmptyInput))

	_, err = ingest.ParseEmissionsCSV(context.Background(), strings.NewReader("a,b\n1,2,3\n"))
	require.Error(t, err)
}

func TestParseEmissionsJSON(t *testing.T) {
	data := []byte(`[{"facility":"A","energy_kwh":1000,"renewable_kwh":200,"fuel_liters":50},
		{"facility":"B","energy_kwh":null,"renewable_kwh":0,"fuel_liters":1}]`)

	tbl, err := ingest.ParseEmissionsJSON(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.True(t, tbl.HasNull("energy_kwh"))
	assert.InDelta(t, 200.0, tbl.Sum("renewable_kwh"), 1e-9)

	_, err = ingest.ParseEmissionsJSON(context.Background(), []byte("  "))
	assert.True(t, errors.Is(err, ingest.ErrEmptyInput))

	_, err = ingest.ParseEmissionsJSON(context.Background(), []byte(`{"a":1}`))
	require.Error(t, err)
}

func TestParseSpendCSV(t *testing.T) {
	in := "category,annual_spend_eur\nlogistics,1000\n unknown ,\n"
	records, err := ingest.ParseSpendCSV(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []scope3.SpendRecord{
		{Category: "logistics", AnnualSpendEUR: 1000},
		{Category: "unknown", AnnualSpendEUR: 0},
	}, records)
}

func TestParseSpendCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ingest.ErrEmptyInput},
		{"no category", "annual_spend_eur\n1\n", ingest.ErrMissingColumn},
		{"no spend", "category\nlogistics\n", ingest.ErrMissingColumn},
		{"bad number", "category,annual_spend_eur\nlogistics,lots\n", ingest.ErrInvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ingest.ParseSpendCSV(context.Background(), strings.NewReader(tt.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
}

func TestParseSpendJSON(t *testing.T) {
	data := []byte(`[{"category":"raw_materials","annual_spend_eur":200},
		{"category":"it_services","annual_spend_eur":"50.5"},
		{"category":"logistics"}]`)

	records, err := ingest.ParseSpendJSON(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.InDelta(t, 200.0, records[0].AnnualSpendEUR, 1e-9)
	assert.InDelta(t, 50.5, records[1].AnnualSpendEUR, 1e-9)
	assert.Zero(t, records[2].AnnualSpendEUR)

	_, err = ingest.ParseSpendJSON(context.Background(), []byte(`[{"category":"x","annual_spend_eur":true}]`))
	assert.True(t, errors.Is(err, ingest.ErrInvalidNumber))
}

func TestLoadEmissionsAndSpend(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	jsonPath := filepath.Join(dir, "spend.json")
	require.NoError(t, os.WriteFile(csvPath, []byte(emissionsCSV), 0o600))
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"category":"logistics","annual_spend_eur":10}]`), 0o600))

	tbl, err := ingest.LoadEmissions(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	spend, err := ingest.LoadSpend(context.Background(), jsonPath)
	require.NoError(t, err)
	assert.Len(t, spend, 1)

	_, err = ingest.LoadEmissions(context.Background(), filepath.Join(dir, "missing.csv"))
	require.Error(t, err)

	_, err = ingest.LoadEmissions(context.Background(), filepath.Join(dir, "data.xlsx"))
	assert.True(t, errors.Is(err, ingest.ErrUnsupportedFormat))
}
