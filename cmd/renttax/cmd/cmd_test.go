package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/renttax/internal/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCalc(t *testing.T) {
	out, err := run(t, "calc", "--income", "100000", "--expenses", "0", "--landlord", "individual")
	require.NoError(t, err)

	var result model.TaxResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.TaxAmount.Equal(decimal.NewFromInt(13000)))
	assert.True(t, result.NetProfit.Equal(decimal.NewFromInt(87000)))
}

func TestCalcRejectsBadInput(t *testing.T) {
	_, err := run(t, "calc", "--income", "abc")
	assert.Error(t, err)

	_, err = run(t, "calc", "--income", "-5")
	assert.Error(t, err)

	_, err = run(t, "calc", "--income", "5", "--landlord", "baron")
	assert.Error(t, err)
}

func TestStoreCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "bolt")
	t.Setenv("DB_DSN", filepath.Join(dir, "renttax.bolt"))
	t.Setenv("APP_ENV", "test")

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "bolt")

	out, err = run(t, "summary")
	require.NoError(t, err)
	var result model.TaxResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.TotalIncome.IsZero())
	assert.True(t, result.TaxRate.Equal(decimal.RequireFromString("0.04")))

	_, err = run(t, "summary", "--property", "nope")
	assert.Error(t, err)

	target := filepath.Join(dir, "export.json")
	out, err = run(t, "export", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var snapshot model.Snapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Empty(t, snapshot.Properties)
	assert.False(t, snapshot.ExportDate.IsZero())
}
