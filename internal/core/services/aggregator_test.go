package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/insumos/internal/core/domain"
)

func never(string) bool  { return false }
func always(string) bool { return true }

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess("exitoso"))
	assert.True(t, IsSuccess("  Exitoso "))
	assert.True(t, IsSuccess("EXITOSO"))
	assert.False(t, IsSuccess("fallido"))
	assert.False(t, IsSuccess("exitosos"))
	assert.False(t, IsSuccess(""))
}

func TestAggregate_HalfSuccessful(t *testing.T) {
	table := orderTable(
		[2]string{"1", "Exitoso"},
		[2]string{"1", "fallido"},
		[2]string{"2", "fallido"},
	)

	got, err := Aggregate(table, OrderGroupColumn, OrderStatusColumn, IsSuccess)

	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 50.0, got.Effectiveness)
}

func TestAggregate_GroupSucceedsIfAnyRowDoes(t *testing.T) {
	table := orderTable(
		[2]string{"A", "fallido"},
		[2]string{"A", "fallido"},
		[2]string{"A", "fallido"},
		[2]string{"A", "exitoso"},
	)

	got, err := Aggregate(table, OrderGroupColumn, OrderStatusColumn, IsSuccess)

	require.NoError(t, err)
	assert.Equal(t, domain.Outcome{Effectiveness: 100, Total: 1}, got)
}

func TestAggregate_PredicateExtremes(t *testing.T) {
	tables := []*domain.Table{
		orderTable([2]string{"1", "x"}),
		orderTable([2]string{"1", "x"}, [2]string{"2", "y"}, [2]string{"2", "z"}),
		orderTable([2]string{"", ""}, [2]string{"3", "exitoso"}),
	}

	for _, table := range tables {
		none, err := Aggregate(table, OrderGroupColumn, OrderStatusColumn, never)
		require.NoError(t, err)
		assert.Equal(t, 0.0, none.Effectiveness)

		all, err := Aggregate(table, OrderGroupColumn, OrderStatusColumn, always)
		require.NoError(t, err)
		require.Positive(t, all.Total)
		assert.Equal(t, 100.0, all.Effectiveness)
	}
}

func TestAggregate_BlankGroupKeysIgnored(t *testing.T) {
	table := orderTable(
		[2]string{"1", "exitoso"},
		[2]string{"", "fallido"},
		[2]string{"  ", "fallido"},
	)

	got, err := Aggregate(table, OrderGroupColumn, OrderStatusColumn, IsSuccess)

	require.NoError(t, err)
	assert.Equal(t, domain.Outcome{Effectiveness: 100, Total: 1}, got)
}

func TestAggregate_OnlyBlankGroupKeys(t *testing.T) {
	table := orderTable([2]string{"", "exitoso"}, [2]string{"", "fallido"})

	got, err := Aggregate(table, OrderGroupColumn, OrderStatusColumn, always)

	require.NoError(t, err)
	assert.Equal(t, domain.Outcome{}, got)
}

func TestAggregate_EmptyTable(t *testing.T) {
	got, err := Aggregate(orderTable(), OrderGroupColumn, OrderStatusColumn, always)

	require.NoError(t, err)
	assert.Equal(t, domain.Outcome{}, got)
	assert.NoError(t, got.Validate())
}

func TestAggregate_Idempotent(t *testing.T) {
	table := orderTable(
		[2]string{"1", "exitoso"},
		[2]string{"2", "fallido"},
		[2]string{"3", "fallido"},
	)
	before := [][]string{}
	for _, r := range table.Rows {
		before = append(before, append([]string(nil), r...))
	}

	first, err := Aggregate(table, OrderGroupColumn, OrderStatusColumn, IsSuccess)
	require.NoError(t, err)
	second, err := Aggregate(table, OrderGroupColumn, OrderStatusColumn, IsSuccess)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.InDelta(t, 33.333, first.Effectiveness, 0.001)
	assert.Equal(t, before, table.Rows, "table must not be mutated")
}

func TestAggregate_ReportsAllMissingColumns(t *testing.T) {
	table := domain.NewTable([]string{"Otra"}, [][]string{{"x"}})

	_, err := Aggregate(table, InvoiceGroupColumn, InvoiceStatusColumn, IsSuccess)

	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{InvoiceGroupColumn, InvoiceStatusColumn}, schemaErr.Missing)
}
