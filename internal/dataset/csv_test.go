package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		input := "Q1,Q2\n5,Yes\n3,No\n4,Yes\n"

		table, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, []string{"Q1", "Q2"}, table.Questions)
		assert.Len(t, table.Rows, 3)
		assert.Equal(t, "5", table.Rows[0]["Q1"].Value)
		assert.Equal(t, "Yes", table.Rows[0]["Q2"].Value)
	})

	t.Run("inconsistent column count", func(t *testing.T) {
		input := "Q1,Q2\n5,Yes\n3\n"

		_, err := ParseCSV(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrFormat)
	})

	t.Run("header only", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("Q1,Q2\n"))
		assert.ErrorIs(t, err, ErrEmptyData)
	})

	t.Run("completely empty input", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyData)
	})

	t.Run("blank cells become missing", func(t *testing.T) {
		input := "Q1,Q2\n5,\n,No\n"

		table, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)

		assert.True(t, table.Rows[0]["Q2"].Missing)
		assert.True(t, table.Rows[1]["Q1"].Missing)
		assert.False(t, table.Rows[1]["Q2"].Missing)
	})

	t.Run("prefixed scale answers keep only the label", func(t *testing.T) {
		input := "Rating\n5: Excellent\n1: Poor\n"

		table, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, "Excellent", table.Rows[0]["Rating"].Value)
		assert.Equal(t, "Poor", table.Rows[1]["Rating"].Value)
	})

	t.Run("non-numeric prefix left untouched", func(t *testing.T) {
		input := "Comment\nNote: fine overall\n"

		table, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, "Note: fine overall", table.Rows[0]["Comment"].Value)
	})
}

func TestEvaluationTable_Column(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("Q1,Q2\n5,Yes\n3,No\n"))
	require.NoError(t, err)

	col := table.Column("Q2")
	require.Len(t, col, 2)
	assert.Equal(t, "Yes", col[0].Value)
	assert.Equal(t, "No", col[1].Value)

	assert.Nil(t, table.Column("Q9"))
	assert.True(t, table.HasQuestion("Q1"))
	assert.False(t, table.HasQuestion("Q9"))
}
