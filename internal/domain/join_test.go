package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinRecovery(t *testing.T) {
	t.Run("status derived from recovered-set membership", func(t *testing.T) {
		destroyed := []PropertyRecord{
			{Address: "A", AssessedValue: 200},
			{Address: "B", AssessedValue: 100},
		}
		recovered := []PropertyRecord{{Address: "A"}}

		joined := JoinRecovery(destroyed, recovered)
		require.Len(t, joined, 2)
		assert.Equal(t, "A", joined[0].Address)
		assert.Equal(t, StatusRecovered, joined[0].Status)
		assert.Equal(t, "B", joined[1].Address)
		assert.Equal(t, StatusDestroyed, joined[1].Status)

		sums := SumByStatus(joined)
		assert.Equal(t, 100.0, sums[StatusDestroyed])
		assert.Equal(t, 200.0, sums[StatusRecovered])
	})

	t.Run("output row count equals destroyed-set size", func(t *testing.T) {
		destroyed := []PropertyRecord{
			{Address: "A"}, {Address: "B"}, {Address: "C"},
		}
		recovered := []PropertyRecord{
			{Address: "B"}, {Address: "X"}, {Address: "Y"}, {Address: "Z"},
		}

		joined := JoinRecovery(destroyed, recovered)
		assert.Len(t, joined, len(destroyed))
	})

	t.Run("recovered-only rows are ignored", func(t *testing.T) {
		joined := JoinRecovery(nil, []PropertyRecord{{Address: "X"}})
		assert.Empty(t, joined)
	})

	t.Run("values rounded before summation", func(t *testing.T) {
		destroyed := []PropertyRecord{
			{Address: "A", AssessedValue: 100.6},
			{Address: "B", AssessedValue: 100.4},
		}

		joined := JoinRecovery(destroyed, nil)
		assert.Equal(t, 101.0, joined[0].AssessedValue)
		assert.Equal(t, 100.0, joined[1].AssessedValue)

		sums := SumByStatus(joined)
		assert.Equal(t, 201.0, sums[StatusDestroyed])
	})

	t.Run("value conservation across statuses", func(t *testing.T) {
		destroyed := []PropertyRecord{
			{Address: "A", AssessedValue: 350000},
			{Address: "B", AssessedValue: 420000},
			{Address: "C", AssessedValue: 515000},
		}
		recovered := []PropertyRecord{{Address: "B"}, {Address: "C"}}

		sums := SumByStatus(JoinRecovery(destroyed, recovered))
		assert.Equal(t, 350000.0+420000+515000, sums[StatusDestroyed]+sums[StatusRecovered])
	})

	t.Run("duplicate recovered addresses are harmless", func(t *testing.T) {
		destroyed := []PropertyRecord{{Address: "A", AssessedValue: 10}}
		recovered := []PropertyRecord{{Address: "A"}, {Address: "A"}}

		joined := JoinRecovery(destroyed, recovered)
		require.Len(t, joined, 1)
		assert.Equal(t, StatusRecovered, joined[0].Status)
	})
}

func TestCheckUniqueAddresses(t *testing.T) {
	t.Run("unique set passes", func(t *testing.T) {
		records := []PropertyRecord{{Address: "A"}, {Address: "B"}}
		assert.NoError(t, CheckUniqueAddresses(records))
	})

	t.Run("duplicate reported with address", func(t *testing.T) {
		records := []PropertyRecord{{Address: "A"}, {Address: "B"}, {Address: "A"}}

		err := CheckUniqueAddresses(records)
		require.ErrorIs(t, err, ErrDuplicateKey)
		assert.Contains(t, err.Error(), `"A"`)
	})
}
