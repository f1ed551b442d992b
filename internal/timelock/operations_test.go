package timelock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessexplorer/internal/timelock/models"
)

func op(id string, ts int64) models.Operation {
	return models.Operation{ID: id, BlockTimestamp: ts, BlockNumber: uint64(ts), TransactionHash: "0x" + id}
}

func ids(ops []models.Operation) []string {
	out := make([]string, len(ops))
	for i, o := range ops {
		out[i] = o.ID
	}
	return out
}

func TestMergeOperations(t *testing.T) {
	t.Run("tags and sorts newest first", func(t *testing.T) {
		merged := MergeOperations(models.OperationLists{
			Scheduled: []models.Operation{op("s1", 100)},
			Executed:  []models.Operation{op("e1", 200)},
		})

		require.Len(t, merged, 2)
		assert.Equal(t, "e1", merged[0].ID)
		assert.Equal(t, models.OperationExecuted, merged[0].Type)
		assert.Equal(t, int64(200), merged[0].BlockTimestamp)
		assert.Equal(t, "s1", merged[1].ID)
		assert.Equal(t, models.OperationScheduled, merged[1].Type)
	})

	t.Run("missing lists are empty", func(t *testing.T) {
		merged := MergeOperations(models.OperationLists{})
		assert.NotNil(t, merged)
		assert.Empty(t, merged)
	})

	t.Run("every record survives, including id collisions across kinds", func(t *testing.T) {
		merged := MergeOperations(models.OperationLists{
			Scheduled:   []models.Operation{op("x", 10), op("s2", 5)},
			Executed:    []models.Operation{op("x", 10)},
			Cancelled:   []models.Operation{op("c1", 7)},
			RoleGranted: []models.Operation{op("g1", 3)},
			RoleRevoked: []models.Operation{op("r1", 1)},
		})

		require.Len(t, merged, 6)
		assert.Equal(t, []string{"x", "x", "c1", "s2", "g1", "r1"}, ids(merged))
		assert.Equal(t, models.OperationScheduled, merged[0].Type)
		assert.Equal(t, models.OperationExecuted, merged[1].Type)
	})

	t.Run("equal timestamps order by kind then block then hash then id", func(t *testing.T) {
		a := op("a", 50)
		a.TransactionHash = "0xbb"
		b := op("b", 50)
		b.TransactionHash = "0xaa"
		c := op("c", 50)
		c.BlockNumber = 60
		d := op("d", 50)
		d.TransactionHash = "0xaa"

		merged := MergeOperations(models.OperationLists{
			RoleRevoked: []models.Operation{op("rev", 50)},
			RoleGranted: []models.Operation{a, b, c, d},
			Cancelled:   []models.Operation{op("can", 50)},
		})

		assert.Equal(t, []string{"can", "c", "b", "d", "a", "rev"}, ids(merged))
	})

	t.Run("input lists are not modified", func(t *testing.T) {
		scheduled := []models.Operation{op("s1", 1)}
		MergeOperations(models.OperationLists{Scheduled: scheduled})
		assert.Empty(t, scheduled[0].Type)
	})

	t.Run("kind specific fields are preserved", func(t *testing.T) {
		granted := op("g", 9)
		granted.Role = roleProposer
		granted.Account = "0xabc"
		scheduled := op("s", 8)
		scheduled.Target = "0xdef"
		scheduled.Delay = "3600"

		merged := MergeOperations(models.OperationLists{
			Scheduled:   []models.Operation{scheduled},
			RoleGranted: []models.Operation{granted},
		})

		require.Len(t, merged, 2)
		assert.Equal(t, roleProposer, merged[0].Role)
		assert.Empty(t, merged[0].Target)
		assert.Equal(t, "3600", merged[1].Delay)
		assert.Empty(t, merged[1].Account)
	})
}
