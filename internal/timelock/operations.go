package timelock

import (
	"cmp"
	"slices"

	"accessexplorer/internal/timelock/models"
)

// MergeOperations tags every record with its kind and returns one timeline,
// newest first. Missing lists count as empty; nothing is dropped or deduplicated.
//
// Records sharing a block timestamp are ordered by kind (scheduled, executed,
// cancelled, role_granted, role_revoked), then block number descending, then
// transaction hash and id ascending.
func MergeOperations(lists models.OperationLists) []models.Operation {
	total := len(lists.Scheduled) + len(lists.Executed) + len(lists.Cancelled) +
		len(lists.RoleGranted) + len(lists.RoleRevoked)
	out := make([]models.Operation, 0, total)

	out = appendTagged(out, lists.Scheduled, models.OperationScheduled)
	out = appendTagged(out, lists.Executed, models.OperationExecuted)
	out = appendTagged(out, lists.Cancelled, models.OperationCancelled)
	out = appendTagged(out, lists.RoleGranted, models.OperationRoleGranted)
	out = appendTagged(out, lists.RoleRevoked, models.OperationRoleRevoked)

	slices.SortFunc(out, compareTimeline)
	return out
}

func appendTagged(dst, src []models.Operation, kind models.OperationType) []models.Operation {
	for _, op := range src {
		op.Type = kind
		dst = append(dst, op)
	}
	return dst
}

func compareTimeline(a, b models.Operation) int {
	if c := cmp.Compare(b.BlockTimestamp, a.BlockTimestamp); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Type.Rank(), b.Type.Rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.BlockNumber, a.BlockNumber); c != 0 {
		return c
	}
	if c := cmp.Compare(a.TransactionHash, b.TransactionHash); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
