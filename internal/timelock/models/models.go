package models

import "math/big"

// RoleEvent is a single RoleGranted or RoleRevoked log as delivered by the indexer.
type RoleEvent struct {
	ID              string `json:"id"`
	Role            string `json:"role"`
	Account         string `json:"account"`
	Sender          string `json:"sender,omitempty"`
	BlockNumber     uint64 `json:"block_number"`
	BlockTimestamp  int64  `json:"block_timestamp"`
	TransactionHash string `json:"transaction_hash"`
}

// RoleEventLists holds both signer streams, each ascending by block timestamp.
type RoleEventLists struct {
	Granted []RoleEvent `json:"granted"`
	Revoked []RoleEvent `json:"revoked"`
}

// Signer is an address holding at least one role on a governance contract.
//
// Invariants:
//   - Address is lower-cased
//   - GrantedAt is the timestamp of the first grant seen for the address
//   - RevokedAt is set only when the role set went from non-empty to empty
type Signer struct {
	Address   string   `json:"address"`
	Roles     []string `json:"roles"`
	GrantedAt int64    `json:"granted_at"`
	RevokedAt *int64   `json:"revoked_at,omitempty"`
}

// Active reports whether the signer currently holds any role.
func (s Signer) Active() bool {
	return len(s.Roles) > 0
}

// OperationType tags the kind of a timelock timeline entry.
type OperationType string

const (
	OperationScheduled   OperationType = "scheduled"
	OperationExecuted    OperationType = "executed"
	OperationCancelled   OperationType = "cancelled"
	OperationRoleGranted OperationType = "role_granted"
	OperationRoleRevoked OperationType = "role_revoked"
)

// Rank is the position of the kind in the timeline concatenation order.
func (t OperationType) Rank() int {
	switch t {
	case OperationScheduled:
		return 0
	case OperationExecuted:
		return 1
	case OperationCancelled:
		return 2
	case OperationRoleGranted:
		return 3
	case OperationRoleRevoked:
		return 4
	default:
		return 5
	}
}

// Operation is one entry of the timelock timeline. Only the fields relevant to
// Type are populated; the rest stay empty and are omitted from JSON.
type Operation struct {
	ID              string        `json:"id"`
	Type            OperationType `json:"type"`
	BlockNumber     uint64        `json:"block_number"`
	BlockTimestamp  int64         `json:"block_timestamp"`
	TransactionHash string        `json:"transaction_hash"`

	// scheduled, executed, cancelled
	OperationID string `json:"operation_id,omitempty"`
	// scheduled, executed
	Index  string `json:"index,omitempty"`
	Target string `json:"target,omitempty"`
	Value  string `json:"value,omitempty"`
	Data   string `json:"data,omitempty"`
	// scheduled
	Predecessor string `json:"predecessor,omitempty"`
	Delay       string `json:"delay,omitempty"`
	// role_granted, role_revoked
	Role    string `json:"role,omitempty"`
	Account string `json:"account,omitempty"`
	Sender  string `json:"sender,omitempty"`
}

// OperationLists are the five independently fetched timeline streams.
type OperationLists struct {
	Scheduled   []Operation `json:"scheduled"`
	Executed    []Operation `json:"executed"`
	Cancelled   []Operation `json:"cancelled"`
	RoleGranted []Operation `json:"role_granted"`
	RoleRevoked []Operation `json:"role_revoked"`
}

// View functions called against a candidate TimelockController.
const (
	FuncProposerRole  = "PROPOSER_ROLE"
	FuncExecutorRole  = "EXECUTOR_ROLE"
	FuncCancellerRole = "CANCELLER_ROLE"
	FuncGetMinDelay   = "getMinDelay"
)

// CallResult records the outcome of one read-only contract call.
type CallResult struct {
	Function string `json:"function"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

// ControllerInfo is the result of probing an address for the TimelockController interface.
type ControllerInfo struct {
	Address              string       `json:"address"`
	IsTimelockController bool         `json:"is_timelock_controller"`
	ProposerRole         string       `json:"proposer_role,omitempty"`
	ExecutorRole         string       `json:"executor_role,omitempty"`
	CancellerRole        string       `json:"canceller_role,omitempty"`
	MinDelay             *big.Int     `json:"min_delay,omitempty"`
	Calls                []CallResult `json:"calls"`
}

// OperationState is the lifecycle state of a timelock operation id.
type OperationState string

const (
	StateUnset   OperationState = "unset"
	StatePending OperationState = "pending"
	StateReady   OperationState = "ready"
	StateDone    OperationState = "done"
)
