// Package format renders timelock values the way the explorer displays them.
package format

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"accessexplorer/internal/timelock/models"
)

// Well-known AccessControl role ids of a TimelockController (keccak256 of the name).
const (
	DefaultAdminRole = "0x0000000000000000000000000000000000000000000000000000000000000000"
	ProposerRole     = "0xb09aa5aeb3702cfd50b6b62bc4532604938f21248a27a1d5ca736082b6819cc1"
	ExecutorRole     = "0xd8aa0f3194971a2a116679f7c2090f6939c8d4e01a2a8d7e41d55e5351469e63"
	CancellerRole    = "0xfd643c72710c63c0180259aba6b2d05451e3591a24e58b62239378085726f783"
)

var roleNames = map[string]string{
	DefaultAdminRole: "DEFAULT_ADMIN_ROLE",
	ProposerRole:     "PROPOSER_ROLE",
	ExecutorRole:     "EXECUTOR_ROLE",
	CancellerRole:    "CANCELLER_ROLE",
}

var displayNames = strings.NewReplacer(
	"DEFAULT_ADMIN", "Admin",
	"PROPOSER", "Proposer",
	"EXECUTOR", "Executor",
	"CANCELLER", "Canceller",
)

// Delay renders a duration in seconds as "{h}h {m}m" or "{m}m".
func Delay(seconds *big.Int) string {
	if seconds == nil || seconds.Sign() == 0 {
		return "0"
	}
	if !seconds.IsInt64() {
		return seconds.String() + "s"
	}
	s := seconds.Int64()
	hours := s / 3600
	minutes := (s % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// Value renders an amount in base units with four decimals and the native symbol.
// Unparsable input is returned unchanged.
func Value(amount, symbol string, decimals int) string {
	if amount == "" || amount == "0" {
		return "0 " + symbol
	}
	n, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return amount
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return new(big.Rat).SetFrac(n, scale).FloatString(4) + " " + symbol
}

// Truncate shortens s to max characters followed by "...". Empty input renders as "-".
func Truncate(s string, max int) string {
	if s == "" {
		return "-"
	}
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// DataPayload renders call data for the timeline.
func DataPayload(data string) string {
	if data == "0x" {
		return "0x (empty)"
	}
	return Truncate(data, 20)
}

// RoleName resolves a known role id to its constant name; unknown ids pass through.
func RoleName(role string) string {
	if name, ok := roleNames[strings.ToLower(role)]; ok {
		return name
	}
	return role
}

// RoleDisplayName is the short badge label of a role ("Proposer", "Admin", ...).
func RoleDisplayName(role string) string {
	name := RoleName(role)
	if !strings.Contains(name, "_ROLE") {
		return name
	}
	return displayNames.Replace(strings.Replace(name, "_ROLE", "", 1))
}

// OperationLabel is the human label of a timeline kind.
func OperationLabel(t models.OperationType) string {
	switch t {
	case models.OperationScheduled:
		return "Scheduled"
	case models.OperationExecuted:
		return "Executed"
	case models.OperationCancelled:
		return "Cancelled"
	case models.OperationRoleGranted:
		return "Role Granted"
	case models.OperationRoleRevoked:
		return "Role Revoked"
	default:
		return string(t)
	}
}

// SignerStatus is "Active" while the signer holds a role and "Revoked" once
// it holds none. RevokedAt alone is not enough: a re-granted signer keeps the
// time of its last revocation.
func SignerStatus(s models.Signer) string {
	if s.Active() {
		return "Active"
	}
	return "Revoked"
}

// Timestamp renders unix seconds as RFC 3339 in UTC.
func Timestamp(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}

// TxURL links a transaction hash on a block explorer.
func TxURL(explorerURL, hash string) string {
	if explorerURL == "" || hash == "" {
		return ""
	}
	return strings.TrimRight(explorerURL, "/") + "/tx/" + hash
}

// AddressURL links an address on a block explorer.
func AddressURL(explorerURL, address string) string {
	if explorerURL == "" || address == "" {
		return ""
	}
	return strings.TrimRight(explorerURL, "/") + "/address/" + address
}
