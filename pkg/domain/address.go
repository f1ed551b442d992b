package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	dErrors "accessexplorer/pkg/domain-errors"
)

// Address is a lower-cased 20-byte hex account address.
// Invariant: always "0x" followed by 40 lower-case hex characters.
//
// Usage: construct via ParseAddress at trust boundaries.
type Address string

// ParseAddress validates s as a hex address, with or without checksum casing.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "address cannot be empty")
	}
	if !common.IsHexAddress(s) {
		return "", dErrors.New(dErrors.CodeBadRequest, "invalid address")
	}
	return Address(strings.ToLower(common.HexToAddress(s).Hex())), nil
}

func (a Address) String() string {
	return string(a)
}

// IsNil returns true if the address is empty.
func (a Address) IsNil() bool {
	return a == ""
}
