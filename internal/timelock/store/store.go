// Package store caches raw indexer and contract payloads for the timelock service.
// Derived collections (signers, timeline) are never stored.
package store

import (
	"fmt"
	"strings"
)

// Kind names the cached payload.
type Kind string

const (
	KindOperations Kind = "operations"
	KindRoleEvents Kind = "role_events"
	KindController Kind = "controller"
)

// Key identifies a cached payload. Indexer streams are chain wide; controller
// inspections are per address.
type Key struct {
	ChainID int64
	Kind    Kind
	Address string
}

// OperationsKey is the cache key of a chain's timeline streams.
func OperationsKey(chainID int64) Key {
	return Key{ChainID: chainID, Kind: KindOperations}
}

// RoleEventsKey is the cache key of a chain's signer streams.
func RoleEventsKey(chainID int64) Key {
	return Key{ChainID: chainID, Kind: KindRoleEvents}
}

// ControllerKey is the cache key of a controller inspection.
func ControllerKey(chainID int64, address string) Key {
	return Key{ChainID: chainID, Kind: KindController, Address: strings.ToLower(address)}
}

func (k Key) String() string {
	if k.Address == "" {
		return fmt.Sprintf("timelock:%d:%s", k.ChainID, k.Kind)
	}
	return fmt.Sprintf("timelock:%d:%s:%s", k.ChainID, k.Kind, k.Address)
}
