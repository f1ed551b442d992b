// Package chains holds the set of networks the explorer can serve.
package chains

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	dErrors "accessexplorer/pkg/domain-errors"
)

// DefaultRootstockSubgraph is the public access-control subgraph on Rootstock.
const DefaultRootstockSubgraph = "https://api.studio.thegraph.com/query/46125/access-control-rootstock/version/latest"

// Chain describes one supported network and the endpoints used to read it.
type Chain struct {
	ID                  int64  `yaml:"id" json:"id"`
	Name                string `yaml:"name" json:"name"`
	Network             string `yaml:"network" json:"network"`
	Symbol              string `yaml:"symbol" json:"symbol"`
	Decimals            int    `yaml:"decimals" json:"decimals"`
	SubgraphURL         string `yaml:"subgraph_url" json:"subgraph_url,omitempty"`
	TimelockSubgraphURL string `yaml:"timelock_subgraph_url" json:"timelock_subgraph_url,omitempty"`
	RPCURL              string `yaml:"rpc_url" json:"rpc_url,omitempty"`
	ExplorerURL         string `yaml:"explorer_url" json:"explorer_url,omitempty"`
}

// HasTimelock reports whether the chain has a timelock indexer configured.
func (c Chain) HasTimelock() bool {
	return c.TimelockSubgraphURL != ""
}

// Defaults returns the built-in chain set.
func Defaults() []Chain {
	return []Chain{
		{
			ID:          1,
			Name:        "Ethereum",
			Network:     "mainnet",
			Symbol:      "ETH",
			Decimals:    18,
			RPCURL:      "https://cloudflare-eth.com",
			ExplorerURL: "https://etherscan.io",
		},
		{
			ID:          11155111,
			Name:        "Sepolia",
			Network:     "sepolia",
			Symbol:      "ETH",
			Decimals:    18,
			RPCURL:      "https://rpc.sepolia.org",
			ExplorerURL: "https://sepolia.etherscan.io",
		},
		{
			ID:                  30,
			Name:                "Rootstock",
			Network:             "rootstock",
			Symbol:              "RBTC",
			Decimals:            18,
			SubgraphURL:         DefaultRootstockSubgraph,
			TimelockSubgraphURL: DefaultRootstockSubgraph,
			RPCURL:              "https://public-node.rsk.co",
			ExplorerURL:         "https://rootstock.blockscout.com",
		},
	}
}

// Endpoints are per-network URL overrides keyed by network name.
type Endpoints struct {
	Subgraph         map[string]string
	TimelockSubgraph map[string]string
	RPC              map[string]string
}

// Registry resolves chains by id.
type Registry struct {
	byID map[int64]Chain
}

// NewRegistry builds a registry from the given chains. Later entries with the
// same id replace earlier ones.
func NewRegistry(list []Chain) *Registry {
	r := &Registry{byID: make(map[int64]Chain, len(list))}
	for _, c := range list {
		r.byID[c.ID] = c
	}
	return r
}

type fileFormat struct {
	Chains []Chain `yaml:"chains"`
}

// Load starts from Defaults, merges the optional YAML file at path and then
// applies endpoint overrides.
func Load(path string, endpoints Endpoints) (*Registry, error) {
	list := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read chains file: %w", err)
		}
		var f fileFormat
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse chains file: %w", err)
		}
		list = merge(list, f.Chains)
	}
	for i := range list {
		n := list[i].Network
		if u, ok := endpoints.Subgraph[n]; ok {
			list[i].SubgraphURL = u
		}
		if u, ok := endpoints.TimelockSubgraph[n]; ok {
			list[i].TimelockSubgraphURL = u
		}
		if u, ok := endpoints.RPC[n]; ok {
			list[i].RPCURL = u
		}
	}
	return NewRegistry(list), nil
}

// merge overlays non-empty fields of file entries onto the base entry with the same id.
func merge(base, file []Chain) []Chain {
	out := slices.Clone(base)
	for _, fc := range file {
		idx := slices.IndexFunc(out, func(c Chain) bool { return c.ID == fc.ID })
		if idx < 0 {
			out = append(out, fc)
			continue
		}
		c := &out[idx]
		overlay(&c.Name, fc.Name)
		overlay(&c.Network, fc.Network)
		overlay(&c.Symbol, fc.Symbol)
		overlay(&c.SubgraphURL, fc.SubgraphURL)
		overlay(&c.TimelockSubgraphURL, fc.TimelockSubgraphURL)
		overlay(&c.RPCURL, fc.RPCURL)
		overlay(&c.ExplorerURL, fc.ExplorerURL)
		if fc.Decimals != 0 {
			c.Decimals = fc.Decimals
		}
	}
	return out
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Get returns the chain with the given id.
func (r *Registry) Get(id int64) (Chain, error) {
	c, ok := r.byID[id]
	if !ok {
		return Chain{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("unsupported chain %d", id))
	}
	return c, nil
}

// All returns every chain ordered by id.
func (r *Registry) All() []Chain {
	out := make([]Chain, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Chain) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// ParseID parses a chain id path parameter.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "chain id must be a positive integer")
	}
	return id, nil
}
