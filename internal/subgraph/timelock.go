package subgraph

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"accessexplorer/internal/timelock/models"
)

// Page sizes used by the timelock queries.
const (
	OperationsPageSize = 100
	SignersPageSize    = 1000
)

const roleEventFields = `
      id
      role
      account
      sender
      blockNumber
      blockTimestamp
      transactionHash`

var timelockOperationsQuery = fmt.Sprintf(`
  query TimelockAllOperations {
    callScheduleds(orderBy: blockTimestamp, orderDirection: desc, first: %[1]d) {
      id
      internal_id
      index
      target
      value
      data
      predecessor
      delay
      blockNumber
      blockTimestamp
      transactionHash
    }
    callExecuteds(orderBy: blockTimestamp, orderDirection: desc, first: %[1]d) {
      id
      internal_id
      index
      target
      value
      data
      blockNumber
      blockTimestamp
      transactionHash
    }
    cancelleds(orderBy: blockTimestamp, orderDirection: desc, first: %[1]d) {
      id
      internal_id
      blockNumber
      blockTimestamp
      transactionHash
    }
    roleGranteds(orderBy: blockTimestamp, orderDirection: desc, first: %[1]d) {%[2]s
    }
    roleRevokeds(orderBy: blockTimestamp, orderDirection: desc, first: %[1]d) {%[2]s
    }
  }
`, OperationsPageSize, roleEventFields)

var timelockSignersQuery = fmt.Sprintf(`
  query TimelockSigners {
    roleGranteds(orderBy: blockTimestamp, orderDirection: asc, first: %[1]d) {%[2]s
    }
    roleRevokeds(orderBy: blockTimestamp, orderDirection: asc, first: %[1]d) {%[2]s
    }
  }
`, SignersPageSize, roleEventFields)

// The indexer encodes BigInt as decimal strings and Bytes as 0x hex strings.
type wireCall struct {
	ID              string `json:"id"`
	InternalID      string `json:"internal_id"`
	Index           string `json:"index"`
	Target          string `json:"target"`
	Value           string `json:"value"`
	Data            string `json:"data"`
	Predecessor     string `json:"predecessor"`
	Delay           string `json:"delay"`
	BlockNumber     string `json:"blockNumber"`
	BlockTimestamp  string `json:"blockTimestamp"`
	TransactionHash string `json:"transactionHash"`
}

type wireRoleEvent struct {
	ID              string `json:"id"`
	Role            string `json:"role"`
	Account         string `json:"account"`
	Sender          string `json:"sender"`
	BlockNumber     string `json:"blockNumber"`
	BlockTimestamp  string `json:"blockTimestamp"`
	TransactionHash string `json:"transactionHash"`
}

type operationsData struct {
	CallScheduleds []wireCall      `json:"callScheduleds"`
	CallExecuteds  []wireCall      `json:"callExecuteds"`
	Cancelleds     []wireCall      `json:"cancelleds"`
	RoleGranteds   []wireRoleEvent `json:"roleGranteds"`
	RoleRevokeds   []wireRoleEvent `json:"roleRevokeds"`
}

type signersData struct {
	RoleGranteds []wireRoleEvent `json:"roleGranteds"`
	RoleRevokeds []wireRoleEvent `json:"roleRevokeds"`
}

// TimelockOperations fetches the five timeline streams, newest first.
func (c *Client) TimelockOperations(ctx context.Context) (models.OperationLists, error) {
	var data operationsData
	if err := c.Query(ctx, "TimelockAllOperations", timelockOperationsQuery, nil, &data); err != nil {
		return models.OperationLists{}, err
	}
	return models.OperationLists{
		Scheduled:   c.decodeCalls(ctx, "callScheduled", models.OperationScheduled, data.CallScheduleds),
		Executed:    c.decodeCalls(ctx, "callExecuted", models.OperationExecuted, data.CallExecuteds),
		Cancelled:   c.decodeCalls(ctx, "cancelled", models.OperationCancelled, data.Cancelleds),
		RoleGranted: c.decodeRoleOperations(ctx, "roleGranted", models.OperationRoleGranted, data.RoleGranteds),
		RoleRevoked: c.decodeRoleOperations(ctx, "roleRevoked", models.OperationRoleRevoked, data.RoleRevokeds),
	}, nil
}

// TimelockSigners fetches both role event streams, oldest first.
func (c *Client) TimelockSigners(ctx context.Context) (models.RoleEventLists, error) {
	var data signersData
	if err := c.Query(ctx, "TimelockSigners", timelockSignersQuery, nil, &data); err != nil {
		return models.RoleEventLists{}, err
	}
	return models.RoleEventLists{
		Granted: c.decodeRoleEvents(ctx, "roleGranted", data.RoleGranteds),
		Revoked: c.decodeRoleEvents(ctx, "roleRevoked", data.RoleRevokeds),
	}, nil
}

type blockRef struct {
	number    uint64
	timestamp int64
}

func parseBlock(number, timestamp string) (blockRef, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(number), 10, 64)
	if err != nil {
		return blockRef{}, fmt.Errorf("block number %q: %w", number, err)
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(timestamp), 10, 64)
	if err != nil {
		return blockRef{}, fmt.Errorf("block timestamp %q: %w", timestamp, err)
	}
	return blockRef{number: n, timestamp: ts}, nil
}

func (c *Client) skip(ctx context.Context, entity, id string, err error) {
	c.metrics.incrementSkipped(entity)
	c.logger.WarnContext(ctx, "skipping malformed subgraph record",
		"entity", entity,
		"id", id,
		"endpoint", c.endpoint,
		"error", err,
	)
}

func (c *Client) decodeCalls(ctx context.Context, entity string, kind models.OperationType, in []wireCall) []models.Operation {
	out := make([]models.Operation, 0, len(in))
	for _, w := range in {
		block, err := parseBlock(w.BlockNumber, w.BlockTimestamp)
		if err != nil {
			c.skip(ctx, entity, w.ID, err)
			continue
		}
		if w.ID == "" || w.InternalID == "" {
			c.skip(ctx, entity, w.ID, fmt.Errorf("missing id"))
			continue
		}
		op := models.Operation{
			ID:              w.ID,
			Type:            kind,
			BlockNumber:     block.number,
			BlockTimestamp:  block.timestamp,
			TransactionHash: w.TransactionHash,
			OperationID:     w.InternalID,
		}
		if kind == models.OperationScheduled || kind == models.OperationExecuted {
			op.Index = w.Index
			op.Target = w.Target
			op.Value = w.Value
			op.Data = w.Data
		}
		if kind == models.OperationScheduled {
			op.Predecessor = w.Predecessor
			op.Delay = w.Delay
		}
		out = append(out, op)
	}
	return out
}

func (c *Client) decodeRoleOperations(ctx context.Context, entity string, kind models.OperationType, in []wireRoleEvent) []models.Operation {
	events := c.decodeRoleEvents(ctx, entity, in)
	out := make([]models.Operation, 0, len(events))
	for _, e := range events {
		out = append(out, models.Operation{
			ID:              e.ID,
			Type:            kind,
			BlockNumber:     e.BlockNumber,
			BlockTimestamp:  e.BlockTimestamp,
			TransactionHash: e.TransactionHash,
			Role:            e.Role,
			Account:         e.Account,
			Sender:          e.Sender,
		})
	}
	return out
}

func (c *Client) decodeRoleEvents(ctx context.Context, entity string, in []wireRoleEvent) []models.RoleEvent {
	out := make([]models.RoleEvent, 0, len(in))
	for _, w := range in {
		if w.Account == "" || w.Role == "" {
			c.skip(ctx, entity, w.ID, fmt.Errorf("missing account or role"))
			continue
		}
		block, err := parseBlock(w.BlockNumber, w.BlockTimestamp)
		if err != nil {
			c.skip(ctx, entity, w.ID, err)
			continue
		}
		out = append(out, models.RoleEvent{
			ID:              w.ID,
			Role:            w.Role,
			Account:         w.Account,
			Sender:          w.Sender,
			BlockNumber:     block.number,
			BlockTimestamp:  block.timestamp,
			TransactionHash: w.TransactionHash,
		})
	}
	return out
}
