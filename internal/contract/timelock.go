// Package contract performs read-only calls against TimelockController deployments.
package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/sync/errgroup"

	"accessexplorer/internal/platform/logger"
	"accessexplorer/internal/timelock/models"
	dErrors "accessexplorer/pkg/domain-errors"
	"accessexplorer/pkg/platform/sentinel"
	"accessexplorer/pkg/requestcontext"
)

const timelockABI = `[
  {"inputs":[],"name":"PROPOSER_ROLE","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
  {"inputs":[],"name":"EXECUTOR_ROLE","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
  {"inputs":[],"name":"CANCELLER_ROLE","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
  {"inputs":[],"name":"getMinDelay","outputs":[{"internalType":"uint256","name":"duration","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"internalType":"bytes32","name":"id","type":"bytes32"}],"name":"getTimestamp","outputs":[{"internalType":"uint256","name":"timestamp","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// doneTimestamp marks an executed operation in TimelockController storage.
var doneTimestamp = big.NewInt(1)

// Caller is the subset of ethclient.Client used for view calls.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// TimelockReader inspects and reads TimelockController contracts.
type TimelockReader struct {
	caller  Caller
	abi     abi.ABI
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*TimelockReader)

func WithLogger(l *slog.Logger) Option {
	return func(r *TimelockReader) {
		r.logger = l
	}
}

// WithCallTimeout bounds each individual view call.
func WithCallTimeout(d time.Duration) Option {
	return func(r *TimelockReader) {
		r.timeout = d
	}
}

// NewTimelockReader builds a reader on top of caller.
func NewTimelockReader(caller Caller, opts ...Option) (*TimelockReader, error) {
	parsed, err := abi.JSON(strings.NewReader(timelockABI))
	if err != nil {
		return nil, fmt.Errorf("parse timelock abi: %w", err)
	}
	r := &TimelockReader{
		caller:  caller,
		abi:     parsed,
		timeout: 10 * time.Second,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Dial connects to a JSON-RPC endpoint.
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	return client, nil
}

// ParseAddress validates a 20-byte hex address.
func ParseAddress(raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, dErrors.New(dErrors.CodeBadRequest, "invalid address")
	}
	return common.HexToAddress(raw), nil
}

// ParseOperationID validates a 32-byte hex operation id.
func ParseOperationID(raw string) (common.Hash, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X")
	if len(s) != 64 {
		return common.Hash{}, dErrors.New(dErrors.CodeBadRequest, "operation id must be 32 bytes of hex")
	}
	b := common.FromHex(s)
	if len(b) != 32 {
		return common.Hash{}, dErrors.New(dErrors.CodeBadRequest, "operation id must be 32 bytes of hex")
	}
	return common.BytesToHash(b), nil
}

// callOutcome is the result of one view call. transport is set when the node
// could not be reached, as opposed to the contract reverting.
type callOutcome struct {
	values    []any
	err       error
	transport bool
}

func (r *TimelockReader) call(ctx context.Context, to common.Address, method string, args ...any) callOutcome {
	input, err := r.abi.Pack(method, args...)
	if err != nil {
		return callOutcome{err: fmt.Errorf("pack %s: %w", method, err)}
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, nil)
	if err != nil {
		var rpcErr rpc.Error
		return callOutcome{err: err, transport: !errors.As(err, &rpcErr)}
	}
	values, err := r.abi.Unpack(method, out)
	if err != nil {
		return callOutcome{err: fmt.Errorf("unpack %s: %w", method, err)}
	}
	return callOutcome{values: values}
}

var inspectFunctions = []string{
	models.FuncProposerRole,
	models.FuncExecutorRole,
	models.FuncCancellerRole,
	models.FuncGetMinDelay,
}

// Inspect issues the four TimelockController view calls concurrently. The address
// is a controller iff all four succeed. An unreachable node is an error rather
// than a negative answer.
func (r *TimelockReader) Inspect(ctx context.Context, address string) (models.ControllerInfo, error) {
	to, err := ParseAddress(address)
	if err != nil {
		return models.ControllerInfo{}, err
	}

	outcomes := make([]callOutcome, len(inspectFunctions))
	g, gctx := errgroup.WithContext(ctx)
	for i, fn := range inspectFunctions {
		g.Go(func() error {
			outcomes[i] = r.call(gctx, to, fn)
			return nil
		})
	}
	_ = g.Wait()

	info := models.ControllerInfo{
		Address:              strings.ToLower(to.Hex()),
		IsTimelockController: true,
		Calls:                make([]models.CallResult, len(inspectFunctions)),
	}
	for i, fn := range inspectFunctions {
		o := outcomes[i]
		if o.transport {
			return models.ControllerInfo{}, fmt.Errorf("%w: rpc call %s: %v", sentinel.ErrUnavailable, fn, o.err)
		}
		res := models.CallResult{Function: fn, OK: o.err == nil}
		if o.err != nil {
			res.Error = o.err.Error()
			info.IsTimelockController = false
			info.Calls[i] = res
			continue
		}
		info.Calls[i] = res
		switch fn {
		case models.FuncProposerRole:
			info.ProposerRole = hashValue(o.values)
		case models.FuncExecutorRole:
			info.ExecutorRole = hashValue(o.values)
		case models.FuncCancellerRole:
			info.CancellerRole = hashValue(o.values)
		case models.FuncGetMinDelay:
			info.MinDelay = bigValue(o.values)
		}
	}

	r.logger.DebugContext(ctx, "timelock inspection finished",
		"address", info.Address,
		"is_timelock_controller", info.IsTimelockController,
	)
	return info, nil
}

// OperationState reads getTimestamp(id) and derives the lifecycle state:
// 0 is unset, 1 is done, a future timestamp is pending, otherwise ready.
func (r *TimelockReader) OperationState(ctx context.Context, address, operationID string) (models.OperationState, *big.Int, error) {
	to, err := ParseAddress(address)
	if err != nil {
		return "", nil, err
	}
	id, err := ParseOperationID(operationID)
	if err != nil {
		return "", nil, err
	}

	o := r.call(ctx, to, "getTimestamp", [32]byte(id))
	if o.err != nil {
		if o.transport {
			return "", nil, fmt.Errorf("%w: rpc call getTimestamp: %v", sentinel.ErrUnavailable, o.err)
		}
		return "", nil, dErrors.Wrap(o.err, dErrors.CodeBadGateway, "getTimestamp call failed")
	}
	ts := bigValue(o.values)
	if ts == nil {
		return "", nil, dErrors.New(dErrors.CodeBadGateway, "getTimestamp returned no value")
	}
	return StateAt(ts, requestcontext.Now(ctx)), ts, nil
}

// StateAt classifies a getTimestamp value relative to now.
func StateAt(ts *big.Int, now time.Time) models.OperationState {
	switch {
	case ts.Sign() == 0:
		return models.StateUnset
	case ts.Cmp(doneTimestamp) == 0:
		return models.StateDone
	case ts.Cmp(big.NewInt(now.Unix())) > 0:
		return models.StatePending
	default:
		return models.StateReady
	}
}

func hashValue(values []any) string {
	if len(values) == 0 {
		return ""
	}
	if b, ok := values[0].([32]byte); ok {
		return common.Hash(b).Hex()
	}
	return ""
}

func bigValue(values []any) *big.Int {
	if len(values) == 0 {
		return nil
	}
	if v, ok := values[0].(*big.Int); ok {
		return v
	}
	return nil
}
