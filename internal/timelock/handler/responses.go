package handler

import (
	"accessexplorer/internal/chains"
	"accessexplorer/internal/timelock/format"
	"accessexplorer/internal/timelock/models"
	"accessexplorer/internal/timelock/service"
)

type callResponse struct {
	Function string `json:"function"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

type controllerResponse struct {
	Address              string         `json:"address"`
	AddressURL           string         `json:"address_url,omitempty"`
	IsTimelockController bool           `json:"is_timelock_controller"`
	ProposerRole         string         `json:"proposer_role,omitempty"`
	ExecutorRole         string         `json:"executor_role,omitempty"`
	CancellerRole        string         `json:"canceller_role,omitempty"`
	MinDelay             string         `json:"min_delay,omitempty"`
	MinDelayDisplay      string         `json:"min_delay_display,omitempty"`
	Calls                []callResponse `json:"calls"`
}

type signerResponse struct {
	Address      string   `json:"address"`
	Roles        []string `json:"roles"`
	RoleNames    []string `json:"role_names"`
	Status       string   `json:"status"`
	GrantedAt    int64    `json:"granted_at"`
	GrantedAtISO string   `json:"granted_at_iso"`
	RevokedAt    *int64   `json:"revoked_at,omitempty"`
	RevokedAtISO string   `json:"revoked_at_iso,omitempty"`
}

type signersResponse struct {
	Signers []signerResponse `json:"signers"`
	Total   int              `json:"total"`
}

type operationResponse struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Label           string `json:"label"`
	BlockNumber     uint64 `json:"block_number"`
	BlockTimestamp  int64  `json:"block_timestamp"`
	Time            string `json:"time"`
	TransactionHash string `json:"transaction_hash"`
	TransactionURL  string `json:"transaction_url,omitempty"`

	OperationID  string `json:"operation_id,omitempty"`
	Index        string `json:"index,omitempty"`
	Target       string `json:"target,omitempty"`
	Value        string `json:"value,omitempty"`
	ValueDisplay string `json:"value_display,omitempty"`
	Data         string `json:"data,omitempty"`
	DataDisplay  string `json:"data_display,omitempty"`
	Predecessor  string `json:"predecessor,omitempty"`
	Delay        string `json:"delay,omitempty"`
	Role         string `json:"role,omitempty"`
	RoleName     string `json:"role_name,omitempty"`
	Account      string `json:"account,omitempty"`
	Sender       string `json:"sender,omitempty"`
}

type operationsResponse struct {
	Operations []operationResponse `json:"operations"`
	Total      int                 `json:"total"`
}

type overviewResponse struct {
	ChainID    int64               `json:"chain_id"`
	Controller controllerResponse  `json:"controller"`
	Signers    []signerResponse    `json:"signers"`
	Operations []operationResponse `json:"operations"`
}

type stateResponse struct {
	OperationID string `json:"operation_id"`
	State       string `json:"state"`
	Timestamp   string `json:"timestamp"`
}

func toControllerResponse(chain chains.Chain, info models.ControllerInfo) controllerResponse {
	out := controllerResponse{
		Address:              info.Address,
		AddressURL:           format.AddressURL(chain.ExplorerURL, info.Address),
		IsTimelockController: info.IsTimelockController,
		ProposerRole:         info.ProposerRole,
		ExecutorRole:         info.ExecutorRole,
		CancellerRole:        info.CancellerRole,
		Calls:                make([]callResponse, 0, len(info.Calls)),
	}
	if info.MinDelay != nil {
		out.MinDelay = info.MinDelay.String()
		out.MinDelayDisplay = format.Delay(info.MinDelay)
	}
	for _, c := range info.Calls {
		out.Calls = append(out.Calls, callResponse(c))
	}
	return out
}

func toSignerResponses(signers []models.Signer) []signerResponse {
	out := make([]signerResponse, 0, len(signers))
	for _, s := range signers {
		names := make([]string, 0, len(s.Roles))
		for _, role := range s.Roles {
			names = append(names, format.RoleDisplayName(role))
		}
		resp := signerResponse{
			Address:      s.Address,
			Roles:        s.Roles,
			RoleNames:    names,
			Status:       format.SignerStatus(s),
			GrantedAt:    s.GrantedAt,
			GrantedAtISO: format.Timestamp(s.GrantedAt),
			RevokedAt:    s.RevokedAt,
		}
		if s.RevokedAt != nil {
			resp.RevokedAtISO = format.Timestamp(*s.RevokedAt)
		}
		out = append(out, resp)
	}
	return out
}

func toOperationResponses(chain chains.Chain, ops []models.Operation) []operationResponse {
	out := make([]operationResponse, 0, len(ops))
	for _, op := range ops {
		resp := operationResponse{
			ID:              op.ID,
			Type:            string(op.Type),
			Label:           format.OperationLabel(op.Type),
			BlockNumber:     op.BlockNumber,
			BlockTimestamp:  op.BlockTimestamp,
			Time:            format.Timestamp(op.BlockTimestamp),
			TransactionHash: op.TransactionHash,
			TransactionURL:  format.TxURL(chain.ExplorerURL, op.TransactionHash),
			OperationID:     op.OperationID,
			Index:           op.Index,
			Target:          op.Target,
			Value:           op.Value,
			Data:            op.Data,
			Predecessor:     op.Predecessor,
			Delay:           op.Delay,
			Role:            op.Role,
			Account:         op.Account,
			Sender:          op.Sender,
		}
		if op.Value != "" {
			resp.ValueDisplay = format.Value(op.Value, chain.Symbol, chain.Decimals)
		}
		if op.Data != "" {
			resp.DataDisplay = format.DataPayload(op.Data)
		}
		if op.Role != "" {
			resp.RoleName = format.RoleName(op.Role)
		}
		out = append(out, resp)
	}
	return out
}

func toOverviewResponse(chain chains.Chain, o service.Overview) overviewResponse {
	return overviewResponse{
		ChainID:    chain.ID,
		Controller: toControllerResponse(chain, o.Controller),
		Signers:    toSignerResponses(o.Signers),
		Operations: toOperationResponses(chain, o.Operations),
	}
}

func toStateResponse(s service.OperationStatus) stateResponse {
	resp := stateResponse{OperationID: s.OperationID, State: string(s.State), Timestamp: "0"}
	if s.Timestamp != nil {
		resp.Timestamp = s.Timestamp.String()
	}
	return resp
}
