package handler

import (
	"math/big"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"accessexplorer/internal/chains"
	"accessexplorer/internal/platform/logger"
	"accessexplorer/internal/timelock/format"
	"accessexplorer/internal/timelock/handler/mocks"
	"accessexplorer/internal/timelock/models"
	"accessexplorer/internal/timelock/service"
	dErrors "accessexplorer/pkg/domain-errors"
	"accessexplorer/pkg/testutil"
)

const address = "0x4b2e7c7f1d2f4a5b8c9d0e1f2a3b4c5d6e7f8091"

var rootstock = chains.Chain{ID: 30, Name: "Rootstock", Symbol: "RBTC", Decimals: 18, ExplorerURL: "https://explorer.example"}

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	chains  *mocks.MockChainLookup
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.chains = mocks.NewMockChainLookup(ctrl)
	s.router = chi.NewRouter()
	New(s.service, s.chains, logger.Discard()).Register(s.router)
}

func (s *HandlerSuite) TestOverview() {
	s.Run("renders controller with display fields", func() {
		s.chains.EXPECT().Get(int64(30)).Return(rootstock, nil)
		s.service.EXPECT().Overview(gomock.Any(), int64(30), address).Return(service.Overview{
			Controller: models.ControllerInfo{
				Address:              address,
				IsTimelockController: true,
				ProposerRole:         format.ProposerRole,
				MinDelay:             big.NewInt(5400),
				Calls:                []models.CallResult{{Function: models.FuncGetMinDelay, OK: true}},
			},
			Signers: []models.Signer{{Address: "0xaaa", Roles: []string{format.ProposerRole}, GrantedAt: 0}},
		}, nil)

		rec := testutil.Do(s.T(), s.router, http.MethodGet, "/api/explorer/30/timelock/"+address, nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		body := testutil.DecodeJSON[overviewResponse](s.T(), rec)
		s.True(body.Controller.IsTimelockController)
		s.Equal("5400", body.Controller.MinDelay)
		s.Equal("1h 30m", body.Controller.MinDelayDisplay)
		s.Equal("https://explorer.example/address/"+address, body.Controller.AddressURL)
		s.Require().Len(body.Signers, 1)
		s.Equal([]string{"Proposer"}, body.Signers[0].RoleNames)
		s.Equal("Active", body.Signers[0].Status)
		s.Equal("1970-01-01T00:00:00Z", body.Signers[0].GrantedAtISO)
		s.Empty(body.Operations)
	})

	s.Run("rejects non numeric chain id", func() {
		rec := testutil.Do(s.T(), s.router, http.MethodGet, "/api/explorer/abc/timelock/"+address, nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown chain is not found", func() {
		s.chains.EXPECT().Get(int64(7)).Return(chains.Chain{}, dErrors.New(dErrors.CodeNotFound, "unsupported chain 7"))

		rec := testutil.Do(s.T(), s.router, http.MethodGet, "/api/explorer/7/timelock/"+address, nil)
		s.Equal(http.StatusNotFound, rec.Code)
		body := testutil.DecodeJSON[map[string]string](s.T(), rec)
		s.Equal(string(dErrors.CodeNotFound), body["error"])
	})
}

func (s *HandlerSuite) TestSigners() {
	revokedAt := int64(1700000000)

	s.Run("history flag is forwarded", func() {
		s.chains.EXPECT().Get(int64(30)).Return(rootstock, nil)
		s.service.EXPECT().Signers(gomock.Any(), int64(30), address, true).Return([]models.Signer{
			{Address: "0xbbb", Roles: []string{}, GrantedAt: 1600000000, RevokedAt: &revokedAt},
		}, nil)

		rec := testutil.Do(s.T(), s.router, http.MethodGet, "/api/explorer/30/timelock/"+address+"/signers?history=true", nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		body := testutil.DecodeJSON[signersResponse](s.T(), rec)
		s.Equal(1, body.Total)
		s.Equal("Revoked", body.Signers[0].Status)
		s.Equal("2023-11-14T22:13:20Z", body.Signers[0].RevokedAtISO)
	})

	s.Run("invalid history flag is rejected", func() {
		s.chains.EXPECT().Get(int64(30)).Return(rootstock, nil)

		rec := testutil.Do(s.T(), s.router, http.MethodGet, "/api/explorer/30/timelock/"+address+"/signers?history=maybe", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("upstream failure maps to bad gateway", func() {
		s.chains.EXPECT().Get(int64(30)).Return(rootstock, nil)
		s.service.EXPECT().Signers(gomock.Any(), int64(30), address, false).
			Return(nil, dErrors.New(dErrors.CodeBadGateway, "timelock signers query failed"))

		rec := testutil.Do(s.T(), s.router, http.MethodGet, "/api/explorer/30/timelock/"+address+"/signers", nil)
		s.Equal(http.StatusBadGateway, rec.Code)
	})

	s.Run("client that went away gets 499", func() {
		s.chains.EXPECT().Get(int64(30)).Return(rootstock, nil)
		s.service.EXPECT().Signers(gomock.Any(), int64(30), address, false).
			Return(nil, dErrors.New(dErrors.CodeCanceled, "timelock signers query failed"))

		rec := testutil.Do(s.T(), s.router, http.MethodGet, "/api/explorer/30/timelock/"+address+"/signers", nil)
		s.Equal(dErrors.StatusClientClosedRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestOperations() {
	s.Run("formats value and payload", func() {
		s.chains.EXPECT().Get(int64(30)).Return(rootstock, nil)
		s.service.EXPECT().Operations(gomock.Any(), int64(30), address).Return([]models.Operation{{
			ID:              "op-1",
			Type:            models.OperationScheduled,
			BlockTimestamp:  1700000000,
			TransactionHash: "0xabc",
			Value:           "1500000000000000000",
			Data:            "0x",
			Target:          "0xdef",
		}}, nil)

		rec := testutil.Do(s.T(), s.router, http.MethodGet, "/api/explorer/30/timelock/"+address+"/operations", nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		body := testutil.DecodeJSON[operationsResponse](s.T(), rec)
		s.Require().Len(body.Operations, 1)
		op := body.Operations[0]
		s.Equal("Scheduled", op.Label)
		s.Equal("1.5000 RBTC", op.ValueDisplay)
		s.Equal("0x (empty)", op.DataDisplay)
		s.Equal("https://explorer.example/tx/0xabc", op.TransactionURL)
	})
}

func (s *HandlerSuite) TestOperationState() {
	opID := "0x" + "11"

	s.Run("returns state", func() {
		s.chains.EXPECT().Get(int64(30)).Return(rootstock, nil)
		s.service.EXPECT().OperationState(gomock.Any(), int64(30), address, opID).Return(service.OperationStatus{
			OperationID: opID,
			State:       models.StateDone,
			Timestamp:   big.NewInt(1),
		}, nil)

		rec := testutil.Do(s.T(), s.router, http.MethodGet, "/api/explorer/30/timelock/"+address+"/operations/"+opID+"/state", nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		body := testutil.DecodeJSON[stateResponse](s.T(), rec)
		s.Equal("done", body.State)
		s.Equal("1", body.Timestamp)
	})
}
