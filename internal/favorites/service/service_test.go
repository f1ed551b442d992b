package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"accessexplorer/internal/analytics"
	"accessexplorer/internal/favorites/models"
	"accessexplorer/internal/favorites/service/mocks"
	"accessexplorer/pkg/domain"
	dErrors "accessexplorer/pkg/domain-errors"
	"accessexplorer/pkg/platform/sentinel"
	"accessexplorer/pkg/requestcontext"
)

const (
	owner   = "0x00000000000000000000000000000000000000a1"
	address = "0x00000000000000000000000000000000000000B2"
	lower   = "0x00000000000000000000000000000000000000b2"
)

type ServiceSuite struct {
	suite.Suite
	mockStore   *mocks.MockStore
	mockEmitter *mocks.MockEmitter
	service     *Service
	ctx         context.Context
	now         time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(ctrl)
	s.mockEmitter = mocks.NewMockEmitter(ctrl)
	s.service = New(s.mockStore, WithEmitter(s.mockEmitter))
	s.now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) key() models.Key {
	return models.Key{Owner: owner, Entity: domain.EntityTimelockController, Address: domain.Address(lower)}
}

func (s *ServiceSuite) TestAdd() {
	s.Run("validates entity type", func() {
		_, err := s.service.Add(s.ctx, owner, "governor", address, "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("requires a subject", func() {
		_, err := s.service.Add(s.ctx, "", "target", address, "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("stores a normalized favorite and emits", func() {
		s.mockStore.EXPECT().Add(gomock.Any(), gomock.Cond(func(f *models.Favorite) bool {
			return f.Key() == s.key() && f.CreatedAt.Equal(s.now)
		})).Return(nil)
		s.mockEmitter.EXPECT().Emit(gomock.Any(), gomock.Cond(func(e analytics.Event) bool {
			return e.Name == analytics.EventFavorite && e.Action == "add" && e.Account == lower
		}))

		f, err := s.service.Add(s.ctx, owner, "timelock-controller", address, "treasury")
		s.Require().NoError(err)
		s.Equal("treasury", f.Label)
	})

	s.Run("existing favorite is returned", func() {
		existing := models.NewFavorite(s.key(), "old", s.now)
		s.mockStore.EXPECT().Add(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict)
		s.mockStore.EXPECT().Find(gomock.Any(), s.key()).Return(existing, nil)

		f, err := s.service.Add(s.ctx, owner, "timelock-controller", address, "new")
		s.Require().NoError(err)
		s.Equal(existing.ID, f.ID)
	})
}

func (s *ServiceSuite) TestRemove() {
	s.Run("missing favorite is not found", func() {
		s.mockStore.EXPECT().Remove(gomock.Any(), s.key()).Return(sentinel.ErrNotFound)

		err := s.service.Remove(s.ctx, owner, "timelock-controller", address)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("store failure is internal", func() {
		s.mockStore.EXPECT().Remove(gomock.Any(), s.key()).Return(errors.New("db down"))

		err := s.service.Remove(s.ctx, owner, "timelock-controller", address)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestToggle() {
	s.Run("adds when absent", func() {
		s.mockStore.EXPECT().Find(gomock.Any(), s.key()).Return(nil, sentinel.ErrNotFound)
		s.mockStore.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)
		s.mockEmitter.EXPECT().Emit(gomock.Any(), gomock.Any())

		on, err := s.service.Toggle(s.ctx, owner, "timelock-controller", address)
		s.Require().NoError(err)
		s.True(on)
	})

	s.Run("removes when present", func() {
		s.mockStore.EXPECT().Find(gomock.Any(), s.key()).Return(models.NewFavorite(s.key(), "", s.now), nil)
		s.mockStore.EXPECT().Remove(gomock.Any(), s.key()).Return(nil)
		s.mockEmitter.EXPECT().Emit(gomock.Any(), gomock.Any())

		on, err := s.service.Toggle(s.ctx, owner, "timelock-controller", address)
		s.Require().NoError(err)
		s.False(on)
	})
}

func (s *ServiceSuite) TestList() {
	s.Run("groups by entity type", func() {
		s.mockStore.EXPECT().ListByOwner(gomock.Any(), owner).Return([]*models.Favorite{
			{Entity: domain.EntityTarget, Address: "0x01"},
			{Entity: domain.EntityTimelockController, Address: "0x02"},
			{Entity: domain.EntityTarget, Address: "0x03"},
		}, nil)

		grouped, err := s.service.List(s.ctx, owner)
		s.Require().NoError(err)
		s.Len(grouped[domain.EntityTarget], 2)
		s.Len(grouped[domain.EntityTimelockController], 1)
	})
}
