package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessexplorer/internal/favorites/service"
	"accessexplorer/internal/favorites/store"
	jwttoken "accessexplorer/internal/jwt_token"
	"accessexplorer/internal/platform/logger"
	"accessexplorer/pkg/testutil"
)

const timelock = "0x00000000000000000000000000000000000000c3"

func newRouter(t *testing.T) (chi.Router, string) {
	t.Helper()
	jwt := jwttoken.NewJWTService("test-key", "accessexplorer", "accessexplorer")
	token, err := jwt.GenerateToken("0xOwner", time.Hour)
	require.NoError(t, err)

	r := chi.NewRouter()
	New(service.New(store.NewInMemoryStore()), jwt, logger.Discard()).Register(r)
	return r, token
}

func bearer(token string) func(*http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		r.Header.Set("Authorization", "Bearer "+token)
		return r
	}
}

func TestFavoritesHandler(t *testing.T) {
	testutil.Given(t, "an authenticated owner", func(t *testing.T) {
		r, token := newRouter(t)
		path := "/api/favorites/timelock-controller/" + timelock

		testutil.When(t, "the owner pins a timelock", func(t *testing.T) {
			rec := testutil.Do(t, r, http.MethodPut, path, map[string]string{"label": "treasury"}, bearer(token))
			require.Equal(t, http.StatusOK, rec.Code)

			testutil.Then(t, "it is listed under its entity type", func(t *testing.T) {
				rec := testutil.Do(t, r, http.MethodGet, "/api/favorites", nil, bearer(token))
				require.Equal(t, http.StatusOK, rec.Code)
				body := testutil.DecodeJSON[map[string]any](t, rec)
				assert.EqualValues(t, 1, body["total"])
				favs := body["favorites"].(map[string]any)
				assert.Len(t, favs["timelock-controller"], 1)
			})

			testutil.Then(t, "it reports as a favorite", func(t *testing.T) {
				rec := testutil.Do(t, r, http.MethodGet, path, nil, bearer(token))
				body := testutil.DecodeJSON[statusResponse](t, rec)
				assert.True(t, body.Favorite)
			})
		})

		testutil.When(t, "the owner toggles it", func(t *testing.T) {
			rec := testutil.Do(t, r, http.MethodPost, path+"/toggle", nil, bearer(token))
			require.Equal(t, http.StatusOK, rec.Code)

			testutil.Then(t, "it is no longer a favorite", func(t *testing.T) {
				body := testutil.DecodeJSON[statusResponse](t, rec)
				assert.False(t, body.Favorite)
			})
		})

		testutil.When(t, "the owner deletes a missing favorite", func(t *testing.T) {
			rec := testutil.Do(t, r, http.MethodDelete, path, nil, bearer(token))

			testutil.Then(t, "the response is not found", func(t *testing.T) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
			})
		})

		testutil.When(t, "the entity type is unknown", func(t *testing.T) {
			rec := testutil.Do(t, r, http.MethodPut, "/api/favorites/governor/"+timelock, nil, bearer(token))

			testutil.Then(t, "the request is rejected", func(t *testing.T) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			})
		})
	})

	testutil.Given(t, "no bearer token", func(t *testing.T) {
		r, _ := newRouter(t)
		rec := testutil.Do(t, r, http.MethodGet, "/api/favorites", nil)

		testutil.Then(t, "the request is unauthorized", func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	})
}
