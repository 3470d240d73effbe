package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/rubsen49-sketch/MovieMatch/catalog"
	catalogmocks "github.com/rubsen49-sketch/MovieMatch/catalog/mocks"
	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
	"github.com/rubsen49-sketch/MovieMatch/library"
	librarymocks "github.com/rubsen49-sketch/MovieMatch/library/mocks"
	"github.com/rubsen49-sketch/MovieMatch/rooms"
	roommocks "github.com/rubsen49-sketch/MovieMatch/rooms/mocks"
)

type fixture struct {
	router   *Router
	rooms    *roommocks.MockRoomService
	provider *catalogmocks.MockProvider
	store    *librarymocks.MockStore
}

func setupRouter(t *testing.T) *fixture {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	f := &fixture{
		rooms:    roommocks.NewMockRoomService(ctrl),
		provider: catalogmocks.NewMockProvider(ctrl),
		store:    librarymocks.NewMockStore(ctrl),
	}
	f.router = NewRouter(f.rooms, f.provider, f.store, nil, []string{"*"}, log.NewTest(t))
	return f
}

func (f *fixture) do(method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	f := setupRouter(t)

	w := f.do("GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestStats(t *testing.T) {
	f := setupRouter(t)
	f.rooms.EXPECT().Stats(gomock.Any()).Return(rooms.Stats{Rooms: 2, Participants: 5, Voting: 1, LikedMovies: 12})

	w := f.do("GET", "/api/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rooms":2,"participants":5,"voting":1,"likedMovies":12}`, w.Body.String())
}

func TestRoomSnapshot(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := setupRouter(t)
		snap := &rooms.Snapshot{
			Code:     "MOVIE",
			Phase:    rooms.PhaseVoting,
			Settings: rooms.DefaultSettings(),
			Participants: []rooms.Participant{
				{ID: "c1", Username: "alice", IsHost: true},
			},
			HostID:    "c1",
			Votes:     map[int]int{603: 1},
			CreatedAt: time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC),
		}
		f.rooms.EXPECT().RoomSnapshot(gomock.Any(), "movie").Return(snap, nil)

		w := f.do("GET", "/api/rooms/movie", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, "MOVIE", body["code"])
		assert.Equal(t, "voting", body["phase"])
		assert.Equal(t, "c1", body["hostId"])
		assert.Equal(t, map[string]any{"603": float64(1)}, body["votes"])
	})

	t.Run("NotFound", func(t *testing.T) {
		f := setupRouter(t)
		f.rooms.EXPECT().RoomSnapshot(gomock.Any(), "GHOST").
			Return(nil, errors.New(rooms.ErrRoomNotFound, "room GHOST"))

		w := f.do("GET", "/api/rooms/GHOST", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])
	})

	t.Run("InvalidCode", func(t *testing.T) {
		f := setupRouter(t)

		w := f.do("GET", "/api/rooms/a!", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Validation failed", decode(t, w)["error"])
	})
}

func TestDiscover(t *testing.T) {
	page := &catalog.Page{Page: 1, TotalPages: 3, Results: []catalog.Movie{{ID: 603, Title: "The Matrix", GenreIDs: []int{}}}}

	t.Run("ExplicitFilters", func(t *testing.T) {
		f := setupRouter(t)
		f.provider.EXPECT().Discover(gomock.Any(), catalog.Query{
			Page:      2,
			Genres:    []int{28, 878},
			Providers: []int{8},
			MinRating: 7,
			MinVotes:  300,
			Region:    "BE",
			YearFrom:  1990,
			YearTo:    2000,
			SortBy:    catalog.SortRating,
		}).Return(page, nil)

		w := f.do("GET", "/api/catalog/discover?page=2&genres=28,878&providers=8&minRating=7&mode=classic&yearFrom=1990&yearTo=2000&region=be", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(3), decode(t, w)["totalPages"])
	})

	t.Run("RoomSettings", func(t *testing.T) {
		f := setupRouter(t)
		settings := rooms.DefaultSettings()
		settings.Genres = []int{35}
		f.rooms.EXPECT().RoomSnapshot(gomock.Any(), "MOVIE").Return(&rooms.Snapshot{Code: "MOVIE", Settings: settings}, nil)
		f.provider.EXPECT().Discover(gomock.Any(), catalog.QueryFromSettings(settings, 1)).Return(page, nil)

		w := f.do("GET", "/api/catalog/discover?room=MOVIE", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UnknownRoom", func(t *testing.T) {
		f := setupRouter(t)
		f.rooms.EXPECT().RoomSnapshot(gomock.Any(), "GHOST").Return(nil, errors.New(rooms.ErrRoomNotFound, "room GHOST"))

		w := f.do("GET", "/api/catalog/discover?room=GHOST", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvertedYears", func(t *testing.T) {
		f := setupRouter(t)

		w := f.do("GET", "/api/catalog/discover?yearFrom=2000&yearTo=1990", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("BadMode", func(t *testing.T) {
		f := setupRouter(t)

		w := f.do("GET", "/api/catalog/discover?mode=random", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		f := setupRouter(t)
		f.provider.EXPECT().Discover(gomock.Any(), gomock.Any()).Return(nil, errors.New(catalog.ErrUpstream, "boom"))

		w := f.do("GET", "/api/catalog/discover", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "catalog unavailable", decode(t, w)["error"])
	})

	t.Run("Disabled", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		ctrl := gomock.NewController(t)
		r := NewRouter(roommocks.NewMockRoomService(ctrl), nil, nil, nil, nil, log.NewTest(t))

		w := httptest.NewRecorder()
		r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/api/catalog/discover", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestWatchProviders(t *testing.T) {
	t.Run("DefaultRegion", func(t *testing.T) {
		f := setupRouter(t)
		f.provider.EXPECT().WatchProviders(gomock.Any(), 603, "FR").
			Return([]catalog.StreamingProvider{{ID: 8, Name: "Netflix"}}, nil)

		w := f.do("GET", "/api/catalog/movies/603/providers", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "FR", body["region"])
		assert.Len(t, body["providers"], 1)
	})

	t.Run("MovieNotFound", func(t *testing.T) {
		f := setupRouter(t)
		f.provider.EXPECT().WatchProviders(gomock.Any(), 42, "US").
			Return(nil, errors.New(errors.ErrNotFound, "missing"))

		w := f.do("GET", "/api/catalog/movies/42/providers?region=us", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidMovieID", func(t *testing.T) {
		f := setupRouter(t)

		w := f.do("GET", "/api/catalog/movies/0/providers", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLibrary(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		f := setupRouter(t)
		f.store.EXPECT().Get(gomock.Any(), "u1").Return([]library.Entry{{MovieID: 603, Title: "The Matrix"}}, nil)

		w := f.do("GET", "/api/users/u1/library", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["entries"], 1)
	})

	t.Run("Put", func(t *testing.T) {
		f := setupRouter(t)
		in := []library.Entry{{
			MovieID: 13, Title: "Forrest Gump", VoteAverage: 8.5,
			AddedAt: time.Date(2026, 2, 1, 21, 0, 0, 0, time.UTC),
		}}
		f.store.EXPECT().Upsert(gomock.Any(), "u1", in).
			Return(append(in, library.Entry{MovieID: 603, Title: "The Matrix"}), nil)

		w := f.do("PUT", "/api/users/u1/library", map[string]any{"entries": in})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Len(t, body["entries"], 2)
	})

	t.Run("PutRejectsBadEntry", func(t *testing.T) {
		f := setupRouter(t)

		w := f.do("PUT", "/api/users/u1/library", map[string]any{
			"entries": []map[string]any{{"id": 0, "title": ""}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, decode(t, w)["details"])
	})

	t.Run("PutRequiresEntries", func(t *testing.T) {
		f := setupRouter(t)

		w := f.do("PUT", "/api/users/u1/library", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("StoreError", func(t *testing.T) {
		f := setupRouter(t)
		f.store.EXPECT().Get(gomock.Any(), "u1").Return(nil, errors.New(library.ErrStore, "down"))

		w := f.do("GET", "/api/users/u1/library", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])
	})
}

func TestWebSocketRouteIsMounted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	called := false
	ws := func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}
	r := NewRouter(roommocks.NewMockRoomService(ctrl), nil, nil, ws, nil, log.NewTest(t))

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/ws", nil))
	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, w.Code)
}
