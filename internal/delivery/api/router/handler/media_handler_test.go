package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/service"
	"coderr/internal/errors"
	mockService "coderr/internal/mocks/service"
	mockUsecase "coderr/internal/mocks/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMediaHandler_ServeFile(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(store *mockService.MockContentStore)
		wantStatus int
		wantBody   string
		wantType   string
		wantAttach string
	}{
		{
			name: "stored file",
			path: "/media/profiles/ab12.png",
			setup: func(store *mockService.MockContentStore) {
				store.EXPECT().Open(mock.Anything, "profiles/ab12.png").Return(&service.StoredFile{
					ReadCloser:  io.NopCloser(strings.NewReader("png-bytes")),
					ContentType: "image/png",
					Size:        9,
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "png-bytes",
			wantType:   "image/png",
		},
		{
			name: "html is downloaded",
			path: "/media/offers/ab12-page.html",
			setup: func(store *mockService.MockContentStore) {
				store.EXPECT().Open(mock.Anything, "offers/ab12-page.html").Return(&service.StoredFile{
					ReadCloser:  io.NopCloser(strings.NewReader("<script>")),
					ContentType: "text/html; charset=utf-8",
					Size:        8,
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "<script>",
			wantType:   "text/html; charset=utf-8",
			wantAttach: `attachment; filename="ab12-page.html"`,
		},
		{
			name: "svg is downloaded",
			path: "/media/profiles/ab12.svg",
			setup: func(store *mockService.MockContentStore) {
				store.EXPECT().Open(mock.Anything, "profiles/ab12.svg").Return(&service.StoredFile{
					ReadCloser:  io.NopCloser(strings.NewReader("<svg/>")),
					ContentType: "image/svg+xml",
					Size:        6,
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "<svg/>",
			wantType:   "image/svg+xml",
			wantAttach: `attachment; filename="ab12.svg"`,
		},
		{
			name: "missing file",
			path: "/media/profiles/gone.png",
			setup: func(store *mockService.MockContentStore) {
				store.EXPECT().Open(mock.Anything, "profiles/gone.png").Return(nil, errors.WithStack(service.ErrContentNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "parent traversal",
			path:       "/media/../config.yaml",
			wantStatus: http.StatusNotFound,
		},
		{
			name: "storage failure",
			path: "/media/offers/x.png",
			setup: func(store *mockService.MockContentStore) {
				store.EXPECT().Open(mock.Anything, "offers/x.png").Return(nil, errors.New("bucket unavailable"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mockService.NewMockContentStore(t)
			if tt.setup != nil {
				tt.setup(store)
			}
			h := NewMediaHandler(MediaHandlerParams{Store: store, Logger: discardLogger()})

			e := newTestEcho()
			e.GET("/media/*", h.ServeFile)

			rec := doRequest(e, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
				assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
				assert.Equal(t, strconv.Itoa(len(tt.wantBody)), rec.Header().Get("Content-Length"))
				assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
				assert.Equal(t, tt.wantAttach, rec.Header().Get("Content-Disposition"))
			}
		})
	}
}

func TestBaseInfoHandler_GetBaseInfo(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		statsUC := mockUsecase.NewMockStatsUsecase(t)
		statsUC.EXPECT().GetBaseInfo(mock.Anything).Return(&entity.BaseInfo{
			ReviewCount:          10,
			AverageRating:        4.6,
			BusinessProfileCount: 45,
			OfferCount:           150,
		}, nil)
		h := NewBaseInfoHandler(BaseInfoHandlerParams{StatsUC: statsUC})

		e := newTestEcho()
		e.GET("/base-info", h.GetBaseInfo)

		rec := doRequest(e, http.MethodGet, "/base-info", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"review_count":10,"average_rating":4.6,"business_profile_count":45,"offer_count":150}`, rec.Body.String())
	})

	t.Run("storage failure", func(t *testing.T) {
		statsUC := mockUsecase.NewMockStatsUsecase(t)
		statsUC.EXPECT().GetBaseInfo(mock.Anything).Return(nil, errors.New("db down"))
		h := NewBaseInfoHandler(BaseInfoHandlerParams{StatsUC: statsUC})

		e := newTestEcho()
		e.GET("/base-info", h.GetBaseInfo)

		rec := doRequest(e, http.MethodGet, "/base-info", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
