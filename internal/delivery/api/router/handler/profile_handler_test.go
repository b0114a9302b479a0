package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	mockUsecase "coderr/internal/mocks/usecase"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileTestEcho(t *testing.T, caller policy.Caller) (*echo.Echo, *mockUsecase.MockProfileUsecase) {
	profileUC := mockUsecase.NewMockProfileUsecase(t)
	h := NewProfileHandler(ProfileHandlerParams{
		ProfileUC: profileUC,
		Store:     newMediaStore(t),
		Config:    testConfig(),
		Logger:    discardLogger(),
	})

	e := newTestEcho()
	e.GET("/profile/business", h.ListBusinessProfiles, asCaller(caller))
	e.GET("/profile/customer", h.ListCustomerProfiles, asCaller(caller))
	e.GET("/profile/:user_id", h.GetProfile, asCaller(caller))
	e.PATCH("/profile/:user_id", h.UpdateProfile, asCaller(caller))

	return e, profileUC
}

func sampleUser(profileType entity.ProfileType) *entity.User {
	id := uuid.New()
	uploadedAt := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

	return &entity.User{
		ID:        id,
		Username:  "max",
		Email:     "max@example.com",
		FirstName: "Max",
		LastName:  "Mustermann",
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Profile: &entity.Profile{
			UserID:       id,
			Type:         profileType,
			File:         "profiles/max.jpg",
			UploadedAt:   &uploadedAt,
			Location:     "Berlin",
			Tel:          "123456",
			Description:  "Design studio",
			WorkingHours: "9-17",
		},
	}
}

func TestProfileHandler_GetProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		user := sampleUser(entity.ProfileTypeBusiness)
		e, profileUC := newProfileTestEcho(t, customer())
		profileUC.EXPECT().GetProfile(mock.Anything, user.ID).Return(user, nil)

		rec := doRequest(e, http.MethodGet, "/profile/"+user.ID.String(), "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decodeJSON[ProfileResponse](t, rec)
		assert.Equal(t, user.ID, body.User)
		assert.Equal(t, "business", body.Type)
		require.NotNil(t, body.File)
		assert.Equal(t, "/media/profiles/max.jpg", *body.File)
	})

	t.Run("no avatar renders null", func(t *testing.T) {
		user := sampleUser(entity.ProfileTypeCustomer)
		user.Profile.File = ""
		e, profileUC := newProfileTestEcho(t, customer())
		profileUC.EXPECT().GetProfile(mock.Anything, user.ID).Return(user, nil)

		rec := doRequest(e, http.MethodGet, "/profile/"+user.ID.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, decodeJSON[ProfileResponse](t, rec).File)
	})

	t.Run("malformed id", func(t *testing.T) {
		e, _ := newProfileTestEcho(t, customer())

		rec := doRequest(e, http.MethodGet, "/profile/7", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "PROFILE_NOT_FOUND", errorCode(t, rec))
	})
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		user := sampleUser(entity.ProfileTypeBusiness)
		caller := policy.Caller{UserID: user.ID, Type: entity.ProfileTypeBusiness}
		e, profileUC := newProfileTestEcho(t, caller)
		profileUC.EXPECT().UpdateProfile(mock.Anything, caller, user.ID, mock.MatchedBy(func(input *usecase.UpdateProfileInput) bool {
			return input.Location != nil && *input.Location == "Hamburg" &&
				input.FirstName == nil &&
				input.File == nil
		})).Return(user, nil)

		rec := doRequest(e, http.MethodPatch, "/profile/"+user.ID.String(), `{"location":"Hamburg"}`)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("invalid email", func(t *testing.T) {
		user := sampleUser(entity.ProfileTypeBusiness)
		e, _ := newProfileTestEcho(t, policy.Caller{UserID: user.ID, Type: entity.ProfileTypeBusiness})

		rec := doRequest(e, http.MethodPatch, "/profile/"+user.ID.String(), `{"email":"nope"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorFields(t, rec), "email")
	})

	t.Run("multipart avatar", func(t *testing.T) {
		user := sampleUser(entity.ProfileTypeCustomer)
		caller := policy.Caller{UserID: user.ID, Type: entity.ProfileTypeCustomer}
		e, profileUC := newProfileTestEcho(t, caller)
		profileUC.EXPECT().UpdateProfile(mock.Anything, caller, user.ID, mock.MatchedBy(func(input *usecase.UpdateProfileInput) bool {
			if input.File == nil || input.File.Name != "me.jpg" || input.FirstName == nil || *input.FirstName != "Maxi" {
				return false
			}
			content, err := io.ReadAll(input.File.Content)

			return err == nil && string(content) == "jpeg-bytes"
		})).Return(user, nil)

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("first_name", "Maxi"))
		part, err := writer.CreateFormFile("file", "me.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg-bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPatch, "/profile/"+user.ID.String(), &body)
		req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("not the owner", func(t *testing.T) {
		e, profileUC := newProfileTestEcho(t, customer())
		profileUC.EXPECT().UpdateProfile(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, domainerrors.ErrForbidden)

		rec := doRequest(e, http.MethodPatch, "/profile/"+uuid.NewString(), `{"tel":"1"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestProfileHandler_Lists(t *testing.T) {
	t.Run("business items omit uploaded_at", func(t *testing.T) {
		e, profileUC := newProfileTestEcho(t, customer())
		profileUC.EXPECT().ListProfiles(mock.Anything, entity.ProfileTypeBusiness, repository.Page{Offset: 0, Limit: 6}).
			Return([]*entity.User{sampleUser(entity.ProfileTypeBusiness)}, 1, nil)

		rec := doRequest(e, http.MethodGet, "/profile/business", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		page := decodeJSON[struct {
			Results []map[string]any `json:"results"`
		}](t, rec)
		require.Len(t, page.Results, 1)
		assert.NotContains(t, page.Results[0], "uploaded_at")
		assert.Equal(t, "Berlin", page.Results[0]["location"])
	})

	t.Run("customer items omit business fields", func(t *testing.T) {
		e, profileUC := newProfileTestEcho(t, customer())
		profileUC.EXPECT().ListProfiles(mock.Anything, entity.ProfileTypeCustomer, repository.Page{Offset: 0, Limit: 6}).
			Return([]*entity.User{sampleUser(entity.ProfileTypeCustomer)}, 1, nil)

		rec := doRequest(e, http.MethodGet, "/profile/customer", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		page := decodeJSON[struct {
			Results []map[string]any `json:"results"`
		}](t, rec)
		require.Len(t, page.Results, 1)
		assert.Contains(t, page.Results[0], "uploaded_at")
		for _, field := range []string{"location", "tel", "description", "working_hours"} {
			assert.NotContains(t, page.Results[0], field)
		}
	})
}
