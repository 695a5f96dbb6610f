package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"userextra/internal/model"
	"userextra/internal/service"
	serviceMocks "userextra/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sample(id int64) *model.UserExtra {
	return &model.UserExtra{
		ID:         model.Int64(id),
		FrontImage: model.String("a.png"),
		BackImage:  model.String("b.png"),
		User:       &model.UserRef{ID: 7},
	}
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListUserExtras(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserExtraService)
	app := fiber.New()
	app.Get("/user-extras", ListUserExtras(mockSvc))

	t.Run("all records", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 0, 0).Return([]model.UserExtra{*sample(1), *sample(2)}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/user-extras", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.UserExtra
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 2)
		mockSvc.AssertExpectations(t)
	})

	t.Run("page and size", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 20, 40).Return([]model.UserExtra{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/user-extras?page=2&size=20", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid size", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-extras?size=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_SIZE", decodeError(t, resp).Error.Code)
	})

	t.Run("negative page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-extras?page=-1&size=5", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_PAGE", decodeError(t, resp).Error.Code)
	})

	t.Run("offset overflow", func(t *testing.T) {
		target := fmt.Sprintf("/user-extras?page=%d&size=20", math.MaxInt/20+1)
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_PAGE", decodeError(t, resp).Error.Code)
	})

	t.Run("largest page that fits", func(t *testing.T) {
		page := math.MaxInt / 20
		mockSvc.On("List", mock.Anything, 20, page*20).Return([]model.UserExtra{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/user-extras?page=%d&size=20", page), nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 0, 0).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/user-extras", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateUserExtra(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserExtraService)
	app := fiber.New()
	app.Post("/api/user-extras", CreateUserExtra(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(e *model.UserExtra) bool {
			return e.ID == nil && model.Deref(e.FrontImage) == "a.png"
		})).Return(sample(42), nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/user-extras",
			strings.NewReader(`{"frontImage":"a.png","backImage":"b.png","user":{"id":7}}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "/api/user-extras/42", resp.Header.Get("Location"))

		var result model.UserExtra
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "42", result.IDString())
		mockSvc.AssertExpectations(t)
	})

	t.Run("id already set", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrIDExists).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/user-extras", strings.NewReader(`{"id":3}`))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "ID_EXISTS", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("user taken", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrUserTaken).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/user-extras", strings.NewReader(`{"user":{"id":7}}`))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "USER_TAKEN", decodeError(t, resp).Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user-extras", strings.NewReader(`{`))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})
}

func TestGetUserExtra(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserExtraService)
	app := fiber.New()
	app.Get("/user-extras/:id", GetUserExtra(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(42)).Return(sample(42), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/user-extras/42", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.UserExtra
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "42", result.IDString())
		assert.Equal(t, "7", result.UserIDString())
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(9)).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/user-extras/9", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-extras/abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(5)).Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/user-extras/5", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateUserExtra(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserExtraService)
	app := fiber.New()
	app.Put("/user-extras/:id", UpdateUserExtra(mockSvc))
	app.Patch("/user-extras/:id", PartialUpdateUserExtra(mockSvc))

	t.Run("put success", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, int64(42), mock.Anything).Return(sample(42), nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/user-extras/42",
			strings.NewReader(`{"id":42,"frontImage":"a.png","backImage":"b.png"}`))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("put unknown id", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, int64(43), mock.Anything).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, "/user-extras/43", strings.NewReader(`{"id":43}`))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "ID_NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("put mismatched id", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, int64(44), mock.Anything).Return(nil, service.ErrIDInvalid).Once()

		req := httptest.NewRequest(http.MethodPut, "/user-extras/44", strings.NewReader(`{"id":1}`))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "ID_INVALID", decodeError(t, resp).Error.Code)
	})

	t.Run("patch missing id", func(t *testing.T) {
		mockSvc.On("PartialUpdate", mock.Anything, int64(42), mock.Anything).Return(nil, service.ErrIDNull).Once()

		req := httptest.NewRequest(http.MethodPatch, "/user-extras/42", strings.NewReader(`{"frontImage":"c.png"}`))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "ID_NULL", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteUserExtra(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserExtraService)
	app := fiber.New()
	app.Delete("/user-extras/:id", DeleteUserExtra(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(42)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/user-extras/42", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(9)).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/user-extras/9", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func multipartImages(t *testing.T, fields ...string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, f := range fields {
		part, err := writer.CreateFormFile(f, f+".png")
		require.NoError(t, err)
		part.Write([]byte("png"))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadImages(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserExtraService)
	app := fiber.New()
	app.Post("/user-extras/:id/images", UploadImages(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("UploadImages", mock.Anything, int64(42),
			mock.MatchedBy(func(u service.ImageUpload) bool { return u.Filename == "frontImage.png" }),
			mock.MatchedBy(func(u service.ImageUpload) bool { return u.Filename == "backImage.png" }),
		).Return(sample(42), nil).Once()

		body, ct := multipartImages(t, "frontImage", "backImage")
		req := httptest.NewRequest(http.MethodPost, "/user-extras/42/images", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing back image", func(t *testing.T) {
		body, ct := multipartImages(t, "frontImage")
		req := httptest.NewRequest(http.MethodPost, "/user-extras/42/images", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		mockSvc.On("UploadImages", mock.Anything, int64(42), mock.Anything, mock.Anything).
			Return(nil, errors.New("minio down")).Once()

		body, ct := multipartImages(t, "frontImage", "backImage")
		req := httptest.NewRequest(http.MethodPost, "/user-extras/42/images", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusExpectationFailed, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "UPLOAD_FAILED", res.Error.Code)
		assert.Contains(t, res.Error.Message, "frontImage.png")
	})

	t.Run("unknown record", func(t *testing.T) {
		mockSvc.On("UploadImages", mock.Anything, int64(9), mock.Anything, mock.Anything).
			Return(nil, service.ErrNotFound).Once()

		body, ct := multipartImages(t, "frontImage", "backImage")
		req := httptest.NewRequest(http.MethodPost, "/user-extras/9/images", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserExtraService)
	app := fiber.New()
	app.Get("/user-extras/:id/images/:side", GetImage(mockSvc))

	t.Run("redirects to presigned url", func(t *testing.T) {
		mockSvc.On("ImageURL", mock.Anything, int64(42), service.BackSide).
			Return("http://minio.local/bucket/back-images/x.png?sig=1", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/user-extras/42/images/back", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
		assert.Equal(t, "http://minio.local/bucket/back-images/x.png?sig=1", resp.Header.Get("Location"))
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid side", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-extras/42/images/left", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_SIDE", decodeError(t, resp).Error.Code)
	})

	t.Run("image not set", func(t *testing.T) {
		mockSvc.On("ImageURL", mock.Anything, int64(42), service.FrontSide).Return("", service.ErrImageMissing).Once()

		req := httptest.NewRequest(http.MethodGet, "/user-extras/42/images/front", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "IMAGE_NOT_FOUND", decodeError(t, resp).Error.Code)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mockSvc := new(serviceMocks.MockUserExtraService)
	RegisterRoutes(app, nil, mockSvc)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("collection is served", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 0, 0).Return([]model.UserExtra{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, APIPrefix, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}
