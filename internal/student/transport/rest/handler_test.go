package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mkravets/resource-api/internal/student/service"
	"github.com/mkravets/resource-api/internal/student/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *chi.Mux {
	mux := chi.NewRouter()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := NewHandler(service.NewService(store.NewMemoryStore(store.SeedData()...)), logger)
	handler.RegisterRoutes(mux)
	return mux
}

func doRequest(t *testing.T, mux *chi.Mux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func Test_StudentAPI_FindAll(t *testing.T) {
	mux := newTestRouter()

	rr := doRequest(t, mux, http.MethodGet, "/api/v1/students", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var students []store.Student
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &students))
	require.Len(t, students, 5)
	assert.Equal(t, "John", students[0].FirstName)
}

func Test_StudentAPI_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		target       string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - student found",
			target:       "/api/v1/students/2",
			expectedCode: http.StatusOK,
			expectedBody: `{"studentId":2,"firstName":"Jane","lastName":"Smith","email":"jane@example.com","major":"Computer Science","gpa":3.9}`,
		},
		{
			name:         "Error - student not found",
			target:       "/api/v1/students/42",
			expectedCode: http.StatusNotFound,
			expectedBody: `"Student with ID 42 not found"`,
		},
		{
			name:         "Error - invalid id",
			target:       "/api/v1/students/abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid ID: abc"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := newTestRouter()

			rr := doRequest(t, mux, http.MethodGet, tc.target, "")

			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_StudentAPI_FindByMajor(t *testing.T) {
	mux := newTestRouter()

	// path match is case insensitive
	rr := doRequest(t, mux, http.MethodGet, "/api/v1/students/major/mathematics", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var students []store.Student
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &students))
	require.Len(t, students, 1)
	assert.Equal(t, "Bob", students[0].FirstName)

	// no matches mirrors the empty list back with a 404
	rr = doRequest(t, mux, http.MethodGet, "/api/v1/students/major/History", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func Test_StudentAPI_FilterByGpa(t *testing.T) {
	mux := newTestRouter()

	rr := doRequest(t, mux, http.MethodGet, "/api/v1/students/filter?gpa=3.8", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var students []store.Student
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &students))
	require.Len(t, students, 2)
	assert.Equal(t, "John", students[0].FirstName)
	assert.Equal(t, "Jane", students[1].FirstName)

	// missing parameter is a bad request
	rr = doRequest(t, mux, http.MethodGet, "/api/v1/students/filter", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func Test_StudentAPI_Register(t *testing.T) {
	mux := newTestRouter()

	rr := doRequest(t, mux, http.MethodPost, "/api/v1/students",
		`{"firstName":"Dana","lastName":"Lee","email":"dana@example.com","major":"Biology","gpa":3.2}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	var created store.Student
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, int64(6), created.ID)
	assert.Equal(t, "Dana", created.FirstName)

	rr = doRequest(t, mux, http.MethodPost, "/api/v1/students", `{not-json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func Test_StudentAPI_Update(t *testing.T) {
	mux := newTestRouter()

	rr := doRequest(t, mux, http.MethodPut, "/api/v1/students/4",
		`{"firstName":"Alicia","lastName":"Brown","email":"alicia@example.com","major":"Astronomy","gpa":3.7}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var updated store.Student
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, int64(4), updated.ID)
	assert.Equal(t, "Astronomy", updated.Major)

	rr = doRequest(t, mux, http.MethodPut, "/api/v1/students/42", `{"firstName":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `"Student with ID 42 not found"`, rr.Body.String())
}

// Deleting a student frees its slot but never its identifier.
func Test_StudentAPI_DeleteThenRegister(t *testing.T) {
	mux := newTestRouter()

	rr := doRequest(t, mux, http.MethodPost, "/api/v1/students", `{"firstName":"Dana"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created store.Student
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, int64(6), created.ID)

	rr = doRequest(t, mux, http.MethodGet, "/api/v1/students", "")
	var students []store.Student
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &students))
	assert.Len(t, students, 6)

	rr = doRequest(t, mux, http.MethodDelete, "/api/v1/students/3", "")
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = doRequest(t, mux, http.MethodGet, "/api/v1/students/3", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `"Student with ID 3 not found"`, rr.Body.String())

	// the freed identifier is skipped; the counter keeps climbing
	rr = doRequest(t, mux, http.MethodPost, "/api/v1/students", `{"firstName":"Evan"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, int64(7), created.ID)

	rr = doRequest(t, mux, http.MethodDelete, "/api/v1/students/3", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
