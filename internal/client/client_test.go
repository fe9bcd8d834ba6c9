package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/onboarding-service/internal/domain"
	apperrors "github.com/spec-kit/onboarding-service/pkg/errorutil"
)

func directoryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/departments", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.SeedDepartments())
	})
	mux.HandleFunc("/locations", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.SeedLocations())
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestDepartments(t *testing.T) {
	server := directoryServer(t)
	c := New(server.URL, time.Second)

	items, err := c.Departments(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, domain.Department{ID: 1, Name: "Lending"}, items[0])
}

func TestSearchDepartmentsFiltersClientSide(t *testing.T) {
	server := directoryServer(t)
	c := New(server.URL, time.Second)

	items, err := c.SearchDepartments(context.Background(), "fun")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Funding", items[0].Name)

	all, err := c.SearchLocations(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSubmitBasicInfoReturnsID(t *testing.T) {
	var received domain.BasicInfo
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/basicInfo", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "7"})
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	id, err := c.SubmitBasicInfo(context.Background(), domain.BasicInfo{
		FullName:   "John Doe",
		Email:      "john@example.com",
		Department: "Engineering",
		Role:       "Engineer",
		EmployeeID: "ENG-001",
	})
	require.NoError(t, err)
	assert.Equal(t, "7", id)
	assert.Equal(t, "John Doe", received.FullName)
	assert.Equal(t, "ENG-001", received.EmployeeID)
}

func TestSubmitDetailsCarriesBasicInfoID(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/details", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	err := c.SubmitDetails(context.Background(), domain.Details{
		EmploymentType: domain.EmploymentFullTime,
		OfficeLocation: "Jakarta",
	}, "7")
	require.NoError(t, err)

	assert.Equal(t, "7", payload["basicInfoId"])
	assert.Equal(t, "Full-time", payload["employmentType"])
	assert.Equal(t, "Jakarta", payload["officeLocation"])
}

func TestTimeoutClassifiedAsRequestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := New(server.URL, 20*time.Millisecond)
	_, err := c.Departments(context.Background())
	require.Error(t, err)
	assert.Equal(t, "REQUEST_TIMEOUT", apperrors.CodeOf(err))
}

func TestServerErrorClassifiedAsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	_, err := c.Departments(context.Background())
	require.Error(t, err)
	assert.Equal(t, "HTTP_ERROR", apperrors.CodeOf(err))

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "HTTP error: 500 Internal Server Error", domainErr.Message)
	assert.Equal(t, 500, domainErr.Details["upstream_status"])
}

func TestConnectionRefusedClassifiedAsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	c := New(server.URL, time.Second)
	_, err := c.Departments(context.Background())
	require.Error(t, err)
	assert.Equal(t, "NETWORK_ERROR", apperrors.CodeOf(err))
}
