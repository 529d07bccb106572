package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piechiang/taxengine/internal/calculation"
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/internal/rules"
	"github.com/piechiang/taxengine/pkg/money"
)

func testRouter() http.Handler {
	return NewRouter(NewServer(calculation.NewEngine(), rules.NewDefaultRegistry()))
}

func postCalculate(t *testing.T, router http.Handler, body string) (*httptest.ResponseRecorder, calculateResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp calculateResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCalculateEndpoint(t *testing.T) {
	body := `{
		"year": 2025,
		"filing_status": "single",
		"primary": {"birth_date": "1985-06-15T00:00:00Z"},
		"income": {"wages": 5000000},
		"payments": {"federal_withholding": 400000}
	}`
	rec, resp := postCalculate(t, testRouter(), body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Federal)
	assert.False(t, resp.Federal.Diagnostics.HasErrors())
	assert.Equal(t, money.FromDollars(50000), resp.Federal.TotalIncome)
	assert.Greater(t, resp.Federal.TotalTax, money.Cents(0))
	assert.Nil(t, resp.State)
}

func TestCalculateEndpointWithState(t *testing.T) {
	body := `{
		"year": 2025,
		"filing_status": "single",
		"primary": {"birth_date": "1985-06-15T00:00:00Z"},
		"income": {"wages": 9000000},
		"state_input": {"state": "CA"}
	}`
	rec, resp := postCalculate(t, testRouter(), body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.State)
	assert.Equal(t, "CA", resp.State.State)
	assert.Greater(t, resp.State.StateTax, money.Cents(0))
}

// A record that fails validation still returns 200; the problems travel
// inside the zeroed result.
func TestCalculateEndpointInvalidRecord(t *testing.T) {
	body := `{
		"year": 2025,
		"filing_status": "single",
		"primary": {"birth_date": "1985-06-15T00:00:00Z"},
		"income": {"wages": -100}
	}`
	rec, resp := postCalculate(t, testRouter(), body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Federal)
	assert.True(t, resp.Federal.Diagnostics.HasErrors())
	assert.Equal(t, money.Cents(0), resp.Federal.TotalTax)
}

func TestCalculateEndpointUnknownYear(t *testing.T) {
	body := `{
		"year": 1999,
		"filing_status": "single",
		"primary": {"birth_date": "1960-06-15T00:00:00Z"}
	}`
	rec, resp := postCalculate(t, testRouter(), body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Federal)
	assert.True(t, resp.Federal.Diagnostics.HasErrors())

	codes := make([]domain.DiagCode, 0, len(resp.Federal.Diagnostics))
	for _, d := range resp.Federal.Diagnostics {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, domain.CodeInvalidRuleSet)
}

func TestCalculateEndpointMalformedJSON(t *testing.T) {
	rec, _ := postCalculate(t, testRouter(), "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRulesEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rules", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []struct {
		Year   int      `json:"year"`
		States []string `json:"states"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, 2025, out[0].Year)
	assert.Contains(t, out[0].States, "CA")
}

func TestGetRuleYearEndpoint(t *testing.T) {
	router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rules/2025", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var rs domain.RuleSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rs))
	assert.Equal(t, 2025, rs.Year)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rules/1900", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/rules/%s", "later"), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
