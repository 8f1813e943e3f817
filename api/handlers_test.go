package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarsim/solarsim/sim"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testScenario() sim.Scenario {
	return sim.Scenario{
		StartYear: 2025,
		EndYear:   2027,
		Regions: []sim.RegionConfig{{
			ID:               "west",
			DemandGWh:        1000,
			GridHeadroomKW:   50000,
			DiscountRate:     0.08,
			CapitalBudgetUSD: 50e6,
			BasePriceUSDMWh:  150,
		}},
		Technologies: []sim.TechnologyConfig{{
			ID:              "topcon",
			BaseCostUSDkW:   1000,
			RefCapacityKW:   100000,
			LearningRate:    0.2,
			CapacityFactor:  0.2,
			LifetimeYears:   20,
			OpexFraction:    0.01,
			InitialGlobalKW: 100000,
		}},
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSimulate_HappyPath(t *testing.T) {
	router := NewRouter()
	w := postJSON(t, router, "/api/v1/simulate", testScenario())
	require.Equal(t, http.StatusOK, w.Code)

	var resp SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Records, 3)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 3, resp.Summary.Years)
	assert.Greater(t, resp.Summary.TotalNewKW, 0.0)
}

func TestSimulate_InvalidScenario(t *testing.T) {
	sc := testScenario()
	sc.Technologies[0].LearningRate = 2 // out of range
	router := NewRouter()
	w := postJSON(t, router, "/api/v1/simulate", sc)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_SCENARIO", resp.Error.Code)
}

func TestSimulate_MalformedBody(t *testing.T) {
	router := NewRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidate(t *testing.T) {
	router := NewRouter()

	w := postJSON(t, router, "/api/v1/validate", testScenario())
	require.Equal(t, http.StatusOK, w.Code)
	var ok ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
	assert.True(t, ok.Valid)

	sc := testScenario()
	sc.Regions = nil
	w = postJSON(t, router, "/api/v1/validate", sc)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthz(t *testing.T) {
	router := NewRouter()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
