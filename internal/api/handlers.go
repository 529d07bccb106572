package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/piechiang/taxengine/internal/domain"
)

// calculateResponse is the envelope returned by POST /api/calculate.
type calculateResponse struct {
	Federal *domain.FederalResult `json:"federal"`
	State   *domain.StateResult   `json:"state,omitempty"`
}

// Health responds to liveness probes.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Calculate runs the federal pipeline (and a state engine when the input
// carries a state record) over one taxpayer record. Malformed records
// still produce 200 with a zeroed result and error diagnostics, so
// batch-style callers distinguish bad records from transport failures.
func (s *Server) Calculate(w http.ResponseWriter, r *http.Request) {
	var input domain.TaxpayerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	federalRules, err := s.Registry.Federal(input.Year)
	if err != nil {
		// A missing rule year is a caller error, surfaced through the
		// result object like every other blocking problem.
		federalRules = nil
	}
	fed := s.Engine.ComputeFederal(&input, federalRules)

	resp := calculateResponse{Federal: fed}
	if input.State != nil && !fed.Diagnostics.HasErrors() {
		stateRules, err := s.Registry.State(input.Year, input.State.State)
		if err != nil {
			stateRules = nil
		}
		resp.State = s.Engine.ComputeState(fed, &input, stateRules)
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListRules returns the registered federal years and their state codes.
func (s *Server) ListRules(w http.ResponseWriter, r *http.Request) {
	type yearInfo struct {
		Year   int      `json:"year"`
		States []string `json:"states"`
	}
	var out []yearInfo
	for _, y := range s.Registry.Years() {
		out = append(out, yearInfo{Year: y, States: s.Registry.StateCodes(y)})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetRuleYear returns the full federal rule bundle for one year.
func (s *Server) GetRuleYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "year must be an integer"})
		return
	}
	rs, err := s.Registry.Federal(year)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
