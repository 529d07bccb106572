// Package rules holds the versioned constant bundles the engine consumes
// and a registry for looking them up by (year, id). Bundles are immutable
// once registered so a shared registry is safe for parallel calculations.
package rules

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/piechiang/taxengine/internal/domain"
)

// FederalRuleID is the id under which federal bundles are registered.
const FederalRuleID = "us-federal"

type key struct {
	year int
	id   string
}

// Registry maps (year, ruleId) to published rule bundles. Registration
// happens at startup; lookups afterward are read-only.
type Registry struct {
	mu      sync.RWMutex
	federal map[key]*domain.RuleSet
	states  map[key]*domain.StateRuleSet
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		federal: make(map[key]*domain.RuleSet),
		states:  make(map[key]*domain.StateRuleSet),
	}
}

// NewDefaultRegistry returns a registry preloaded with the built-in 2025
// federal and state bundles.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterFederal(Federal2025())
	for _, s := range States2025() {
		r.RegisterState(s)
	}
	return r
}

// RegisterFederal adds a federal bundle, normalizing its schedules.
func (r *Registry) RegisterFederal(rs *domain.RuleSet) {
	normalizeSchedules(&rs.Brackets)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.federal[key{rs.Year, rs.ID}] = rs
}

// RegisterState adds a state bundle, normalizing its schedules.
func (r *Registry) RegisterState(rs *domain.StateRuleSet) {
	normalizeSchedules(&rs.Brackets)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[key{rs.Year, rs.Code}] = rs
}

func normalizeSchedules(fs *domain.FilingSchedules) {
	fs.Single = domain.NormalizeSchedule(fs.Single)
	fs.MarriedFilingJointly = domain.NormalizeSchedule(fs.MarriedFilingJointly)
	fs.MarriedFilingSeparately = domain.NormalizeSchedule(fs.MarriedFilingSeparately)
	fs.HeadOfHousehold = domain.NormalizeSchedule(fs.HeadOfHousehold)
}

// Federal looks up a federal bundle by year.
func (r *Registry) Federal(year int) (*domain.RuleSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rs, ok := r.federal[key{year, FederalRuleID}]
	if !ok {
		return nil, fmt.Errorf("no federal rule set registered for year %d", year)
	}
	return rs, nil
}

// State looks up a state bundle by year and state code.
func (r *Registry) State(year int, code string) (*domain.StateRuleSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rs, ok := r.states[key{year, code}]
	if !ok {
		return nil, fmt.Errorf("no rule set registered for state %q year %d", code, year)
	}
	return rs, nil
}

// Years returns the registered federal years, ascending.
func (r *Registry) Years() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var years []int
	for k := range r.federal {
		years = append(years, k.year)
	}
	sort.Ints(years)
	return years
}

// StateCodes returns the state codes registered for a year, sorted.
func (r *Registry) StateCodes(year int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var codes []string
	for k := range r.states {
		if k.year == year {
			codes = append(codes, k.id)
		}
	}
	sort.Strings(codes)
	return codes
}

// LoadFederalFile reads a federal rule bundle from a YAML file and
// registers it. Monetary amounts in rule files are integer cents.
func (r *Registry) LoadFederalFile(filename string) (*domain.RuleSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", filename, err)
	}
	var rs domain.RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", filename, err)
	}
	if rs.Year == 0 {
		return nil, fmt.Errorf("rule file %s: year is required", filename)
	}
	if rs.ID == "" {
		rs.ID = FederalRuleID
	}
	normalizeSchedules(&rs.Brackets)
	if err := validateFederal(&rs); err != nil {
		return nil, fmt.Errorf("rule file %s: %w", filename, err)
	}
	r.RegisterFederal(&rs)
	return &rs, nil
}

// LoadStateFile reads a state rule bundle from a YAML file and registers it.
func (r *Registry) LoadStateFile(filename string) (*domain.StateRuleSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", filename, err)
	}
	var rs domain.StateRuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", filename, err)
	}
	if rs.Year == 0 || rs.Code == "" {
		return nil, fmt.Errorf("rule file %s: year and code are required", filename)
	}
	normalizeSchedules(&rs.Brackets)
	if err := validateState(&rs); err != nil {
		return nil, fmt.Errorf("rule file %s: %w", filename, err)
	}
	r.RegisterState(&rs)
	return &rs, nil
}

// validateFederal checks each schedule after normalization. A bundle that
// fails here must never be registered.
func validateFederal(rs *domain.RuleSet) error {
	for status, sched := range scheduleMap(rs.Brackets) {
		if err := domain.ValidateSchedule(sched); err != nil {
			return fmt.Errorf("schedule %s: %w", status, err)
		}
	}
	return nil
}

// validateState checks whatever schedules a state bundle carries. Flat-rate
// and no-income-tax states legitimately carry none.
func validateState(rs *domain.StateRuleSet) error {
	for status, sched := range scheduleMap(rs.Brackets) {
		if len(sched) == 0 {
			continue
		}
		if err := domain.ValidateSchedule(sched); err != nil {
			return fmt.Errorf("schedule %s: %w", status, err)
		}
	}
	return nil
}

func scheduleMap(fs domain.FilingSchedules) map[string][]domain.TaxBracket {
	return map[string][]domain.TaxBracket{
		"single":                    fs.Single,
		"married_filing_jointly":    fs.MarriedFilingJointly,
		"married_filing_separately": fs.MarriedFilingSeparately,
		"head_of_household":         fs.HeadOfHousehold,
	}
}
