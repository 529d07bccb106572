package output

import (
	"encoding/csv"
	"io"

	"github.com/shopspring/decimal"

	"github.com/piechiang/taxengine/internal/domain"
)

var hundredPct = decimal.NewFromInt(100)

// writeCSV exports the itemized calculation trail, one row per step,
// federal first and then state when present.
func (rg *ReportGenerator) writeCSV(w io.Writer, fed *domain.FederalResult, state *domain.StateResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Scope", "Description", "Amount", "Source", "Formula"}); err != nil {
		return err
	}
	for _, s := range fed.Steps {
		if err := cw.Write([]string{"federal", s.Description, s.Amount.Dollars().StringFixed(2), s.Source, s.Formula}); err != nil {
			return err
		}
	}
	if state != nil {
		for _, s := range state.Steps {
			if err := cw.Write([]string{"state:" + state.State, s.Description, s.Amount.Dollars().StringFixed(2), s.Source, s.Formula}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
