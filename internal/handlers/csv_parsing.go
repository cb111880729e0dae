package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/shopspring/decimal"
)

// ParseHoldingsCSV parses a holdings CSV into a portfolio snapshot.
// Required columns: symbol, security_kind, market_value
// Optional columns: sector, weight, beta, volatility (missing columns default to empty)
// When no row carries a weight, weights are derived from market values. Weights must be
// given for every row or for none. Rows with an empty symbol are skipped.
func ParseHoldingsCSV(r io.Reader) (*models.PortfolioSnapshot, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"symbol", "security_kind", "market_value"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	optionalCol := func(record []string, col string) string {
		idx, ok := colIdx[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	optionalFloat := func(record []string, col string, rowNum int) (*float64, error) {
		s := optionalCol(record, col)
		if s == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("row %d: invalid %s %q", rowNum, col, s)
		}
		return &v, nil
	}

	snapshot := &models.PortfolioSnapshot{TotalValue: decimal.Zero}
	weighted := 0
	rowNum := 1 // header is row 1, data starts at row 2
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		symbol := strings.ToUpper(optionalCol(record, "symbol"))
		if symbol == "" {
			continue
		}

		kind := models.SecurityKind(strings.ToLower(optionalCol(record, "security_kind")))
		if !kind.Valid() {
			return nil, fmt.Errorf("row %d: invalid security_kind %q", rowNum, kind)
		}

		mvStr := optionalCol(record, "market_value")
		mv, err := decimal.NewFromString(mvStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid market_value %q", rowNum, mvStr)
		}
		if mv.IsNegative() {
			return nil, fmt.Errorf("row %d: market_value must be non-negative", rowNum)
		}

		h := models.Holding{
			Symbol:       symbol,
			SecurityKind: kind,
			Sector:       optionalCol(record, "sector"),
			MarketValue:  mv,
		}
		weight, err := optionalFloat(record, "weight", rowNum)
		if err != nil {
			return nil, err
		}
		if weight != nil {
			h.Weight = *weight
			weighted++
		}
		if h.Beta, err = optionalFloat(record, "beta", rowNum); err != nil {
			return nil, err
		}
		if h.AnnualizedVolatility, err = optionalFloat(record, "volatility", rowNum); err != nil {
			return nil, err
		}

		snapshot.Holdings = append(snapshot.Holdings, h)
		snapshot.TotalValue = snapshot.TotalValue.Add(mv)
	}

	if len(snapshot.Holdings) == 0 {
		return nil, fmt.Errorf("CSV contains no holdings")
	}
	switch weighted {
	case len(snapshot.Holdings):
	case 0:
		if !snapshot.TotalValue.IsPositive() {
			return nil, fmt.Errorf("cannot derive weights: total market value is zero")
		}
		for i := range snapshot.Holdings {
			h := &snapshot.Holdings[i]
			h.Weight = h.MarketValue.Div(snapshot.TotalValue).Mul(decimal.NewFromInt(100)).Round(4).InexactFloat64()
		}
	default:
		return nil, fmt.Errorf("weight given for %d of %d holdings; give it for all or none", weighted, len(snapshot.Holdings))
	}

	return snapshot, nil
}
