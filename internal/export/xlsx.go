// Package export renders portfolio snapshots as spreadsheet reports.
package export

import (
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/lendstat/internal/domain"
)

const (
	summarySheet     = "Summary"
	compositionSheet = "Composition"
)

// compositionCol describes one column of the Composition sheet.
type compositionCol struct {
	header string
	value  func(rank int, item domain.AssetSummary, share float64) any
}

var compositionColumns = []compositionCol{
	{header: "Rank", value: func(rank int, _ domain.AssetSummary, _ float64) any { return rank }},
	{header: "Asset", value: func(_ int, item domain.AssetSummary, _ float64) any { return item.Name }},
	{header: "Market Size", value: func(_ int, item domain.AssetSummary, _ float64) any { return item.MarketSizeValue }},
	// Token units of the asset, not reference currency.
	{header: "Borrowed (tokens)", value: func(_ int, item domain.AssetSummary, _ float64) any { return item.BorrowedValue }},
	{header: "Share", value: func(_ int, _ domain.AssetSummary, share float64) any { return share }},
}

// WriteXLSX writes snap as a two-sheet workbook: totals on "Summary" and the ranked
// per-asset breakdown on "Composition".
func WriteXLSX(w io.Writer, snap domain.PortfolioSnapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("renaming default sheet: %w", err)
	}
	if err := writeSummary(f, snap); err != nil {
		return err
	}

	if _, err := f.NewSheet(compositionSheet); err != nil {
		return fmt.Errorf("creating %s sheet: %w", compositionSheet, err)
	}
	if err := writeComposition(f, snap); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, snap domain.PortfolioSnapshot) error {
	rows := [][]any{
		{"Metric", "Value"},
		{"Current market size", snap.MarketSize},
		{"Total borrowed", snap.Borrowed},
		{"% Lent out", snap.LentOutPercent()},
		{"Assets", len(snap.Items)},
	}
	return setRows(f, summarySheet, rows)
}

func writeComposition(f *excelize.File, snap domain.PortfolioSnapshot) error {
	header := lo.Map(compositionColumns, func(c compositionCol, _ int) any { return c.header })
	shares := snap.Composition()

	rows := make([][]any, 0, len(snap.Items)+1)
	rows = append(rows, header)
	for i, item := range snap.Items {
		rows = append(rows, lo.Map(compositionColumns, func(c compositionCol, _ int) any {
			return c.value(i+1, item, shares[i])
		}))
	}
	return setRows(f, compositionSheet, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("resolving cell for %s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
