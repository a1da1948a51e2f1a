package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fiscoex/internal/cipher"
	"fiscoex/internal/domain"
)

// Workbook sheet names for NF-e exports, matching the download the review
// UI produces.
const (
	sheetCabecalho = "Cabecalho"
	sheetProdutos  = "Produtos"
	sheetRegistros = "Registros"
)

// BuildWorkbook renders a document as an XLSX workbook: a Cabecalho and a
// Produtos sheet for NF-e, a single Registros sheet for SPED.
func BuildWorkbook(doc *domain.Document, mode domain.ExportMode, proc *cipher.Processor) (*excelize.File, error) {
	f := excelize.NewFile()

	switch doc.Kind {
	case domain.SourceNFe:
		header, err := HeaderTable(doc, mode, proc)
		if err != nil {
			return nil, err
		}
		items, err := ItemTable(doc, mode, proc)
		if err != nil {
			return nil, err
		}
		if err := writeSheet(f, sheetCabecalho, header); err != nil {
			return nil, err
		}
		if err := writeSheet(f, sheetProdutos, items); err != nil {
			return nil, err
		}
	case domain.SourceSPED:
		t, err := BuildTable(doc, mode, proc)
		if err != nil {
			return nil, err
		}
		if err := writeSheet(f, sheetRegistros, t); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown document kind %q", doc.Kind)
	}

	// Drop excelize's default sheet so the workbook opens on real data.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, t *Table) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	for i, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}
	for r, row := range t.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
