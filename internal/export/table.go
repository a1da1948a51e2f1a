// Package export renders extracted documents as tabular artifacts (CSV or
// XLSX) in raw, masked or encrypted mode.
package export

import (
	"fmt"

	"fiscoex/internal/cipher"
	"fiscoex/internal/classify"
	"fiscoex/internal/domain"
	"fiscoex/internal/mask"
)

// Table is an ordered projection of a document onto a fixed column set. It
// exists only for the duration of one export invocation.
type Table struct {
	Columns []string
	Rows    [][]string
}

// nfeHeaderColumns fixes the export column order for the NF-e header
// record: issuer, recipient, invoice header, transport, billing, totals.
var nfeHeaderColumns = []string{
	"Emitente CNPJ", "Emitente Nome", "Emitente Fantasia", "Emitente IE",
	"Emitente UF", "Emitente Município", "Emitente CEP",
	"Destinatário CNPJ", "Destinatário CPF", "Destinatário Nome",
	"Destinatário IE", "Destinatário UF", "Destinatário Município",
	"Destinatário CEP",
	"Número NF", "Série", "Data Emissão", "Data Saída/Entrada",
	"Natureza Operação", "Tipo NF", "Modelo", "UF", "Finalidade",
	"Modalidade Frete", "Transportadora Nome", "Transportadora CNPJ",
	"Transportadora UF", "Qtde Volumes", "Peso Líquido", "Peso Bruto",
	"Número Fatura", "Valor Original", "Valor Líquido", "Número Duplicata",
	"Data Vencimento", "Valor Duplicata",
	"Base ICMS", "Valor ICMS", "Valor Produtos", "Valor NF", "Valor Frete",
	"Valor IPI", "Valor COFINS", "Valor PIS",
}

// nfeItemColumns fixes the export column order for line items.
var nfeItemColumns = []string{
	"Item", "Código", "Descrição", "NCM", "CFOP", "Unidade", "Quantidade",
	"Valor Unitário", "Valor Total", "ICMS", "IPI", "PIS", "COFINS",
}

// BuildTable projects a whole document onto a single flat table: for NF-e,
// a record-role column followed by header columns and item columns (header
// row first, then one row per item, preserving document order); for SPED,
// block and record-type columns followed by positional fields in line order.
func BuildTable(doc *domain.Document, mode domain.ExportMode, proc *cipher.Processor) (*Table, error) {
	switch doc.Kind {
	case domain.SourceNFe:
		return buildNFeFlatTable(doc, mode, proc)
	case domain.SourceSPED:
		return buildSPEDTable(doc, mode, proc)
	default:
		return nil, fmt.Errorf("unknown document kind %q", doc.Kind)
	}
}

// HeaderTable projects only the NF-e header record (the Cabecalho sheet).
func HeaderTable(doc *domain.Document, mode domain.ExportMode, proc *cipher.Processor) (*Table, error) {
	cols := expandColumns(nfeHeaderColumns, mode)
	t := &Table{Columns: cols}
	for i := range doc.Records {
		if doc.Records[i].Role != domain.RoleHeader {
			continue
		}
		row, err := recordRow(&doc.Records[i], nfeHeaderColumns, mode, proc)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ItemTable projects the NF-e item records in declaration order (the
// Produtos sheet).
func ItemTable(doc *domain.Document, mode domain.ExportMode, proc *cipher.Processor) (*Table, error) {
	cols := expandColumns(nfeItemColumns, mode)
	t := &Table{Columns: cols}
	for i := range doc.Records {
		if doc.Records[i].Role != domain.RoleItem {
			continue
		}
		row, err := recordRow(&doc.Records[i], nfeItemColumns, mode, proc)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func buildNFeFlatTable(doc *domain.Document, mode domain.ExportMode, proc *cipher.Processor) (*Table, error) {
	headerCols := expandColumns(nfeHeaderColumns, mode)
	itemCols := expandColumns(nfeItemColumns, mode)

	cols := make([]string, 0, 1+len(headerCols)+len(itemCols))
	cols = append(cols, "Registro")
	cols = append(cols, headerCols...)
	cols = append(cols, itemCols...)
	t := &Table{Columns: cols}

	for i := range doc.Records {
		rec := &doc.Records[i]
		row := make([]string, 0, len(cols))
		switch rec.Role {
		case domain.RoleHeader:
			values, err := recordRow(rec, nfeHeaderColumns, mode, proc)
			if err != nil {
				return nil, err
			}
			row = append(row, string(domain.RoleHeader))
			row = append(row, values...)
			row = append(row, make([]string, len(itemCols))...)
		case domain.RoleItem:
			values, err := recordRow(rec, nfeItemColumns, mode, proc)
			if err != nil {
				return nil, err
			}
			row = append(row, string(domain.RoleItem))
			row = append(row, make([]string, len(headerCols))...)
			row = append(row, values...)
		default:
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// buildSPEDTable renders one row per record: block, record type, then the
// positional fields after REG. Values transform by their layout field name.
func buildSPEDTable(doc *domain.Document, mode domain.ExportMode, proc *cipher.Processor) (*Table, error) {
	width := 0
	for i := range doc.Records {
		if n := len(doc.Records[i].Fields) - 1; n > width {
			width = n
		}
	}

	cols := []string{"BLOCO", "REG"}
	for i := 1; i <= width; i++ {
		cols = append(cols, fmt.Sprintf("CAMPO_%02d", i))
	}
	t := &Table{Columns: cols}

	for i := range doc.Records {
		rec := &doc.Records[i]
		row := make([]string, len(cols))
		row[0] = rec.Block
		row[1] = rec.RecordType
		for j, f := range rec.Fields[1:] {
			v, err := transformValue(f.Name, f.Value, mode, proc)
			if err != nil {
				return nil, err
			}
			row[2+j] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// expandColumns appends a _hash column after each document-id column in
// encrypted mode, so encrypted exports stay searchable by digest.
func expandColumns(base []string, mode domain.ExportMode) []string {
	if mode != domain.ModeEncrypted {
		return base
	}
	out := make([]string, 0, len(base))
	for _, c := range base {
		out = append(out, c)
		if classify.Classify(c, "") == domain.CategoryDocumentID {
			out = append(out, c+"_hash")
		}
	}
	return out
}

// recordRow renders one record against an expanded column layout.
func recordRow(rec *domain.ExtractedRecord, base []string, mode domain.ExportMode, proc *cipher.Processor) ([]string, error) {
	var row []string
	for _, col := range base {
		value, _ := rec.Get(col)
		out, err := transformValue(col, value, mode, proc)
		if err != nil {
			return nil, err
		}
		row = append(row, out)
		if mode == domain.ModeEncrypted && classify.Classify(col, "") == domain.CategoryDocumentID {
			hash := ""
			if value != "" {
				hash = cipher.HashIndex(value)
			}
			row = append(row, hash)
		}
	}
	return row, nil
}

// transformValue applies the export mode to one field value. Monetary fields
// stay in clear text in every mode so the figures remain analyzable.
func transformValue(name, value string, mode domain.ExportMode, proc *cipher.Processor) (string, error) {
	if value == "" {
		return "", nil
	}
	if classify.Classify(name, value) != domain.CategoryDocumentID {
		return value, nil
	}
	switch mode {
	case domain.ModeMasked:
		return mask.Value(value), nil
	case domain.ModeEncrypted:
		if proc == nil {
			return "", fmt.Errorf("%w: no session cipher", domain.ErrCipherFailure)
		}
		return proc.EncryptValue(value)
	default:
		return value, nil
	}
}
