package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiscoex/internal/cipher"
	"fiscoex/internal/domain"
	"fiscoex/internal/export"
	"fiscoex/internal/mask"
)

func sampleNFeDocument() *domain.Document {
	return &domain.Document{
		Name: "nfe_123.xml",
		Kind: domain.SourceNFe,
		Records: []domain.ExtractedRecord{
			{
				Kind: domain.SourceNFe,
				Role: domain.RoleHeader,
				Fields: []domain.Field{
					{Name: "Número NF", Value: "123"},
					{Name: "Série", Value: "1"},
					{Name: "Emitente CNPJ", Value: "12345678000195"},
					{Name: "Emitente Nome", Value: "EMPRESA ABC LTDA"},
					{Name: "Destinatário CPF", Value: "12345678909"},
					{Name: "Valor NF", Value: "2480.00"},
				},
			},
			{
				Kind: domain.SourceNFe,
				Role: domain.RoleItem,
				Fields: []domain.Field{
					{Name: "Item", Value: "1"},
					{Name: "Código", Value: "P001"},
					{Name: "Descrição", Value: "Notebook"},
					{Name: "Quantidade", Value: "2.0000"},
					{Name: "Valor Total", Value: "2400.00"},
				},
			},
		},
	}
}

func newProcessor(t *testing.T) *cipher.Processor {
	t.Helper()
	salt, err := cipher.NewSalt()
	require.NoError(t, err)
	p, err := cipher.NewProcessor(cipher.DeriveKey("secret", salt, 100000, 32))
	require.NoError(t, err)
	return p
}

func cellByColumn(t *testing.T, table *export.Table, row []string, col string) string {
	t.Helper()
	for i, c := range table.Columns {
		if c == col {
			return row[i]
		}
	}
	t.Fatalf("column %q not in table", col)
	return ""
}

func TestBuildTable_RawPreservesOrderAndValues(t *testing.T) {
	doc := sampleNFeDocument()
	table, err := export.BuildTable(doc, domain.ModeRaw, nil)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Registro", table.Columns[0])
	assert.Equal(t, "cabecalho", table.Rows[0][0])
	assert.Equal(t, "item", table.Rows[1][0])

	assert.Equal(t, "12345678000195", cellByColumn(t, table, table.Rows[0], "Emitente CNPJ"))
	assert.Equal(t, "2480.00", cellByColumn(t, table, table.Rows[0], "Valor NF"))
	assert.Equal(t, "P001", cellByColumn(t, table, table.Rows[1], "Código"))
}

func TestBuildTable_MaskedMasksDocumentIDsOnly(t *testing.T) {
	doc := sampleNFeDocument()
	table, err := export.BuildTable(doc, domain.ModeMasked, nil)
	require.NoError(t, err)

	cnpj := cellByColumn(t, table, table.Rows[0], "Emitente CNPJ")
	assert.Equal(t, "12"+mask.Placeholder+"95", cnpj)

	// Monetary values stay in clear text for fiscal analysis.
	assert.Equal(t, "2480.00", cellByColumn(t, table, table.Rows[0], "Valor NF"))
	assert.Equal(t, "Notebook", cellByColumn(t, table, table.Rows[1], "Descrição"))
}

func TestBuildTable_EncryptedAddsHashColumns(t *testing.T) {
	doc := sampleNFeDocument()
	proc := newProcessor(t)
	table, err := export.BuildTable(doc, domain.ModeEncrypted, proc)
	require.NoError(t, err)

	enc := cellByColumn(t, table, table.Rows[0], "Emitente CNPJ")
	assert.True(t, strings.HasPrefix(enc, cipher.Prefix))

	hash := cellByColumn(t, table, table.Rows[0], "Emitente CNPJ_hash")
	assert.Equal(t, cipher.HashIndex("12345678000195"), hash)

	// Absent fields keep empty hash cells.
	assert.Equal(t, "", cellByColumn(t, table, table.Rows[0], "Destinatário CNPJ_hash"))
}

func TestBuildTable_EncryptedWithoutCipherFails(t *testing.T) {
	_, err := export.BuildTable(sampleNFeDocument(), domain.ModeEncrypted, nil)
	assert.ErrorIs(t, err, domain.ErrCipherFailure)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	doc := sampleNFeDocument()
	table, err := export.BuildTable(doc, domain.ModeRaw, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, table))

	body := buf.Bytes()
	require.True(t, len(body) > 3)
	assert.Equal(t, export.BOM, body[:3])

	r := csv.NewReader(bytes.NewReader(body[3:]))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, table.Columns, rows[0])

	// Re-parsing the export yields the same field values as the records.
	reparsed := rows[1]
	for _, f := range doc.Records[0].Fields {
		assert.Equal(t, f.Value, cellByColumn(t, table, reparsed, f.Name), "field %s", f.Name)
	}
}

func TestBuildTable_SPED(t *testing.T) {
	doc := &domain.Document{
		Kind: domain.SourceSPED,
		Records: []domain.ExtractedRecord{
			{
				Kind:       domain.SourceSPED,
				Role:       domain.RoleSPED,
				Block:      "E",
				RecordType: "E100",
				Fields: []domain.Field{
					{Name: "REG", Value: "E100"},
					{Name: "DT_INI", Value: "01012025"},
					{Name: "DT_FIN", Value: "31012025"},
				},
			},
		},
	}

	table, err := export.BuildTable(doc, domain.ModeRaw, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"BLOCO", "REG", "CAMPO_01", "CAMPO_02"}, table.Columns)
	assert.Equal(t, []string{"E", "E100", "01012025", "31012025"}, table.Rows[0])
}

func TestBuildWorkbook_NFeSheets(t *testing.T) {
	doc := sampleNFeDocument()
	f, err := export.BuildWorkbook(doc, domain.ModeRaw, nil)
	require.NoError(t, err)

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Cabecalho")
	assert.Contains(t, sheets, "Produtos")
	assert.NotContains(t, sheets, "Sheet1")

	num, err := f.GetCellValue("Cabecalho", "O2")
	require.NoError(t, err)
	assert.Equal(t, "123", num)

	var out bytes.Buffer
	require.NoError(t, f.Write(&out))
	assert.NotZero(t, out.Len())
}
