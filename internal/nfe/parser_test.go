package nfe_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiscoex/internal/domain"
	"fiscoex/internal/nfe"
)

const sampleNFe = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe35250112345678000195550010000001231000001234" versao="4.00">
      <ide>
        <cUF>35</cUF>
        <natOp>VENDA DE MERCADORIA</natOp>
        <mod>55</mod>
        <serie>1</serie>
        <nNF>123</nNF>
        <dhEmi>2025-01-15T10:30:00-03:00</dhEmi>
        <tpNF>1</tpNF>
        <finNFe>1</finNFe>
      </ide>
      <emit>
        <CNPJ>12345678000195</CNPJ>
        <xNome>EMPRESA ABC LTDA</xNome>
        <xFant>ABC</xFant>
        <IE>123456789</IE>
        <enderEmit>
          <xMun>Sao Paulo</xMun>
          <UF>SP</UF>
          <CEP>01310000</CEP>
        </enderEmit>
      </emit>
      <dest>
        <CPF>12345678909</CPF>
        <xNome>CLIENTE FINAL</xNome>
        <IE></IE>
        <enderDest>
          <xMun>Campinas</xMun>
          <UF>SP</UF>
          <CEP>13010000</CEP>
        </enderDest>
      </dest>
      <det nItem="1">
        <prod>
          <cProd>P001</cProd>
          <xProd>Notebook</xProd>
          <NCM>84713012</NCM>
          <CFOP>5102</CFOP>
          <uCom>UN</uCom>
          <qCom>2,0000</qCom>
          <vUnCom>1200,00</vUnCom>
          <vProd>2400,00</vProd>
        </prod>
        <imposto>
          <ICMS><ICMS00><vBC>2400.00</vBC><vICMS>432.00</vICMS></ICMS00></ICMS>
          <PIS><PISAliq><vPIS>15.84</vPIS></PISAliq></PIS>
        </imposto>
      </det>
      <det nItem="2">
        <prod>
          <cProd>P002</cProd>
          <xProd>Mouse</xProd>
          <NCM>84716060</NCM>
          <CFOP>5102</CFOP>
          <uCom>UN</uCom>
          <qCom>1.0000</qCom>
          <vUnCom>80.00</vUnCom>
          <vProd>80.00</vProd>
        </prod>
      </det>
      <total>
        <ICMSTot>
          <vBC>2480.00</vBC>
          <vICMS>446.40</vICMS>
          <vProd>2480.00</vProd>
          <vNF>2480.00</vNF>
        </ICMSTot>
      </total>
    </infNFe>
  </NFe>
</nfeProc>`

func TestParse_FullDocument(t *testing.T) {
	records, err := nfe.Parse(strings.NewReader(sampleNFe))
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Equal(t, domain.SourceNFe, header.Kind)
	assert.Equal(t, domain.RoleHeader, header.Role)

	num, ok := header.Get(nfe.LabelNumeroNF)
	require.True(t, ok)
	assert.Equal(t, "123", num)

	cnpj, _ := header.Get(nfe.LabelEmitenteCNPJ)
	assert.Equal(t, "12345678000195", cnpj)

	cpf, ok := header.Get(nfe.LabelDestCPF)
	require.True(t, ok)
	assert.Equal(t, "12345678909", cpf)

	// No CNPJ element on dest -> field present but empty, same as every
	// other dest field.
	cnpj, ok = header.Get(nfe.LabelDestCNPJ)
	require.True(t, ok)
	assert.Equal(t, "", cnpj)
}

func TestParse_ItemsInDeclarationOrder(t *testing.T) {
	records, err := nfe.Parse(strings.NewReader(sampleNFe))
	require.NoError(t, err)

	first, second := records[1], records[2]
	assert.Equal(t, domain.RoleItem, first.Role)

	code, _ := first.Get("Código")
	assert.Equal(t, "P001", code)
	code, _ = second.Get("Código")
	assert.Equal(t, "P002", code)

	// Comma-decimal quantities canonicalize to dot form.
	qty, _ := first.Get("Quantidade")
	assert.Equal(t, "2.0000", qty)
	unit, _ := first.Get("Valor Unitário")
	assert.Equal(t, "1200.00", unit)
}

func TestParse_ItemTaxesFromNestedVariants(t *testing.T) {
	records, err := nfe.Parse(strings.NewReader(sampleNFe))
	require.NoError(t, err)

	icms, _ := records[1].Get("ICMS")
	assert.Equal(t, "432.00", icms)
	pis, _ := records[1].Get("PIS")
	assert.Equal(t, "15.84", pis)
	ipi, _ := records[1].Get("IPI")
	assert.Equal(t, "", ipi)
}

func TestParse_MissingTotalsIsNotFatal(t *testing.T) {
	doc := strings.Replace(sampleNFe, "<total>", "<ignorado>", 1)
	doc = strings.Replace(doc, "</total>", "</ignorado>", 1)

	records, err := nfe.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	_, ok := records[0].Get("Valor NF")
	assert.False(t, ok)
}

func TestParse_MissingIdeIsMalformed(t *testing.T) {
	doc := `<NFe xmlns="http://www.portalfiscal.inf.br/nfe"><infNFe><emit><CNPJ>1</CNPJ></emit></infNFe></NFe>`
	_, err := nfe.Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestParse_MissingInfNFeIsMalformed(t *testing.T) {
	doc := `<NFe xmlns="http://www.portalfiscal.inf.br/nfe"><outra/></NFe>`
	_, err := nfe.Parse(strings.NewReader(doc))
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestParse_InvalidXMLIsMalformed(t *testing.T) {
	_, err := nfe.Parse(strings.NewReader("<NFe><infNFe>"))
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestNormalizeDecimal(t *testing.T) {
	cases := map[string]string{
		"1234.56":   "1234.56",
		"1234,56":   "1234.56",
		"1.234,56":  "1234.56",
		"0":         "0",
		"":          "",
		"-12,5":     "-12.5",
		"N/A":       "N/A",
		" 100,00 ":  "100.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, nfe.NormalizeDecimal(in), "input %q", in)
	}
}
