// Package nfe extracts structured fields from NF-e XML invoices
// (namespace http://www.portalfiscal.inf.br/nfe).
package nfe

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"fiscoex/internal/domain"
)

// Field labels, kept identical to the on-screen labels of the review UI so
// the sensitive-field tables apply to both.
const (
	LabelNumeroNF          = "Número NF"
	LabelSerie             = "Série"
	LabelDataEmissao       = "Data Emissão"
	LabelDataSaidaEntrada  = "Data Saída/Entrada"
	LabelNaturezaOperacao  = "Natureza Operação"
	LabelTipoNF            = "Tipo NF"
	LabelModelo            = "Modelo"
	LabelUF                = "UF"
	LabelFinalidade        = "Finalidade"
	LabelEmitenteCNPJ      = "Emitente CNPJ"
	LabelEmitenteNome      = "Emitente Nome"
	LabelEmitenteFantasia  = "Emitente Fantasia"
	LabelEmitenteIE        = "Emitente IE"
	LabelEmitenteUF        = "Emitente UF"
	LabelEmitenteMunicipio = "Emitente Município"
	LabelEmitenteCEP       = "Emitente CEP"
	LabelDestCNPJ          = "Destinatário CNPJ"
	LabelDestCPF           = "Destinatário CPF"
	LabelDestNome          = "Destinatário Nome"
	LabelDestIE            = "Destinatário IE"
	LabelDestUF            = "Destinatário UF"
	LabelDestMunicipio     = "Destinatário Município"
	LabelDestCEP           = "Destinatário CEP"
)

// Parse extracts one header record plus one record per line item from an
// NF-e XML document. A document without an infNFe element or without its
// ide (invoice identification) block fails with domain.ErrMalformedDocument.
// Missing optional blocks yield absent fields, not errors.
func Parse(r io.Reader) ([]domain.ExtractedRecord, error) {
	inf, err := findInfNFe(r)
	if err != nil {
		return nil, err
	}
	if inf.Ide == nil {
		return nil, fmt.Errorf("%w: infNFe has no ide block", domain.ErrMalformedDocument)
	}

	records := []domain.ExtractedRecord{headerRecord(inf)}
	for i := range inf.Det {
		records = append(records, itemRecord(&inf.Det[i]))
	}
	return records, nil
}

// findInfNFe walks the token stream until the infNFe element, so both bare
// NFe documents and nfeProc envelopes are accepted.
func findInfNFe(r io.Reader) (*infNFe, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: no infNFe element", domain.ErrMalformedDocument)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "infNFe" {
			continue
		}
		var inf infNFe
		if err := dec.DecodeElement(&inf, &se); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
		}
		return &inf, nil
	}
}

func headerRecord(inf *infNFe) domain.ExtractedRecord {
	var fields []domain.Field
	add := func(name, value string) {
		fields = append(fields, domain.Field{Name: name, Value: value})
	}
	addAmount := func(name, value string) {
		add(name, NormalizeDecimal(value))
	}

	ide := inf.Ide
	add(LabelNumeroNF, ide.NNF)
	add(LabelSerie, ide.Serie)
	add(LabelDataEmissao, ide.DhEmi)
	add(LabelDataSaidaEntrada, ide.DhSaiEnt)
	add(LabelNaturezaOperacao, ide.NatOp)
	add(LabelTipoNF, ide.TpNF)
	add(LabelModelo, ide.Mod)
	add(LabelUF, ide.CUF)
	add(LabelFinalidade, ide.FinNFe)

	if emit := inf.Emit; emit != nil {
		add(LabelEmitenteCNPJ, emit.CNPJ)
		add(LabelEmitenteNome, emit.XNome)
		add(LabelEmitenteFantasia, emit.XFant)
		add(LabelEmitenteIE, emit.IE)
		if emit.Ender != nil {
			add(LabelEmitenteUF, emit.Ender.UF)
			add(LabelEmitenteMunicipio, emit.Ender.XMun)
			add(LabelEmitenteCEP, emit.Ender.CEP)
		}
	}

	if dest := inf.Dest; dest != nil {
		// CNPJ and CPF are a schema choice; the absent one stays empty so
		// every dest field is always present in the record.
		add(LabelDestCNPJ, dest.CNPJ)
		add(LabelDestCPF, dest.CPF)
		add(LabelDestNome, dest.XNome)
		add(LabelDestIE, dest.IE)
		if dest.Ender != nil {
			add(LabelDestUF, dest.Ender.UF)
			add(LabelDestMunicipio, dest.Ender.XMun)
			add(LabelDestCEP, dest.Ender.CEP)
		}
	}

	if transp := inf.Transp; transp != nil {
		add("Modalidade Frete", transp.ModFrete)
		if t := transp.Transporta; t != nil {
			add("Transportadora Nome", t.XNome)
			add("Transportadora CNPJ", t.CNPJ)
			add("Transportadora UF", t.UF)
		}
		if v := transp.Vol; v != nil {
			addAmount("Qtde Volumes", v.QVol)
			addAmount("Peso Líquido", v.PesoL)
			addAmount("Peso Bruto", v.PesoB)
		}
	}

	if cobr := inf.Cobr; cobr != nil {
		if f := cobr.Fat; f != nil {
			add("Número Fatura", f.NFat)
			addAmount("Valor Original", f.VOrig)
			addAmount("Valor Líquido", f.VLiq)
		}
		if d := cobr.Dup; d != nil {
			add("Número Duplicata", d.NDup)
			add("Data Vencimento", d.DVenc)
			addAmount("Valor Duplicata", d.VDup)
		}
	}

	if inf.Total != nil && inf.Total.ICMSTot != nil {
		tot := inf.Total.ICMSTot
		addAmount("Base ICMS", tot.VBC)
		addAmount("Valor ICMS", tot.VICMS)
		addAmount("Valor Produtos", tot.VProd)
		addAmount("Valor NF", tot.VNF)
		addAmount("Valor Frete", tot.VFrete)
		addAmount("Valor IPI", tot.VIPI)
		addAmount("Valor COFINS", tot.VCOFINS)
		addAmount("Valor PIS", tot.VPIS)
	}

	return domain.ExtractedRecord{
		Kind:   domain.SourceNFe,
		Role:   domain.RoleHeader,
		Fields: fields,
	}
}

func itemRecord(det *detBlock) domain.ExtractedRecord {
	var fields []domain.Field
	add := func(name, value string) {
		fields = append(fields, domain.Field{Name: name, Value: value})
	}

	add("Item", det.NItem)
	if p := det.Prod; p != nil {
		add("Código", p.CProd)
		add("Descrição", p.XProd)
		add("NCM", p.NCM)
		add("CFOP", p.CFOP)
		add("Unidade", p.UCom)
		add("Quantidade", NormalizeDecimal(p.QCom))
		add("Valor Unitário", NormalizeDecimal(p.VUnCom))
		add("Valor Total", NormalizeDecimal(p.VProd))
	}
	if det.Imposto != nil {
		add("ICMS", NormalizeDecimal(firstElementText(det.Imposto.InnerXML, "vICMS")))
		add("IPI", NormalizeDecimal(firstElementText(det.Imposto.InnerXML, "vIPI")))
		add("PIS", NormalizeDecimal(firstElementText(det.Imposto.InnerXML, "vPIS")))
		add("COFINS", NormalizeDecimal(firstElementText(det.Imposto.InnerXML, "vCOFINS")))
	}

	return domain.ExtractedRecord{
		Kind:   domain.SourceNFe,
		Role:   domain.RoleItem,
		Fields: fields,
	}
}

// firstElementText returns the character data of the first element with the
// given local name anywhere in the fragment. The imposto group nests its
// amounts under variant elements (ICMS00, ICMS10, PISAliq, ...), so a
// depth-agnostic search matches the extraction semantics.
func firstElementText(fragment []byte, local string) string {
	dec := xml.NewDecoder(bytes.NewReader(fragment))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != local {
			continue
		}
		var text string
		if err := dec.DecodeElement(&text, &se); err != nil {
			return ""
		}
		return text
	}
}
