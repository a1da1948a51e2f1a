// Package classify tags extracted field values as sensitive for downstream
// masking and encryption. Classification is derived on demand and never
// stored on the record.
package classify

import (
	"regexp"
	"strings"

	"fiscoex/internal/domain"
)

// documentIDFields lists field names whose values identify a person, company
// or fiscal document. NF-e labels mirror the extraction labels; upper-case
// names are SPED layout fields.
var documentIDFields = map[string]bool{
	// NF-e
	"Emitente CNPJ":          true,
	"Destinatário CNPJ":      true,
	"Transportadora CNPJ":    true,
	"Destinatário CPF":       true,
	"Emitente IE":            true,
	"Destinatário IE":        true,
	"Emitente Nome":          true,
	"Emitente Fantasia":      true,
	"Destinatário Nome":      true,
	"Transportadora Nome":    true,
	"Número NF":              true,
	"Chave NFe":              true,
	"Protocolo":              true,
	"Emitente CEP":           true,
	"Destinatário CEP":       true,
	"Emitente Município":     true,
	"Destinatário Município": true,

	// SPED
	"CNPJ":    true,
	"CPF":     true,
	"IE":      true,
	"NOME":    true,
	"NUM_DOC": true,
	"CHV_NFE": true,
	"CEP":     true,
}

// monetaryPrefixes mark NF-e amount fields ("Valor NF", "Base ICMS").
var monetaryPrefixes = []string{"Valor ", "Base "}

// monetarySPEDPrefixes mark SPED amount fields (VL_DOC, VL_BC_ICMS, ...).
var monetarySPEDPrefixes = []string{"VL_", "ALIQ_"}

var (
	cpfPattern  = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)
	cnpjPattern = regexp.MustCompile(`^\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}$`)
)

// Classify returns the sensitivity category for a field. The name tables are
// checked first; unknown names fall back to a CPF/CNPJ shape check on the
// value.
func Classify(name, value string) domain.SensitiveCategory {
	if documentIDFields[name] {
		return domain.CategoryDocumentID
	}
	for _, p := range monetaryPrefixes {
		if strings.HasPrefix(name, p) {
			return domain.CategoryMonetary
		}
	}
	for _, p := range monetarySPEDPrefixes {
		if strings.HasPrefix(name, p) {
			return domain.CategoryMonetary
		}
	}
	if cpfPattern.MatchString(value) || cnpjPattern.MatchString(value) {
		return domain.CategoryDocumentID
	}
	return domain.CategoryNone
}
