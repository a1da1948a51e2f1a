package llm

import (
	"fmt"
	"strings"

	"fiscoex/internal/classify"
	"fiscoex/internal/domain"
	"fiscoex/internal/mask"
)

// SerializeDocument renders a document as the plain-text form sent to the
// compliance providers. Document-id values are masked before leaving the
// service: the analysis needs amounts and operation fields, never raw
// identifiers.
func SerializeDocument(doc *domain.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Arquivo: %s (%s)\n", doc.Name, doc.Kind)

	for i := range doc.Records {
		rec := &doc.Records[i]
		switch rec.Role {
		case domain.RoleHeader:
			b.WriteString("\n## Cabeçalho\n")
		case domain.RoleItem:
			b.WriteString("\n## Item\n")
		default:
			fmt.Fprintf(&b, "\n## Registro %s\n", rec.RecordType)
		}
		for _, f := range rec.Fields {
			value := f.Value
			if classify.Classify(f.Name, value) == domain.CategoryDocumentID {
				value = mask.Value(value)
			}
			fmt.Fprintf(&b, "%s: %s\n", f.Name, value)
		}
	}
	return b.String()
}
