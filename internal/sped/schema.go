package sped

// recordSchemas maps a SPED record-type code to its fixed ordered field
// names, per the EFD layout. Only the record types the extractor surfaces
// are listed; unknown codes are skipped during parsing.
var recordSchemas = map[string][]string{
	// Block 0: opening and participant identification
	"0000": {
		"REG", "COD_VER", "COD_FIN", "DT_INI", "DT_FIN", "NOME", "CNPJ",
		"CPF", "UF", "IE", "COD_MUN", "IM", "SUFRAMA", "IND_PERFIL",
		"IND_ATIV",
	},
	"0100": {
		"REG", "NOME", "CPF", "CRC", "CNPJ", "CEP", "END", "NUM", "COMPL",
		"BAIRRO", "FONE", "FAX", "EMAIL", "COD_MUN",
	},
	"0150": {
		"REG", "COD_PART", "NOME", "COD_PAIS", "CNPJ", "CPF", "IE",
		"COD_MUN", "SUFRAMA", "END", "NUM", "COMPL", "BAIRRO",
	},
	"0200": {
		"REG", "COD_ITEM", "DESCR_ITEM", "COD_BARRA", "COD_ANT_ITEM",
		"UNID_INV", "TIPO_ITEM", "COD_NCM", "EX_IPI", "COD_GEN", "COD_LST",
		"ALIQ_ICMS",
	},

	// Block C: fiscal documents (NF-e models 01/55)
	"C100": {
		"REG", "IND_OPER", "IND_EMIT", "COD_PART", "COD_MOD", "COD_SIT",
		"SER", "NUM_DOC", "CHV_NFE", "DT_DOC", "DT_E_S", "VL_DOC",
		"IND_PGTO", "VL_DESC", "VL_ABAT_NT", "VL_MERC", "IND_FRT", "VL_FRT",
		"VL_SEG", "VL_OUT_DA", "VL_BC_ICMS", "VL_ICMS", "VL_BC_ICMS_ST",
		"VL_ICMS_ST", "VL_IPI", "VL_PIS", "VL_COFINS", "VL_PIS_ST",
		"VL_COFINS_ST",
	},
	"C170": {
		"REG", "NUM_ITEM", "COD_ITEM", "DESCR_COMPL", "QTD", "UNID",
		"VL_ITEM", "VL_DESC", "IND_MOV", "CST_ICMS", "CFOP", "COD_NAT",
		"VL_BC_ICMS", "ALIQ_ICMS", "VL_ICMS", "VL_BC_ICMS_ST", "ALIQ_ST",
		"VL_ICMS_ST", "IND_APUR", "CST_IPI", "COD_ENQ", "VL_BC_IPI",
		"ALIQ_IPI", "VL_IPI", "CST_PIS", "VL_BC_PIS", "ALIQ_PIS",
		"QUANT_BC_PIS", "ALIQ_PIS_QUANT", "VL_PIS", "CST_COFINS",
		"VL_BC_COFINS", "ALIQ_COFINS", "QUANT_BC_COFINS",
		"ALIQ_COFINS_QUANT", "VL_COFINS", "COD_CTA",
	},

	// Block E: ICMS/IPI assessment
	"E100": {"REG", "DT_INI", "DT_FIN"},
	"E110": {
		"REG", "VL_TOT_DEBITOS", "VL_AJ_DEBITOS", "VL_TOT_AJ_DEBITOS",
		"VL_ESTORNOS_CRED", "VL_TOT_CREDITOS", "VL_AJ_CREDITOS",
		"VL_TOT_AJ_CREDITOS", "VL_ESTORNOS_DEB", "VL_SLD_CREDOR_ANT",
		"VL_SLD_APURADO", "VL_DEDUCOES", "VL_ICMS_RECOLHER",
		"VL_SLD_CREDOR_TRANSPORTAR", "DEB_ESP",
	},
}

// Schema returns the ordered field names for a record-type code, or false if
// the code is not part of the supported layout.
func Schema(recordType string) ([]string, bool) {
	s, ok := recordSchemas[recordType]
	return s, ok
}
