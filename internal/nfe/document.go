package nfe

// XML shapes for the NF-e infNFe subtree (single default namespace,
// http://www.portalfiscal.inf.br/nfe). Only the fields the extractor
// surfaces are declared; everything else is ignored by the decoder.

type infNFe struct {
	Ide    *ideBlock    `xml:"ide"`
	Emit   *emitBlock   `xml:"emit"`
	Dest   *destBlock   `xml:"dest"`
	Det    []detBlock   `xml:"det"`
	Total  *totalBlock  `xml:"total"`
	Transp *transpBlock `xml:"transp"`
	Cobr   *cobrBlock   `xml:"cobr"`
}

type ideBlock struct {
	NNF      string `xml:"nNF"`
	Serie    string `xml:"serie"`
	DhEmi    string `xml:"dhEmi"`
	DhSaiEnt string `xml:"dhSaiEnt"`
	NatOp    string `xml:"natOp"`
	TpNF     string `xml:"tpNF"`
	Mod      string `xml:"mod"`
	CUF      string `xml:"cUF"`
	FinNFe   string `xml:"finNFe"`
}

type endereco struct {
	UF   string `xml:"UF"`
	XMun string `xml:"xMun"`
	CEP  string `xml:"CEP"`
}

type emitBlock struct {
	CNPJ  string    `xml:"CNPJ"`
	XNome string    `xml:"xNome"`
	XFant string    `xml:"xFant"`
	IE    string    `xml:"IE"`
	Ender *endereco `xml:"enderEmit"`
}

type destBlock struct {
	CNPJ  string    `xml:"CNPJ"`
	CPF   string    `xml:"CPF"`
	XNome string    `xml:"xNome"`
	IE    string    `xml:"IE"`
	Ender *endereco `xml:"enderDest"`
}

type transpBlock struct {
	ModFrete   string `xml:"modFrete"`
	Transporta *struct {
		XNome string `xml:"xNome"`
		CNPJ  string `xml:"CNPJ"`
		UF    string `xml:"UF"`
	} `xml:"transporta"`
	Vol *struct {
		QVol  string `xml:"qVol"`
		PesoL string `xml:"pesoL"`
		PesoB string `xml:"pesoB"`
	} `xml:"vol"`
}

type cobrBlock struct {
	Fat *struct {
		NFat  string `xml:"nFat"`
		VOrig string `xml:"vOrig"`
		VLiq  string `xml:"vLiq"`
	} `xml:"fat"`
	Dup *struct {
		NDup  string `xml:"nDup"`
		DVenc string `xml:"dVenc"`
		VDup  string `xml:"vDup"`
	} `xml:"dup"`
}

type totalBlock struct {
	ICMSTot *icmsTot `xml:"ICMSTot"`
}

type icmsTot struct {
	VBC     string `xml:"vBC"`
	VICMS   string `xml:"vICMS"`
	VProd   string `xml:"vProd"`
	VNF     string `xml:"vNF"`
	VFrete  string `xml:"vFrete"`
	VIPI    string `xml:"vIPI"`
	VCOFINS string `xml:"vCOFINS"`
	VPIS    string `xml:"vPIS"`
}

type detBlock struct {
	NItem   string    `xml:"nItem,attr"`
	Prod    *prodBlock `xml:"prod"`
	Imposto *struct {
		// The tax group nests amounts under variant-specific elements
		// (ICMS00, ICMS10, PISAliq, ...). The raw subtree is kept and
		// searched for the first occurrence of each amount tag.
		InnerXML []byte `xml:",innerxml"`
	} `xml:"imposto"`
}

type prodBlock struct {
	CProd  string `xml:"cProd"`
	XProd  string `xml:"xProd"`
	NCM    string `xml:"NCM"`
	CFOP   string `xml:"CFOP"`
	UCom   string `xml:"uCom"`
	QCom   string `xml:"qCom"`
	VUnCom string `xml:"vUnCom"`
	VProd  string `xml:"vProd"`
}
