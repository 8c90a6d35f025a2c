package convert

import "strings"

// Strategy identifies the converter pathway for a file. Resolved once per
// request from the (lowercased) extension; the legacy .doc pathway refines
// itself further from sniffed header bytes.
type Strategy int

const (
	StrategyUnsupported Strategy = iota
	// StrategyGenericDocument converts via the pandoc CLI.
	StrategyGenericDocument
	// StrategyModernSpreadsheet reads .xlsx directly with a spreadsheet
	// library, bypassing the generic converter's slow HTML intermediate path.
	StrategyModernSpreadsheet
	// StrategyLegacySpreadsheet reads .xls with a tolerant BIFF reader that
	// accepts malformed files the standard reader rejects.
	StrategyLegacySpreadsheet
	// StrategyGenericLibrary converts via the markitdown library family.
	StrategyGenericLibrary
	// StrategyLegacyDocChain is the multi-step fallback pathway for .doc.
	StrategyLegacyDocChain
)

func (s Strategy) String() string {
	switch s {
	case StrategyGenericDocument:
		return "generic-document"
	case StrategyModernSpreadsheet:
		return "modern-spreadsheet"
	case StrategyLegacySpreadsheet:
		return "legacy-spreadsheet"
	case StrategyGenericLibrary:
		return "generic-library"
	case StrategyLegacyDocChain:
		return "legacy-doc-chain"
	default:
		return "unsupported"
	}
}

// routingTable is fixed and authoritative.
var routingTable = map[string]Strategy{
	".docx": StrategyGenericDocument,
	".rtf":  StrategyGenericDocument,
	".odt":  StrategyGenericDocument,
	".txt":  StrategyGenericDocument,
	".xlsx": StrategyModernSpreadsheet,
	".xls":  StrategyLegacySpreadsheet,
	".pptx": StrategyGenericLibrary,
	".pdf":  StrategyGenericLibrary,
	".doc":  StrategyLegacyDocChain,
}

// Route maps a file extension (with leading dot, any case) to its strategy.
func Route(ext string) Strategy {
	s, ok := routingTable[strings.ToLower(ext)]
	if !ok {
		return StrategyUnsupported
	}
	return s
}
