package entities

import "fmt"

// DocumentKind selects an independent numbering sequence.
type DocumentKind string

const (
	DocumentKindQuotation DocumentKind = "quotation"
	DocumentKindOrder     DocumentKind = "order"
	DocumentKindRemission DocumentKind = "remission"
)

var documentPrefixes = map[DocumentKind]string{
	DocumentKindQuotation: "COT",
	DocumentKindOrder:     "PED",
	DocumentKindRemission: "REM",
}

func (k DocumentKind) Prefix() string {
	return documentPrefixes[k]
}

func (k DocumentKind) Valid() bool {
	_, ok := documentPrefixes[k]
	return ok
}

// FormatCode renders a counter value as a human code, e.g. PED-000123.
func (k DocumentKind) FormatCode(n int64) string {
	return fmt.Sprintf("%s-%06d", k.Prefix(), n)
}
