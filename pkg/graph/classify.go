package graph

// IdentifierKind is the outcome of classifying a sanction tax identifier.
type IdentifierKind int

const (
	IdentifierUnknown IdentifierKind = iota
	IdentifierPerson
	IdentifierCompany
)

// cpfDigits is the length of a personal tax identifier (CPF). Anything
// longer is treated as a company identifier (CNPJ, 14 digits).
const cpfDigits = 11

// NormalizeIdentifier strips every non-digit rune from a tax identifier, so
// formatted values ("12.345.678/0001-99") and bare digit strings compare equal.
func NormalizeIdentifier(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// ClassifyIdentifier decides whether a tax identifier belongs to a person or
// a company by digit count: more than 11 digits reads as CNPJ, 11 or fewer
// as CPF. This is a heuristic stand-in for authoritative type tagging and
// deliberately performs no checksum validation; replacing it only requires
// swapping this function.
func ClassifyIdentifier(s string) IdentifierKind {
	digits := NormalizeIdentifier(s)
	if digits == "" {
		return IdentifierUnknown
	}
	if len(digits) > cpfDigits {
		return IdentifierCompany
	}
	return IdentifierPerson
}
