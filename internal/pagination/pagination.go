// Package pagination computes which page-number tokens a page selector
// should render. This is the only place page-window logic lives.
package pagination

import "strconv"

// Token is a single entry in a page selector: either a concrete page number
// or an ellipsis standing for elided pages. Renderers must treat ellipsis
// tokens as non-clickable.
type Token struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func (t Token) String() string {
	if t.Ellipsis {
		return "..."
	}
	return strconv.Itoa(t.Page)
}

func page(n int) Token { return Token{Page: n} }

var ellipsis = Token{Ellipsis: true}

// Generate returns the ordered tokens for a 1-based page selector.
//
// Up to 7 pages every page number is shown. Beyond that the window collapses:
// near the start the first three pages plus the last two, near the end the
// first two plus the last three, and in the middle the current page with its
// neighbors framed by the first and last page. Zero total pages yields nil.
func Generate(currentPage, totalPages int) []Token {
	if totalPages <= 0 {
		return nil
	}

	if totalPages <= 7 {
		tokens := make([]Token, totalPages)
		for i := range tokens {
			tokens[i] = page(i + 1)
		}
		return tokens
	}

	if currentPage <= 3 {
		return []Token{page(1), page(2), page(3), ellipsis, page(totalPages - 1), page(totalPages)}
	}

	if currentPage >= totalPages-2 {
		return []Token{page(1), page(2), ellipsis, page(totalPages - 2), page(totalPages - 1), page(totalPages)}
	}

	return []Token{
		page(1), ellipsis,
		page(currentPage - 1), page(currentPage), page(currentPage + 1),
		ellipsis, page(totalPages),
	}
}
