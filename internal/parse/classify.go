package parse

import "strings"

// statementIndicators are phrases that recur on credit-card and
// account statements but essentially never on point-of-sale receipts.
var statementIndicators = []string{
	"statement closing date",
	"payment due date",
	"minimum payment",
	"credit limit",
	"available credit",
	"billing cycle",
	"previous balance",
	"new balance",
	"summary of account",
	"annual summary",
}

// statementIndicatorMin is how many distinct indicators must appear
// before a document is treated as a recurring statement.
const statementIndicatorMin = 3

// IsStatement classifies text as a recurring statement when enough
// distinct indicator phrases are present. Statements place their
// "total" differently from receipts, so the classification selects
// which amount keyword list is used downstream.
func IsStatement(text string) bool {
	lower := strings.ToLower(text)
	count := 0
	for _, ind := range statementIndicators {
		if strings.Contains(lower, ind) {
			count++
			if count >= statementIndicatorMin {
				return true
			}
		}
	}
	return false
}
