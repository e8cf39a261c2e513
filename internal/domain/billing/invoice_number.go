package billing

import (
	"fmt"
	"regexp"
	"strconv"
)

// InvoiceNumberPrefix is the prefix for generated invoice numbers
const InvoiceNumberPrefix = "INV-"

var numberSuffixPattern = regexp.MustCompile(`(\d+)$`)

// FormatInvoiceNumber renders a sequence value as a generated invoice
// number, e.g. 7 -> "INV-000007".
func FormatInvoiceNumber(seq int) string {
	return fmt.Sprintf("%s%06d", InvoiceNumberPrefix, seq)
}

// NumberSuffix extracts the trailing digit run of an invoice number.
// Returns false when the number carries no trailing digits.
func NumberSuffix(number string) (int, bool) {
	match := numberSuffixPattern.FindStringSubmatch(number)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		// Digit runs longer than an int can hold are treated as absent.
		return 0, false
	}
	return n, true
}

// NextInvoiceNumber derives the next generated number from the highest
// existing invoice number. An empty or suffix-less input starts the
// sequence at 1.
func NextInvoiceNumber(maxExisting string) string {
	seq, ok := NumberSuffix(maxExisting)
	if !ok {
		return FormatInvoiceNumber(1)
	}
	return FormatInvoiceNumber(seq + 1)
}
