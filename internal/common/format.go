package common

import (
	"fmt"
	"io"
	"strings"

	"ledgerly/internal/models"
)

const (
	// Default separator widths
	DefaultWidth = 80
	WideWidth    = 100
)

// PrintSeparator prints a separator line with the specified character and width
func PrintSeparator(w io.Writer, char string, width int) {
	fmt.Fprintln(w, strings.Repeat(char, width))
}

// PrintHeader prints a formatted header with title and separators
func PrintHeader(w io.Writer, title string, width int) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", width))
	fmt.Fprintln(w, title)
	PrintSeparator(w, "=", width)
}

// PrintFooter prints a formatted footer with message and separators
func PrintFooter(w io.Writer, message string, width int) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", width))
	fmt.Fprintln(w, message)
	fmt.Fprintln(w, strings.Repeat("=", width)+"\n")
}

// BoxPrefix returns the appropriate box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// BoxDetailPrefix returns the prefix for detail lines under list items
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}

// PrintTransactionHistory renders one history page as seen by userId
func PrintTransactionHistory(w io.Writer, userId models.UserId, page *models.TransactionPage) {
	PrintHeader(w, fmt.Sprintf("TRANSACTION HISTORY - user %d", userId), WideWidth)

	if len(page.Transactions) == 0 {
		fmt.Fprintln(w, "No visible transactions")
	}

	for i, t := range page.Transactions {
		isLast := i == len(page.Transactions)-1
		direction, counterparty := "→", t.ReceiverEmail
		if t.SenderId != userId {
			direction, counterparty = "←", t.SenderEmail
		}

		fmt.Fprintf(w, "%s#%d  %s  %s %s  %-9s %-8s %s\n",
			BoxPrefix(isLast), t.Id, t.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			direction, t.Amount.String(), t.Status, t.TransactionType, counterparty)

		if t.TransactionHash != nil {
			fmt.Fprintf(w, "%s   hash: %s\n", BoxDetailPrefix(isLast), *t.TransactionHash)
		}
		if t.Memo != nil && *t.Memo != "" {
			fmt.Fprintf(w, "%s   memo: %s\n", BoxDetailPrefix(isLast), *t.Memo)
		}
	}

	PrintFooter(w, fmt.Sprintf("Showing %d of %d (limit %d, offset %d)",
		len(page.Transactions), page.Total, page.Limit, page.Offset), WideWidth)
}
