package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Invoice nets the activity of a structure's stores over [StartDate, EndDate].
type Invoice struct {
	ID          uuid.UUID       `json:"id"`
	Reference   string          `json:"reference"`
	StructureID uuid.UUID       `json:"structure_id"`
	Creation    time.Time       `json:"creation"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Total       int64           `json:"total"`
	Paid        bool            `json:"paid"`
	Received    bool            `json:"received"`
	Details     []InvoiceDetail `json:"details"`
}

// InvoiceDetail is the net delta of one store inside an invoice. It may be negative.
type InvoiceDetail struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
	StoreID   uuid.UUID `json:"store_id"`
	Total     int64     `json:"total"`
}

// Withdrawal records money leaving a store wallet when an invoice is received.
type Withdrawal struct {
	ID       uuid.UUID `json:"id"`
	WalletID uuid.UUID `json:"wallet_id"`
	Total    int64     `json:"total"`
	Creation time.Time `json:"creation"`
}

var invoiceReferencePattern = regexp.MustCompile(`[a-zA-Z]*(\d{4})[a-zA-Z]*(\d{4})`)

// ParseInvoiceReference recovers the year and sequence number of a reference
// produced by InvoiceReference.
func ParseInvoiceReference(reference string) (year int, sequence int, err error) {
	m := invoiceReferencePattern.FindStringSubmatch(reference)
	if m == nil {
		return 0, 0, fmt.Errorf("malformed invoice reference %q", reference)
	}
	year, _ = strconv.Atoi(m[1])
	sequence, _ = strconv.Atoi(m[2])
	return year, sequence, nil
}

// InvoiceReference formats PAY<year><shortID><sequence:04d>.
func InvoiceReference(year int, shortID string, sequence int) string {
	return fmt.Sprintf("PAY%d%s%04d", year, shortID, sequence)
}

// NextInvoiceReference returns the reference following previous for a structure.
// previous is empty for the first invoice. The sequence resets on year change.
func NextInvoiceReference(previous string, shortID string, at time.Time) (string, error) {
	sequence := 0
	if previous != "" {
		year, seq, err := ParseInvoiceReference(previous)
		if err != nil {
			return "", err
		}
		if year == at.Year() {
			sequence = seq
		}
	}
	return InvoiceReference(at.Year(), shortID, sequence+1), nil
}
