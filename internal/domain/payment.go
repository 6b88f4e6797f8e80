package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodYape         PaymentMethod = "yape"
	PaymentMethodPlin         PaymentMethod = "plin"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodYape, PaymentMethodPlin,
		PaymentMethodBankTransfer, PaymentMethodCard:
		return true
	}
	return false
}

// Payment is one money movement tied to a rental. Rows are append-only;
// corrections are recorded as new payments, never edits.
type Payment struct {
	ID           string        `json:"id"`
	RentalID     string        `json:"rental_id"`
	OperatorID   string        `json:"operator_id"`
	Method       PaymentMethod `json:"method"`
	AmountCents  int64         `json:"amount_cents"`
	Concept      string        `json:"concept"`
	Reference    string        `json:"reference,omitempty"`
	OriginNumber string        `json:"origin_number,omitempty"`
	CreatedOn    time.Time     `json:"created_on"`
}

// MethodSummary is one row of the daily cash report: the number of
// payments and total collected through a method on a given day.
type MethodSummary struct {
	Method       PaymentMethod `json:"method"`
	Transactions int32         `json:"transactions"`
	TotalCents   int64         `json:"total_cents"`
}
