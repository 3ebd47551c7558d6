package model

import "time"

const (
	// BankCode is the clearing code of Sicoob in the Brazilian payment system.
	BankCode = "756"
	// PaymentPlace is printed in the "Local de pagamento" box of the slip.
	PaymentPlace = "Pagável preferencialmente nas cooperativas de crédito do Sicoob"
)

// Slip is an issued payment slip.
// Every derived field is computed once when the slip is issued and kept verbatim.
// Agreement is a copy, so changes made by the caller afterwards do not reach it.
type Slip struct {
	ID                string    `json:"id"`
	BankCode          string    `json:"bank_code"`
	PaymentPlace      string    `json:"payment_place"`
	Registered        bool      `json:"registered"`
	Agreement         Agreement `json:"agreement"`
	BranchMember      string    `json:"branch_member"`
	Identifier        string    `json:"identifier"`
	IdentifierDisplay string    `json:"identifier_display"`
	FreeField         string    `json:"free_field"`
	CreatedAt         time.Time `json:"created_at"`
}
