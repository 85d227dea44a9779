package entity

import (
	"time"

	"github.com/google/uuid"
)

// Expense represents a persisted expense record for data transfer
// between layers. FileHash carries the content digest of the document
// the expense was created from and drives duplicate detection.
type Expense struct {
	ID        uuid.UUID `json:"id"`
	Merchant  string    `json:"merchant"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	TxDate    time.Time `json:"tx_date"`
	Notes     string    `json:"notes,omitempty"`
	FileHash  string    `json:"file_hash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
