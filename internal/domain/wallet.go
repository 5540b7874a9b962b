package domain

import "time"

// LedgerType classifies a balance change
type LedgerType string

const (
	LedgerSessionCredit LedgerType = "SESSION_CREDIT"
	LedgerPurchase      LedgerType = "PURCHASE"
	LedgerAdjustment    LedgerType = "ADJUSTMENT"
	LedgerRefund        LedgerType = "REFUND"
)

// Valid reports whether t is a known ledger type
func (t LedgerType) Valid() bool {
	switch t {
	case LedgerSessionCredit, LedgerPurchase, LedgerAdjustment, LedgerRefund:
		return true
	}
	return false
}

// Wallet holds a user's current coin balance
type Wallet struct {
	UserID       string    `json:"user_id"`
	BalanceCoins int64     `json:"balance_coins"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LedgerEntry is one append-only balance change. Amount is signed.
type LedgerEntry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Amount    int64      `json:"amount"`
	Type      LedgerType `json:"type"`
	RefID     string     `json:"ref_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
