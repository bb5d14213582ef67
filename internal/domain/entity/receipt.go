package entity

// ReceiptHeader holds the business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
	Note      string  `json:"note,omitempty"`
}

// ReceiptLine is a labelled amount in the totals block.
type ReceiptLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Receipt is a value object representing a printable bill, KOT or folio.
// It is not persisted; it is composed from order or booking data at print time.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	Title       string        `json:"title"`
	Reference   string        `json:"reference"`
	Date        string        `json:"date"`
	Location    string        `json:"location,omitempty"` // table or room
	Customer    string        `json:"customer,omitempty"`
	PaymentType string        `json:"payment_type,omitempty"`
	Items       []ReceiptItem `json:"items"`
	Totals      []ReceiptLine `json:"totals,omitempty"`
	Total       float64       `json:"total"`
	Footer      string        `json:"footer,omitempty"`
	// KitchenCopy omits prices and totals.
	KitchenCopy bool `json:"kitchen_copy,omitempty"`
}
