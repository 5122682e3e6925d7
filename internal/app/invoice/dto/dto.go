package dto

// InvoiceForm is the invoice shape the edit form is populated with.
// Amount is in currency units; AmountCents is what the store holds.
type InvoiceForm struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customer_id"`
	Amount      float64 `json:"amount"`
	AmountCents int64   `json:"amount_cents"`
	Status      string  `json:"status"`
	Date        string  `json:"date"`
}

// CustomerField is a customer option for the invoice forms' select input.
type CustomerField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
