package m_invoice

// Field constants for the invoices table.
const (
	TableName = "invoices"

	ColID         = "id"
	ColCustomerID = "customer_id"
	ColAmount     = "amount"
	ColStatus     = "status"
	ColDate       = "date"
)

// Parameterized SQL for database/sql drivers (pgx, sqlite). Placeholders
// appear in ascending order so drivers that bind $n by ordinal agree.
const (
	InsertSQL = `INSERT INTO invoices (id, customer_id, amount, status, date) VALUES ($1, $2, $3, $4, $5)`
	UpdateSQL = `UPDATE invoices SET customer_id = $1, amount = $2, status = $3 WHERE id = $4`
	DeleteSQL = `DELETE FROM invoices WHERE id = $1`
	SelectSQL = `SELECT id, customer_id, amount, status, date FROM invoices WHERE id = $1`
	SeedSQL   = InsertSQL + ` ON CONFLICT (id) DO NOTHING`
)
