package m_customer

// Field constants for the customers table.
const (
	TableName = "customers"

	ColID       = "id"
	ColName     = "name"
	ColEmail    = "email"
	ColImageURL = "image_url"
)

const (
	ListSQL   = `SELECT id, name FROM customers ORDER BY name ASC`
	InsertSQL = `INSERT INTO customers (id, name, email, image_url) VALUES ($1, $2, $3, $4)`
	SeedSQL   = InsertSQL + ` ON CONFLICT (id) DO NOTHING`
)
