package m_user

// Field constants for the users table.
const (
	TableName = "users"

	ColID       = "id"
	ColName     = "name"
	ColEmail    = "email"
	ColPassword = "password"
)

const (
	SelectByEmailSQL = `SELECT id, name, email, password FROM users WHERE email = $1`
	InsertSQL        = `INSERT INTO users (id, name, email, password) VALUES ($1, $2, $3, $4)`
	SeedSQL          = InsertSQL + ` ON CONFLICT (id) DO NOTHING`
)
