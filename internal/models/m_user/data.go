package m_user

import "cloud.google.com/go/spanner"

// UpsertMutation writes a user row. passwordHash must already be hashed.
func UpsertMutation(id, name, email, passwordHash string) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName,
		[]string{ColID, ColName, ColEmail, ColPassword},
		[]interface{}{id, name, email, passwordHash})
}
