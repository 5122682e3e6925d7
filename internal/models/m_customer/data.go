package m_customer

import "cloud.google.com/go/spanner"

// UpsertMutation writes a customer row, replacing any existing one.
func UpsertMutation(id, name, email, imageURL string) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName,
		[]string{ColID, ColName, ColEmail, ColImageURL},
		[]interface{}{id, name, email, imageURL})
}
