package m_invoice

import (
	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
)

// BuildInsertMap prepares the canonical column values for a new invoice.
func BuildInsertMap(id, customerID string, amountCents int64, status string, date civil.Date) map[string]interface{} {
	return map[string]interface{}{
		ColID:         id,
		ColCustomerID: customerID,
		ColAmount:     amountCents,
		ColStatus:     status,
		ColDate:       date,
	}
}

// BuildUpdateMap holds the replaceable columns of an invoice. id and date are
// never part of it.
func BuildUpdateMap(customerID string, amountCents int64, status string) map[string]interface{} {
	return map[string]interface{}{
		ColCustomerID: customerID,
		ColAmount:     amountCents,
		ColStatus:     status,
	}
}

// InsertMutation builds a spanner.Insert mutation from a column map.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols, vals := split(values)
	return spanner.Insert(TableName, cols, vals)
}

// UpsertMutation builds a spanner.InsertOrUpdate mutation from a column map.
func UpsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols, vals := split(values)
	return spanner.InsertOrUpdate(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation keyed by id. values must not
// contain the id column.
func UpdateMutation(id string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColID}
	vals := []interface{}{id}
	c, v := split(values)
	return spanner.Update(TableName, append(cols, c...), append(vals, v...))
}

// DeleteMutation removes the invoice row keyed by id.
func DeleteMutation(id string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{id})
}

func split(values map[string]interface{}) ([]string, []interface{}) {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for c, v := range values {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return cols, vals
}
