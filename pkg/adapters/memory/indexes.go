package memory

import "github.com/hashicorp/go-memdb"

const tblDocuments = "documents"

// schema defines one keyed record store plus a non-unique secondary index
// on UpdatedAt, so listings walk the index in reverse instead of re-sorting.
var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tblDocuments: {
			Name: tblDocuments,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"updated_at": {
					Name:    "updated_at",
					Indexer: &memdb.TimeFieldIndex{Field: "UpdatedAt"},
				},
			},
		},
	},
}
