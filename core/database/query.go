package database

import (
	"context"
	"fmt"

	"table-reconciler/core/dataset"

	"gorm.io/gorm"
)

// QueryDataset runs a read-only query and loads the full result set as a
// dataset labelled label. The query is checked with CheckReadOnly first.
func QueryDataset(ctx context.Context, db *gorm.DB, query, label string) (*dataset.Dataset, error) {
	if err := CheckReadOnly(query); err != nil {
		return nil, err
	}

	rows, err := db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	ds := dataset.New(label, columns...)
	raw := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", ds.Len()+1, err)
		}
		values := make([]dataset.Value, len(columns))
		for i, v := range raw {
			values[i] = dataset.Of(v)
		}
		if err := ds.Append(values...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return ds, nil
}
