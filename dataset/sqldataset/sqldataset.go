/*
Package sqldataset reads dataset.Frames from the result of SQL queries.

Any database/sql driver can be used through sqlx; the command line tool
registers the SQLite3 and PostgreSQL ones.
*/
package sqldataset

import (
	"context"
	"fmt"

	"github.com/ergocortex/MLAssistant/dataset"
	"github.com/ergocortex/MLAssistant/feature"
	"github.com/jmoiron/sqlx"
)

/*
Load takes a context, a database handle, an SQL query, a slice of features and
the name of the class feature, runs the query and returns a frame with a row
for every row of the result. Result columns are matched to features by name;
columns without a feature are ignored.
*/
func Load(ctx context.Context, db *sqlx.DB, query string, features []feature.Feature, class string) (*dataset.Frame, error) {
	b, err := dataset.NewBuilder(features, class)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying samples: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		raw := make(map[string]interface{})
		if err = rows.MapScan(raw); err != nil {
			return nil, fmt.Errorf("scanning row %d: %v", b.Len()+1, err)
		}
		if err = b.Add(raw); err != nil {
			return nil, fmt.Errorf("row %d: %v", b.Len()+1, err)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating result rows: %v", err)
	}
	return b.Frame()
}
