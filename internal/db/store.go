package db

import (
	"database/sql"

	"github.com/kiwiland/railquery/internal/model"
)

type Store struct {
	DB *sql.DB
}

// LoadEdges reads the whole edge table. The graph is rebuilt from a
// full snapshot rather than queried per station: it is immutable once
// built, so there is no point holding the database in the query path.
func (s Store) LoadEdges() ([]model.Edge, error) {
	rows, err := s.DB.Query(`
        SELECT from_station, to_station, distance
        FROM edges
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	edges := make([]model.Edge, 0, 64)

	for rows.Next() {
		var from, to string
		var dist int

		if err := rows.Scan(&from, &to, &dist); err != nil {
			return nil, err
		}

		edges = append(edges, model.Edge{
			From:     model.Station(from),
			To:       model.Station(to),
			Distance: dist,
		})
	}

	return edges, rows.Err()
}
