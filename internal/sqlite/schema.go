package sqlite

// Schema DDL for the shelf database. A shelf is a single two-column table;
// values are JSON text.
const (
	createShelf = `CREATE TABLE IF NOT EXISTS shelf (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

	selectValue = `SELECT value FROM shelf WHERE key = ?`

	upsertValue = `INSERT INTO shelf (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`
)

// schemaDDL lists the statements run on every Open, in order.
var schemaDDL = []string{
	createShelf,
}
