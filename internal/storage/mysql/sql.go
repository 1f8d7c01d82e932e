package mysql

// One row per collection key; the JSON document lands in `v` unparsed, the
// same shape the Redis backend stores.
const createTableSQL = `
CREATE TABLE IF NOT EXISTS kv (
  k          VARCHAR(191) PRIMARY KEY,
  v          MEDIUMBLOB   NOT NULL,
  updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)
`

const upsertSQL = `
INSERT INTO kv (k, v)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  v          = VALUES(v),
  updated_at = CURRENT_TIMESTAMP
`

const getSQL = `SELECT v FROM kv WHERE k = ?`
