package postgres

// SQL queries for the salaries table

const (
	// queryLoadRecords returns the dataset in insertion order so record IDs
	// stay stable across restarts.
	queryLoadRecords = `
		SELECT
			rank, discipline, yrs_since_phd, yrs_service, sex, salary
		FROM salaries
		ORDER BY id ASC
	`

	// queryTruncateRecords clears the dataset before a reseed.
	// RESTART IDENTITY keeps ids dense, matching source row order.
	queryTruncateRecords = `TRUNCATE TABLE salaries RESTART IDENTITY`

	queryInsertRecord = `
		INSERT INTO salaries (
			rank, discipline, yrs_since_phd, yrs_service, sex, salary
		)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	queryCountRecords = `SELECT COUNT(*) FROM salaries`
)
