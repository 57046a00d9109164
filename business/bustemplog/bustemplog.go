// Package bustemplog journals temperature readings to the local sqlite
// database. The journal is append-only from the pipeline's point of view: it
// is never consulted before fetching from the hub.
package bustemplog

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/jroedel/hatemp/foundation/clientsqlite"
)

type Business struct {
	cln *clientsqlite.ClientSqlite
	//executionId tags every reading written by this process so batches can be told apart later
	executionId string
}

func New(cln *clientsqlite.ClientSqlite) *Business {
	const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	const lenExecutionId = 8

	b := make([]byte, lenExecutionId)
	for i := range b {
		b[i] = letterBytes[rand.Int63()%int64(len(letterBytes))]
	}

	return &Business{
		cln:         cln,
		executionId: string(b),
	}
}

func (b *Business) Create(reading Reading) error {
	const query = `
		INSERT INTO templog
		(
			ExecutionIdentifier,
			EntityId,
			Timestamp,
			Temperature
		)
		VALUES
			(?, ?, ?, ?)`

	err := b.cln.Create(query,
		b.executionId,
		reading.EntityId,
		reading.Timestamp.Unix(),
		reading.Temperature)
	if err != nil {
		return fmt.Errorf("create reading: %w", err)
	}

	return nil
}

// RecentReadings returns the journaled readings for entityId since the given
// time, oldest first.
func (b *Business) RecentReadings(entityId string, since time.Time) ([]Reading, error) {
	const query = `
		SELECT
			Id,
			ExecutionIdentifier,
			EntityId,
			Timestamp,
			Temperature
		FROM
			templog
		WHERE
			EntityId = ? AND Timestamp >= ?
		ORDER BY
			Timestamp`

	var readings []Reading
	err := b.cln.Query(query, []any{entityId, since.Unix()}, func(rows *sql.Rows) error {
		var r Reading
		var timestamp int64
		if err := rows.Scan(&r.DbAutoId, &r.ExecutionIdentifier, &r.EntityId, &timestamp, &r.Temperature); err != nil {
			return err
		}
		r.Timestamp = time.Unix(timestamp, 0)
		readings = append(readings, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}

	return readings, nil
}

func (b *Business) AverageRecentTemperature(entityId string, d time.Duration) (float32, error) {
	timestampRef := time.Now().Add(-d).Unix()
	//AVG over zero rows is NULL, so scan through a nullable
	var avgTemp sql.NullFloat64
	err := b.cln.QueryRow(
		"SELECT AVG(Temperature) FROM templog WHERE EntityId = ? AND Timestamp >= ?",
		[]any{entityId, timestampRef},
		&avgTemp)
	if err != nil {
		return 0, err
	}
	if !avgTemp.Valid {
		return 0, fmt.Errorf("no readings for %s in the last %s", entityId, d)
	}
	return float32(avgTemp.Float64), nil
}
