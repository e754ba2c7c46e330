package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUpsert(t *testing.T) {
	sql := BuildUpsert(Postgres, "countries", []string{"code", "name"}, []string{"code"})
	assert.Equal(t,
		`INSERT INTO "countries" ("code", "name") VALUES ($1, $2) ON CONFLICT ("code") DO UPDATE SET "name" = EXCLUDED."name"`,
		sql,
	)
}

func TestBuildUpsert_SQLitePlaceholders(t *testing.T) {
	sql := BuildUpsert(SQLite, "countries", []string{"code", "name"}, []string{"code"})
	assert.Equal(t,
		`INSERT INTO "countries" ("code", "name") VALUES (?, ?) ON CONFLICT ("code") DO UPDATE SET "name" = EXCLUDED."name"`,
		sql,
	)
}

func TestBuildUpsert_AllKeysDoNothing(t *testing.T) {
	sql := BuildUpsert(Postgres, "t", []string{"a", "b"}, []string{"a", "b"})
	assert.Equal(t,
		`INSERT INTO "t" ("a", "b") VALUES ($1, $2) ON CONFLICT ("a", "b") DO NOTHING`,
		sql,
	)
}

func TestBuildInsert(t *testing.T) {
	sql := BuildInsert(Postgres, "record_names", []string{"owner_kind", "owner_id", "surname"})
	assert.Equal(t,
		`INSERT INTO "record_names" ("owner_kind", "owner_id", "surname") VALUES ($1, $2, $3)`,
		sql,
	)
}

func TestBuildDelete(t *testing.T) {
	sql := BuildDelete(SQLite, "record_names", []string{"owner_kind", "owner_id"})
	assert.Equal(t,
		`DELETE FROM "record_names" WHERE "owner_kind" = ? AND "owner_id" = ?`,
		sql,
	)
}

func TestQuoteSchemaQualified(t *testing.T) {
	sql := BuildInsert(Postgres, "watchlist.persons", []string{"id"})
	assert.Equal(t, `INSERT INTO "watchlist"."persons" ("id") VALUES ($1)`, sql)
}
