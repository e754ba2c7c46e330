package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/watchlist-cli/internal/db"
	"github.com/sells-group/watchlist-cli/internal/model"
)

// PgxDB is the subset of pgxpool.Pool the gateway uses. pgxmock satisfies it.
type PgxDB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Postgres implements Gateway over pgx. The pool is pinned to one connection
// so all writes serialize on a single shared connection.
type Postgres struct {
	db PgxDB
}

// NewPostgres connects to the database. MaxConns is pinned to 1: the whole
// run shares one connection, which serializes writes.
func NewPostgres(ctx context.Context, connString string) (*Postgres, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 1
	pgxCfg.MinConns = 1
	pgxCfg.MaxConnLifetime = 4 * time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &Postgres{db: pool}, nil
}

// NewPostgresFromDB wraps an existing connection handle; used by tests.
func NewPostgresFromDB(h PgxDB) *Postgres {
	return &Postgres{db: h}
}

func (g *Postgres) Migrate(ctx context.Context) error {
	if _, err := g.db.Exec(ctx, postgresSchema); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

func (g *Postgres) Close() error {
	g.db.Close()
	return nil
}

func (g *Postgres) Begin(ctx context.Context) (RecordTx, error) {
	tx, err := g.db.Begin(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: begin record tx")
	}
	return &pgRecordTx{tx: tx}, nil
}

func (g *Postgres) PersonExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := g.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM persons WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, eris.Wrapf(err, "postgres: person exists %d", id)
	}
	return exists, nil
}

func (g *Postgres) DescriptionTypeExists(ctx context.Context, level int, id int64) (bool, error) {
	var exists bool
	err := g.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM description_types WHERE level = $1 AND id = $2)`,
		level, id,
	).Scan(&exists)
	if err != nil {
		return false, eris.Wrapf(err, "postgres: description type exists (%d,%d)", level, id)
	}
	return exists, nil
}

func (g *Postgres) upsert(ctx context.Context, table string, cols, conflict []string, vals []any) error {
	_, err := g.db.Exec(ctx, db.BuildUpsert(db.Postgres, table, cols, conflict), vals...)
	if err != nil {
		return eris.Wrapf(err, "postgres: upsert %s", table)
	}
	return nil
}

func (g *Postgres) UpsertCountry(ctx context.Context, c model.Country) error {
	return g.upsert(ctx, "countries", countryColumns, codeConflict, []any{c.Code, c.Name, c.IsTerritory, c.ProfileURL})
}

func (g *Postgres) UpsertOccupation(ctx context.Context, o model.Occupation) error {
	return g.upsert(ctx, "occupations", occupationCols, codeConflict, []any{o.Code, o.Name})
}

func (g *Postgres) UpsertRelationship(ctx context.Context, r model.Relationship) error {
	return g.upsert(ctx, "relationships", relationshipCols, codeConflict, []any{r.Code, r.Name})
}

func (g *Postgres) UpsertSanctionsReference(ctx context.Context, r model.SanctionsReference) error {
	return g.upsert(ctx, "sanctions_references", sanctionsRefCols, codeConflict, []any{r.Code, r.Name, r.Status, r.Description2})
}

func (g *Postgres) UpsertDescriptionType(ctx context.Context, d model.DescriptionType) error {
	return g.upsert(ctx, "description_types", descTypeColumns, descTypeConflict, []any{d.Level, d.ID, d.ParentID, d.Text, d.RecordType})
}

func (g *Postgres) UpsertDateType(ctx context.Context, d model.DateType) error {
	return g.upsert(ctx, "date_types", dateTypeColumns, idConflict, []any{d.ID, d.Name})
}

func (g *Postgres) UpsertNameType(ctx context.Context, n model.NameType) error {
	return g.upsert(ctx, "name_types", nameTypeColumns, idConflict, []any{n.ID, n.Name, n.RecordType})
}

func (g *Postgres) UpsertRoleType(ctx context.Context, r model.RoleType) error {
	return g.upsert(ctx, "role_types", roleTypeColumns, idConflict, []any{r.ID, r.Name})
}

func (g *Postgres) StartRun(ctx context.Context, feedType model.FeedType, sourceFile string) (string, error) {
	id := uuid.New().String()
	_, err := g.db.Exec(ctx,
		`INSERT INTO ingest_runs (id, feed_type, source_file, status, started_at) VALUES ($1, $2, $3, $4, $5)`,
		id, string(feedType), sourceFile, string(model.RunRunning), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: start run")
	}
	return id, nil
}

func (g *Postgres) CompleteRun(ctx context.Context, runID string, counts map[string]int64) error {
	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal run counts")
	}
	_, err = g.db.Exec(ctx,
		`UPDATE ingest_runs SET status = $1, completed_at = $2, counts = $3 WHERE id = $4`,
		string(model.RunComplete), time.Now().UTC(), countsJSON, runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete run %s", runID)
	}
	return nil
}

func (g *Postgres) FailRun(ctx context.Context, runID string, errMsg string) error {
	_, err := g.db.Exec(ctx,
		`UPDATE ingest_runs SET status = $1, completed_at = $2, error = $3 WHERE id = $4`,
		string(model.RunFailed), time.Now().UTC(), errMsg, runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: fail run %s", runID)
	}
	return nil
}

func (g *Postgres) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	rows, err := g.db.Query(ctx,
		`SELECT id, feed_type, source_file, status, started_at, completed_at, counts, error
		 FROM ingest_runs ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var r model.Run
		var feedType, status string
		var countsJSON []byte
		if err := rows.Scan(&r.ID, &feedType, &r.SourceFile, &status, &r.StartedAt, &r.CompletedAt, &countsJSON, &r.Error); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		r.FeedType = model.FeedType(feedType)
		r.Status = model.RunStatus(status)
		if len(countsJSON) > 0 {
			if err := json.Unmarshal(countsJSON, &r.Counts); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal run counts")
			}
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// pgRecordTx implements RecordTx over a pgx transaction.
type pgRecordTx struct {
	tx pgx.Tx
}

func (t *pgRecordTx) exec(ctx context.Context, sql string, vals []any) error {
	_, err := t.tx.Exec(ctx, sql, vals...)
	return err
}

func (t *pgRecordTx) upsert(ctx context.Context, table string, cols, conflict []string, vals []any) error {
	if err := t.exec(ctx, db.BuildUpsert(db.Postgres, table, cols, conflict), vals); err != nil {
		return eris.Wrapf(err, "postgres: upsert %s", table)
	}
	return nil
}

func (t *pgRecordTx) insert(ctx context.Context, table string, cols []string, vals []any) error {
	if err := t.exec(ctx, db.BuildInsert(db.Postgres, table, cols), vals); err != nil {
		return eris.Wrapf(err, "postgres: insert %s", table)
	}
	return nil
}

func (t *pgRecordTx) UpsertPerson(ctx context.Context, p *model.Person) error {
	return t.upsert(ctx, "persons", personColumns, personConflict, personValues(p))
}

func (t *pgRecordTx) UpsertEntity(ctx context.Context, e *model.Entity) error {
	return t.upsert(ctx, "entities", entityColumns, entityConflict, entityValues(e))
}

func (t *pgRecordTx) DeleteChildren(ctx context.Context, owner model.OwnerRef) error {
	for _, table := range ownedChildTables {
		sql := db.BuildDelete(db.Postgres, table, ownerKeyColumns)
		if err := t.exec(ctx, sql, []any{string(owner.Kind), owner.ID}); err != nil {
			return eris.Wrapf(err, "postgres: clear %s", table)
		}
	}
	if owner.Kind == model.KindPerson {
		for _, table := range personChildTables {
			sql := db.BuildDelete(db.Postgres, table, []string{"person_id"})
			if err := t.exec(ctx, sql, []any{owner.ID}); err != nil {
				return eris.Wrapf(err, "postgres: clear %s", table)
			}
		}
	}
	if owner.Kind == model.KindEntity {
		sql := db.BuildDelete(db.Postgres, "entity_vessels", []string{"entity_id"})
		if err := t.exec(ctx, sql, []any{owner.ID}); err != nil {
			return eris.Wrap(err, "postgres: clear entity_vessels")
		}
	}
	return nil
}

func (t *pgRecordTx) InsertName(ctx context.Context, owner model.OwnerRef, n model.Name) error {
	return t.insert(ctx, "record_names", nameColumns, nameValues(owner, n))
}

func (t *pgRecordTx) InsertDescription(ctx context.Context, owner model.OwnerRef, d model.Description) error {
	return t.insert(ctx, "record_descriptions", descColumns, descValues(owner, d))
}

func (t *pgRecordTx) InsertRole(ctx context.Context, personID int64, r model.Role) error {
	return t.insert(ctx, "person_roles", roleColumns, roleValues(personID, r))
}

func (t *pgRecordTx) InsertDate(ctx context.Context, owner model.OwnerRef, d model.DateDetail) error {
	return t.insert(ctx, "record_dates", dateColumns, dateValues(owner, d))
}

func (t *pgRecordTx) InsertAddress(ctx context.Context, owner model.OwnerRef, a model.Address) error {
	return t.insert(ctx, "record_addresses", addressColumns, addressValues(owner, a))
}

func (t *pgRecordTx) InsertDocument(ctx context.Context, personID int64, d model.Document) error {
	return t.insert(ctx, "person_documents", documentColumns, documentValues(personID, d))
}

func (t *pgRecordTx) InsertImage(ctx context.Context, owner model.OwnerRef, i model.Image) error {
	return t.insert(ctx, "record_images", imageColumns, imageValues(owner, i))
}

func (t *pgRecordTx) InsertBirthPlace(ctx context.Context, personID int64, b model.BirthPlace) error {
	return t.insert(ctx, "person_birth_places", birthColumns, birthValues(personID, b))
}

func (t *pgRecordTx) InsertSanction(ctx context.Context, owner model.OwnerRef, s model.SanctionLink) error {
	return t.insert(ctx, "record_sanctions", sanctionColumns, sanctionValues(owner, s))
}

func (t *pgRecordTx) InsertSource(ctx context.Context, owner model.OwnerRef, s model.SourceLink) error {
	return t.insert(ctx, "record_sources", sourceColumns, sourceValues(owner, s))
}

func (t *pgRecordTx) InsertVessel(ctx context.Context, entityID int64, v model.Vessel) error {
	return t.insert(ctx, "entity_vessels", vesselColumns, vesselValues(entityID, v))
}

func (t *pgRecordTx) DeleteAssociations(ctx context.Context, holder model.OwnerRef) error {
	for _, table := range []string{"associations", shadowTable(holder.Kind)} {
		sql := db.BuildDelete(db.Postgres, table, assocKeyColumns)
		if err := t.exec(ctx, sql, []any{holder.ID, string(holder.Kind)}); err != nil {
			return eris.Wrapf(err, "postgres: clear %s", table)
		}
	}
	return nil
}

func (t *pgRecordTx) InsertAssociation(ctx context.Context, a model.Association) error {
	return t.insert(ctx, "associations", assocColumns, assocValues(a))
}

func (t *pgRecordTx) InsertShadowAssociation(ctx context.Context, holderKind model.EntityKind, a model.Association) error {
	return t.insert(ctx, shadowTable(holderKind), assocColumns, assocValues(a))
}

func (t *pgRecordTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "postgres: commit record tx")
	}
	return nil
}

func (t *pgRecordTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		return eris.Wrap(err, "postgres: rollback record tx")
	}
	return nil
}
