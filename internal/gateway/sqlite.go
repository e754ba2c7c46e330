package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/watchlist-cli/internal/db"
	"github.com/sells-group/watchlist-cli/internal/model"
)

// SQLite implements Gateway using modernc.org/sqlite. Used for local runs and
// integration tests; the connection pool is capped at one to match the
// single-connection discipline.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given DSN and configures WAL mode.
func NewSQLite(dsn string) (*SQLite, error) {
	handle, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	handle.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := handle.Exec(pragma); err != nil {
			_ = handle.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLite{db: handle}, nil
}

func (g *SQLite) Migrate(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, sqliteSchema); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

func (g *SQLite) Close() error {
	return g.db.Close()
}

func (g *SQLite) Begin(ctx context.Context) (RecordTx, error) {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin record tx")
	}
	return &liteRecordTx{tx: tx}, nil
}

func (g *SQLite) PersonExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := g.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM persons WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, eris.Wrapf(err, "sqlite: person exists %d", id)
	}
	return exists, nil
}

func (g *SQLite) DescriptionTypeExists(ctx context.Context, level int, id int64) (bool, error) {
	var exists bool
	err := g.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM description_types WHERE level = ? AND id = ?)`,
		level, id,
	).Scan(&exists)
	if err != nil {
		return false, eris.Wrapf(err, "sqlite: description type exists (%d,%d)", level, id)
	}
	return exists, nil
}

func (g *SQLite) upsert(ctx context.Context, table string, cols, conflict []string, vals []any) error {
	_, err := g.db.ExecContext(ctx, db.BuildUpsert(db.SQLite, table, cols, conflict), vals...)
	if err != nil {
		return eris.Wrapf(err, "sqlite: upsert %s", table)
	}
	return nil
}

func (g *SQLite) UpsertCountry(ctx context.Context, c model.Country) error {
	return g.upsert(ctx, "countries", countryColumns, codeConflict, []any{c.Code, c.Name, c.IsTerritory, c.ProfileURL})
}

func (g *SQLite) UpsertOccupation(ctx context.Context, o model.Occupation) error {
	return g.upsert(ctx, "occupations", occupationCols, codeConflict, []any{o.Code, o.Name})
}

func (g *SQLite) UpsertRelationship(ctx context.Context, r model.Relationship) error {
	return g.upsert(ctx, "relationships", relationshipCols, codeConflict, []any{r.Code, r.Name})
}

func (g *SQLite) UpsertSanctionsReference(ctx context.Context, r model.SanctionsReference) error {
	return g.upsert(ctx, "sanctions_references", sanctionsRefCols, codeConflict, []any{r.Code, r.Name, r.Status, r.Description2})
}

func (g *SQLite) UpsertDescriptionType(ctx context.Context, d model.DescriptionType) error {
	return g.upsert(ctx, "description_types", descTypeColumns, descTypeConflict, []any{d.Level, d.ID, d.ParentID, d.Text, d.RecordType})
}

func (g *SQLite) UpsertDateType(ctx context.Context, d model.DateType) error {
	return g.upsert(ctx, "date_types", dateTypeColumns, idConflict, []any{d.ID, d.Name})
}

func (g *SQLite) UpsertNameType(ctx context.Context, n model.NameType) error {
	return g.upsert(ctx, "name_types", nameTypeColumns, idConflict, []any{n.ID, n.Name, n.RecordType})
}

func (g *SQLite) UpsertRoleType(ctx context.Context, r model.RoleType) error {
	return g.upsert(ctx, "role_types", roleTypeColumns, idConflict, []any{r.ID, r.Name})
}

func (g *SQLite) StartRun(ctx context.Context, feedType model.FeedType, sourceFile string) (string, error) {
	id := uuid.New().String()
	_, err := g.db.ExecContext(ctx,
		`INSERT INTO ingest_runs (id, feed_type, source_file, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, string(feedType), sourceFile, string(model.RunRunning), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: start run")
	}
	return id, nil
}

func (g *SQLite) CompleteRun(ctx context.Context, runID string, counts map[string]int64) error {
	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal run counts")
	}
	_, err = g.db.ExecContext(ctx,
		`UPDATE ingest_runs SET status = ?, completed_at = ?, counts = ? WHERE id = ?`,
		string(model.RunComplete), time.Now().UTC(), string(countsJSON), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete run %s", runID)
	}
	return nil
}

func (g *SQLite) FailRun(ctx context.Context, runID string, errMsg string) error {
	_, err := g.db.ExecContext(ctx,
		`UPDATE ingest_runs SET status = ?, completed_at = ?, error = ? WHERE id = ?`,
		string(model.RunFailed), time.Now().UTC(), errMsg, runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: fail run %s", runID)
	}
	return nil
}

func (g *SQLite) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT id, feed_type, source_file, status, started_at, completed_at, counts, error
		 FROM ingest_runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.Run
	for rows.Next() {
		var r model.Run
		var feedType, status string
		var countsJSON sql.NullString
		var completed sql.NullTime
		if err := rows.Scan(&r.ID, &feedType, &r.SourceFile, &status, &r.StartedAt, &completed, &countsJSON, &r.Error); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		r.FeedType = model.FeedType(feedType)
		r.Status = model.RunStatus(status)
		if completed.Valid {
			t := completed.Time
			r.CompletedAt = &t
		}
		if countsJSON.Valid && countsJSON.String != "" {
			if err := json.Unmarshal([]byte(countsJSON.String), &r.Counts); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal run counts")
			}
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// liteRecordTx implements RecordTx over a database/sql transaction.
type liteRecordTx struct {
	tx *sql.Tx
}

func (t *liteRecordTx) exec(ctx context.Context, sqlText string, vals []any) error {
	_, err := t.tx.ExecContext(ctx, sqlText, vals...)
	return err
}

func (t *liteRecordTx) upsert(ctx context.Context, table string, cols, conflict []string, vals []any) error {
	if err := t.exec(ctx, db.BuildUpsert(db.SQLite, table, cols, conflict), vals); err != nil {
		return eris.Wrapf(err, "sqlite: upsert %s", table)
	}
	return nil
}

func (t *liteRecordTx) insert(ctx context.Context, table string, cols []string, vals []any) error {
	if err := t.exec(ctx, db.BuildInsert(db.SQLite, table, cols), vals); err != nil {
		return eris.Wrapf(err, "sqlite: insert %s", table)
	}
	return nil
}

func (t *liteRecordTx) UpsertPerson(ctx context.Context, p *model.Person) error {
	return t.upsert(ctx, "persons", personColumns, personConflict, personValues(p))
}

func (t *liteRecordTx) UpsertEntity(ctx context.Context, e *model.Entity) error {
	return t.upsert(ctx, "entities", entityColumns, entityConflict, entityValues(e))
}

func (t *liteRecordTx) DeleteChildren(ctx context.Context, owner model.OwnerRef) error {
	for _, table := range ownedChildTables {
		sqlText := db.BuildDelete(db.SQLite, table, ownerKeyColumns)
		if err := t.exec(ctx, sqlText, []any{string(owner.Kind), owner.ID}); err != nil {
			return eris.Wrapf(err, "sqlite: clear %s", table)
		}
	}
	if owner.Kind == model.KindPerson {
		for _, table := range personChildTables {
			sqlText := db.BuildDelete(db.SQLite, table, []string{"person_id"})
			if err := t.exec(ctx, sqlText, []any{owner.ID}); err != nil {
				return eris.Wrapf(err, "sqlite: clear %s", table)
			}
		}
	}
	if owner.Kind == model.KindEntity {
		sqlText := db.BuildDelete(db.SQLite, "entity_vessels", []string{"entity_id"})
		if err := t.exec(ctx, sqlText, []any{owner.ID}); err != nil {
			return eris.Wrap(err, "sqlite: clear entity_vessels")
		}
	}
	return nil
}

func (t *liteRecordTx) InsertName(ctx context.Context, owner model.OwnerRef, n model.Name) error {
	return t.insert(ctx, "record_names", nameColumns, nameValues(owner, n))
}

func (t *liteRecordTx) InsertDescription(ctx context.Context, owner model.OwnerRef, d model.Description) error {
	return t.insert(ctx, "record_descriptions", descColumns, descValues(owner, d))
}

func (t *liteRecordTx) InsertRole(ctx context.Context, personID int64, r model.Role) error {
	return t.insert(ctx, "person_roles", roleColumns, roleValues(personID, r))
}

func (t *liteRecordTx) InsertDate(ctx context.Context, owner model.OwnerRef, d model.DateDetail) error {
	return t.insert(ctx, "record_dates", dateColumns, dateValues(owner, d))
}

func (t *liteRecordTx) InsertAddress(ctx context.Context, owner model.OwnerRef, a model.Address) error {
	return t.insert(ctx, "record_addresses", addressColumns, addressValues(owner, a))
}

func (t *liteRecordTx) InsertDocument(ctx context.Context, personID int64, d model.Document) error {
	return t.insert(ctx, "person_documents", documentColumns, documentValues(personID, d))
}

func (t *liteRecordTx) InsertImage(ctx context.Context, owner model.OwnerRef, i model.Image) error {
	return t.insert(ctx, "record_images", imageColumns, imageValues(owner, i))
}

func (t *liteRecordTx) InsertBirthPlace(ctx context.Context, personID int64, b model.BirthPlace) error {
	return t.insert(ctx, "person_birth_places", birthColumns, birthValues(personID, b))
}

func (t *liteRecordTx) InsertSanction(ctx context.Context, owner model.OwnerRef, s model.SanctionLink) error {
	return t.insert(ctx, "record_sanctions", sanctionColumns, sanctionValues(owner, s))
}

func (t *liteRecordTx) InsertSource(ctx context.Context, owner model.OwnerRef, s model.SourceLink) error {
	return t.insert(ctx, "record_sources", sourceColumns, sourceValues(owner, s))
}

func (t *liteRecordTx) InsertVessel(ctx context.Context, entityID int64, v model.Vessel) error {
	return t.insert(ctx, "entity_vessels", vesselColumns, vesselValues(entityID, v))
}

func (t *liteRecordTx) DeleteAssociations(ctx context.Context, holder model.OwnerRef) error {
	for _, table := range []string{"associations", shadowTable(holder.Kind)} {
		sqlText := db.BuildDelete(db.SQLite, table, assocKeyColumns)
		if err := t.exec(ctx, sqlText, []any{holder.ID, string(holder.Kind)}); err != nil {
			return eris.Wrapf(err, "sqlite: clear %s", table)
		}
	}
	return nil
}

func (t *liteRecordTx) InsertAssociation(ctx context.Context, a model.Association) error {
	return t.insert(ctx, "associations", assocColumns, assocValues(a))
}

func (t *liteRecordTx) InsertShadowAssociation(ctx context.Context, holderKind model.EntityKind, a model.Association) error {
	return t.insert(ctx, shadowTable(holderKind), assocColumns, assocValues(a))
}

func (t *liteRecordTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: commit record tx")
	}
	return nil
}

func (t *liteRecordTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil {
		return eris.Wrap(err, "sqlite: rollback record tx")
	}
	return nil
}
