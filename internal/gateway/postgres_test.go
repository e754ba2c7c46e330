package gateway

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/watchlist-cli/internal/model"
)

func newMockGateway(t *testing.T) (*Postgres, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresFromDB(mock), mock
}

func TestPostgresMigrate(t *testing.T) {
	g, mock := newMockGateway(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS persons").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, g.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpsertCountry(t *testing.T) {
	g, mock := newMockGateway(t)

	mock.ExpectExec(`INSERT INTO "countries"`).
		WithArgs("CHAD", "Chad", false, "https://example.com/chad").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := g.UpsertCountry(context.Background(), model.Country{
		Code:       "CHAD",
		Name:       "Chad",
		ProfileURL: "https://example.com/chad",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPersonExists(t *testing.T) {
	g, mock := newMockGateway(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := g.PersonExists(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecordTxCommit(t *testing.T) {
	g, mock := newMockGateway(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "persons"`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO "record_names"`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tx, err := g.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertPerson(ctx, &model.Person{ID: 1, Action: model.ActionAdd}))
	owner := model.OwnerRef{Kind: model.KindPerson, ID: 1}
	require.NoError(t, tx.InsertName(ctx, owner, model.Name{FirstName: "Jane", Surname: "Doe"}))
	require.NoError(t, tx.Commit(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecordTxRollbackOnFailure(t *testing.T) {
	g, mock := newMockGateway(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "persons"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	tx, err := g.Begin(ctx)
	require.NoError(t, err)
	require.Error(t, tx.UpsertPerson(ctx, &model.Person{ID: 2}))
	require.NoError(t, tx.Rollback(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteChildrenClearsAllTables(t *testing.T) {
	g, mock := newMockGateway(t)
	ctx := context.Background()

	mock.ExpectBegin()
	for range ownedChildTables {
		mock.ExpectExec(`DELETE FROM`).
			WithArgs(string(model.KindPerson), int64(7)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
	}
	for range personChildTables {
		mock.ExpectExec(`DELETE FROM`).
			WithArgs(int64(7)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
	}
	mock.ExpectCommit()

	tx, err := g.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DeleteChildren(ctx, model.OwnerRef{Kind: model.KindPerson, ID: 7}))
	require.NoError(t, tx.Commit(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRunLifecycle(t *testing.T) {
	g, mock := newMockGateway(t)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO ingest_runs").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE ingest_runs").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	id, err := g.StartRun(ctx, model.FeedFull, "/tmp/full.xml")
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.NoError(t, g.CompleteRun(ctx, id, map[string]int64{"persons": 10}))

	assert.NoError(t, mock.ExpectationsWereMet())
}
