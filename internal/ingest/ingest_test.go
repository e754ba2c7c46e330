package ingest

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/sells-group/watchlist-cli/internal/gateway"
	"github.com/sells-group/watchlist-cli/internal/model"
)

const sampleFeed = `<Feed>
  <CountryName code="CH" name="Switzerland"/>
  <Person id="100" action="add">
    <NameDetails>
      <Name NameType="Primary Name">
        <NameValue><FirstName>Jane</FirstName><Surname>Doe</Surname></NameValue>
      </Name>
    </NameDetails>
  </Person>
  <Entity id="500" action="add">
    <ActiveStatus>Active</ActiveStatus>
  </Entity>
  <PublicFigure id="200">
    <Associate id="100" code="1"/>
  </PublicFigure>
</Feed>`

// countingOpener opens a migrated file-backed sqlite gateway and counts
// acquisitions.
type countingOpener struct {
	dbPath string
	opens  int
}

func (c *countingOpener) open(ctx context.Context) (gateway.Gateway, error) {
	c.opens++
	g, err := gateway.NewSQLite(c.dbPath)
	if err != nil {
		return nil, err
	}
	if err := g.Migrate(ctx); err != nil {
		_ = g.Close()
		return nil, err
	}
	return g, nil
}

func writeFeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "full_feed.xml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func openReader(t *testing.T, dbPath string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func count(t *testing.T, db *sql.DB, query string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query).Scan(&n))
	return n
}

func TestRunEndToEnd(t *testing.T) {
	feedPath := writeFeed(t, sampleFeed)
	opener := &countingOpener{dbPath: filepath.Join(t.TempDir(), "watchlist.db")}

	o := New(Options{
		FilePath:  feedPath,
		FeedType:  model.FeedFull,
		MaxSizeGB: 10,
	}, opener.open)

	summary, err := o.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 1, opener.opens)
	assert.Equal(t, StateClosed, o.State())
	assert.Equal(t, int64(4), summary.Elements)
	assert.Equal(t, int64(0), summary.FailedRecords)
	assert.Equal(t, int64(1), summary.Counts["person"])
	assert.Equal(t, int64(1), summary.Counts["entity"])
	assert.Equal(t, int64(1), summary.Counts["public_figure"])
	assert.Greater(t, summary.ElementsPerSec, 0.0)

	db := openReader(t, opener.dbPath)
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM persons`))
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM entities`))
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM associations`))
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM public_figure_associations`))

	// The run is on record as complete.
	var status string
	require.NoError(t, db.QueryRow(`SELECT status FROM ingest_runs`).Scan(&status))
	assert.Equal(t, "complete", status)
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	feedPath := writeFeed(t, sampleFeed)
	opener := &countingOpener{dbPath: filepath.Join(t.TempDir(), "watchlist.db")}

	for range 2 {
		o := New(Options{FilePath: feedPath, FeedType: model.FeedFull}, opener.open)
		_, err := o.Run(context.Background())
		require.NoError(t, err)
	}

	db := openReader(t, opener.dbPath)
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM persons`))
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM record_names`))
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM associations`))
	assert.Equal(t, 2, count(t, db, `SELECT COUNT(*) FROM ingest_runs`))
}

func TestOversizeFileRejectedBeforeGatewayOpen(t *testing.T) {
	feedPath := writeFeed(t, sampleFeed)
	opener := &countingOpener{dbPath: filepath.Join(t.TempDir(), "watchlist.db")}

	o := New(Options{
		FilePath:  feedPath,
		FeedType:  model.FeedFull,
		MaxSizeGB: 0.0000001, // a few hundred bytes
	}, opener.open)

	_, err := o.Run(context.Background())
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, 0, opener.opens, "no connection may be acquired before validation passes")
}

func TestMissingFileRejected(t *testing.T) {
	opener := &countingOpener{dbPath: filepath.Join(t.TempDir(), "watchlist.db")}

	o := New(Options{
		FilePath: filepath.Join(t.TempDir(), "absent.xml"),
		FeedType: model.FeedFull,
	}, opener.open)

	_, err := o.Run(context.Background())
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, 0, opener.opens)
}

func TestMalformedFeedAbortsAndRecordsFailure(t *testing.T) {
	feedPath := writeFeed(t, `<Feed><Person id="1">`) // truncated
	opener := &countingOpener{dbPath: filepath.Join(t.TempDir(), "watchlist.db")}

	o := New(Options{FilePath: feedPath, FeedType: model.FeedFull}, opener.open)

	_, err := o.Run(context.Background())
	require.Error(t, err)
	assert.False(t, IsValidation(err))

	db := openReader(t, opener.dbPath)
	var status string
	require.NoError(t, db.QueryRow(`SELECT status FROM ingest_runs`).Scan(&status))
	assert.Equal(t, "failed", status)
}

func TestSkipValidationAllowsMissingSizeCheck(t *testing.T) {
	feedPath := writeFeed(t, sampleFeed)
	opener := &countingOpener{dbPath: filepath.Join(t.TempDir(), "watchlist.db")}

	o := New(Options{
		FilePath:       feedPath,
		FeedType:       model.FeedFull,
		MaxSizeGB:      0.0000001,
		SkipValidation: true,
	}, opener.open)

	_, err := o.Run(context.Background())
	require.NoError(t, err)
}
