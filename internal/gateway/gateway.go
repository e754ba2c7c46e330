// Package gateway is the persistence layer: idempotent upserts per entity
// kind, child inserts, and the per-record transaction boundary, over a single
// shared connection. Two drivers are provided, selected by config: postgres
// (pgx) and sqlite (modernc.org/sqlite).
package gateway

import (
	"context"

	"github.com/sells-group/watchlist-cli/internal/model"
)

// Gateway exposes the persistence operations the dispatchers consume.
// Vocabulary upserts are single statements and autocommit; record writes go
// through Begin.
type Gateway interface {
	Migrate(ctx context.Context) error
	Close() error

	// Begin opens one record transaction. The record transaction is the
	// atomicity boundary: one top-level record, never the whole file.
	Begin(ctx context.Context) (RecordTx, error)

	// PersonExists reports whether a person with the feed-assigned ID has
	// been persisted. Association kind resolution depends on it.
	PersonExists(ctx context.Context, id int64) (bool, error)

	// DescriptionTypeExists reports whether the (level, id) node is present.
	DescriptionTypeExists(ctx context.Context, level int, id int64) (bool, error)

	UpsertCountry(ctx context.Context, c model.Country) error
	UpsertOccupation(ctx context.Context, o model.Occupation) error
	UpsertRelationship(ctx context.Context, r model.Relationship) error
	UpsertSanctionsReference(ctx context.Context, r model.SanctionsReference) error
	UpsertDescriptionType(ctx context.Context, d model.DescriptionType) error
	UpsertDateType(ctx context.Context, d model.DateType) error
	UpsertNameType(ctx context.Context, n model.NameType) error
	UpsertRoleType(ctx context.Context, r model.RoleType) error

	// Run log.
	StartRun(ctx context.Context, feedType model.FeedType, sourceFile string) (string, error)
	CompleteRun(ctx context.Context, runID string, counts map[string]int64) error
	FailRun(ctx context.Context, runID string, errMsg string) error
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
}

// RecordTx scopes all writes of one top-level record. Commit or Rollback
// must be called exactly once.
type RecordTx interface {
	UpsertPerson(ctx context.Context, p *model.Person) error
	UpsertEntity(ctx context.Context, e *model.Entity) error

	// DeleteChildren clears the owner's child collections so a re-ingest of
	// the same ID replaces rather than duplicates them.
	DeleteChildren(ctx context.Context, owner model.OwnerRef) error

	InsertName(ctx context.Context, owner model.OwnerRef, n model.Name) error
	InsertDescription(ctx context.Context, owner model.OwnerRef, d model.Description) error
	InsertRole(ctx context.Context, personID int64, r model.Role) error
	InsertDate(ctx context.Context, owner model.OwnerRef, d model.DateDetail) error
	InsertAddress(ctx context.Context, owner model.OwnerRef, a model.Address) error
	InsertDocument(ctx context.Context, personID int64, d model.Document) error
	InsertImage(ctx context.Context, owner model.OwnerRef, i model.Image) error
	InsertBirthPlace(ctx context.Context, personID int64, b model.BirthPlace) error
	InsertSanction(ctx context.Context, owner model.OwnerRef, s model.SanctionLink) error
	InsertSource(ctx context.Context, owner model.OwnerRef, s model.SourceLink) error
	InsertVessel(ctx context.Context, entityID int64, v model.Vessel) error

	// DeleteAssociations clears all edges held by one holder record before
	// its associate list is re-written.
	DeleteAssociations(ctx context.Context, holder model.OwnerRef) error
	InsertAssociation(ctx context.Context, a model.Association) error

	// InsertShadowAssociation writes the kind-specific duplicate of a generic
	// edge: public_figure_associations for person holders,
	// special_entity_associations for entity holders.
	InsertShadowAssociation(ctx context.Context, holderKind model.EntityKind, a model.Association) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
