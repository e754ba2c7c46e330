// Package model defines the records produced by the feed dispatchers and
// persisted through the gateway.
package model

import "time"

// EntityKind distinguishes the two endpoint kinds a watchlist record can have.
type EntityKind string

const (
	KindPerson EntityKind = "PERSON"
	KindEntity EntityKind = "ENTITY"
)

// FeedType identifies which flavor of feed file is being ingested.
type FeedType string

const (
	FeedFull        FeedType = "full"
	FeedDelta       FeedType = "delta"
	FeedIncremental FeedType = "incremental"
)

// ValidFeedType reports whether s names a known feed type.
func ValidFeedType(s string) bool {
	switch FeedType(s) {
	case FeedFull, FeedDelta, FeedIncremental:
		return true
	}
	return false
}

// ActionCode is the lifecycle action declared on a record. It is metadata
// only; nothing is ever hard-deleted on its account.
type ActionCode string

const (
	ActionAdd    ActionCode = "add"
	ActionAmend  ActionCode = "amend"
	ActionDelete ActionCode = "del"
)

// OwnerRef identifies the parent a child row belongs to.
type OwnerRef struct {
	Kind EntityKind
	ID   int64
}

// Person is a sanctioned individual with its child collections.
type Person struct {
	ID           int64
	Action       ActionCode
	Date         *time.Time
	Gender       string
	ActiveStatus string
	Deceased     bool
	ProfileNotes string

	Names        []Name
	Descriptions []Description
	Roles        []Role
	Dates        []DateDetail
	Addresses    []Address
	Documents    []Document
	Images       []Image
	BirthPlaces  []BirthPlace
	Sanctions    []SanctionLink
	Sources      []SourceLink
}

// Entity is a sanctioned organization with its child collections.
type Entity struct {
	ID           int64
	Action       ActionCode
	Date         *time.Time
	ActiveStatus string
	EntityKind   string
	ProfileNotes string

	Names        []Name
	Descriptions []Description
	Dates        []DateDetail
	Addresses    []Address
	Images       []Image
	Sanctions    []SanctionLink
	Sources      []SourceLink
	Vessels      []Vessel
}

// Name is one name variant attached to a person or entity.
type Name struct {
	NameType   string
	TitleHon   string
	FirstName  string
	MiddleName string
	Surname    string
	MaidenName string
	Suffix     string
	EntityName string
	// OriginalScript carries the non-Latin rendering when the feed has one.
	OriginalScript string
}

// Description is a three-level classification link.
type Description struct {
	Level1 *int64
	Level2 *int64
	Level3 *int64
}

// Role is a held position; person records only.
type Role struct {
	RoleType       string
	OccupationCode *int64
	Title          string
	SinceDate      *time.Time
	ToDate         *time.Time
}

// DateDetail is one typed date attached to a record.
type DateDetail struct {
	DateType string
	Date     *time.Time
	// Notes carries a free-text qualifier such as "circa".
	Notes string
}

// Address is one postal address attached to a record.
type Address struct {
	Line        string
	City        string
	Province    string
	PostalCode  string
	CountryCode string
	URL         string
}

// Document is one identity document; person records only.
type Document struct {
	IDType     string
	Number     string
	Notes      string
	IssueDate  *time.Time
	ExpiryDate *time.Time
}

// Image is a URL reference to a published photograph.
type Image struct {
	URL string
}

// BirthPlace is a place of birth; person records only.
type BirthPlace struct {
	Place       string
	CountryCode string
}

// SanctionLink ties a record to a sanctions reference list.
type SanctionLink struct {
	ReferenceCode int64
	SinceDate     *time.Time
	ToDate        *time.Time
}

// SourceLink ties a record to a published information source.
type SourceLink struct {
	Name string
}

// Vessel holds ship particulars; entity records only.
type Vessel struct {
	CallSign   string
	VesselType string
	Tonnage    string
	GRT        string
	Owner      string
	Flag       string
}

// Association is a typed, directed edge between two watchlist records. The
// target kind is resolved by lookup against already-persisted persons, not by
// the feed's declaration.
type Association struct {
	SourceID         int64
	SourceKind       EntityKind
	TargetID         int64
	TargetKind       EntityKind
	RelationshipCode int64
	IsFormer         bool
	SinceDate        *time.Time
	ToDate           *time.Time
}

// Vocabulary records. All are append-only dimensions keyed by feed-assigned
// code; upserts update the display name only.

type Country struct {
	Code        string
	Name        string
	IsTerritory bool
	ProfileURL  string
}

type Occupation struct {
	Code int64
	Name string
}

type Relationship struct {
	Code int64
	Name string
}

// SanctionsReference may point into the DescriptionType tree; the pointer is
// nulled when the target node has not been seen yet.
type SanctionsReference struct {
	Code         int64
	Name         string
	Status       string
	Description2 *int64
}

// DescriptionType is one node of the three-level classification tree, keyed
// by (Level, ID). ParentID points one level up and is nil at level 1.
type DescriptionType struct {
	Level    int
	ID       int64
	ParentID *int64
	Text     string
	// RecordType scopes the node to Person or Entity records where the feed
	// declares one.
	RecordType string
}

type DateType struct {
	ID   int64
	Name string
}

type NameType struct {
	ID         int64
	Name       string
	RecordType string
}

type RoleType struct {
	ID   int64
	Name string
}

// RunStatus tracks an ingest run in the run log.
type RunStatus string

const (
	RunRunning  RunStatus = "running"
	RunComplete RunStatus = "complete"
	RunFailed   RunStatus = "failed"
)

// Run is one row of the ingest run log.
type Run struct {
	ID          string
	FeedType    FeedType
	SourceFile  string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Counts      map[string]int64
	Error       string
}
