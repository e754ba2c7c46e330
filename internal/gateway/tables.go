package gateway

import "github.com/sells-group/watchlist-cli/internal/model"

// Column specs and argument builders shared by both drivers. The SQL text is
// produced from these by internal/db per dialect.

var (
	personColumns   = []string{"id", "action", "as_of_date", "gender", "active_status", "deceased", "profile_notes"}
	personConflict  = []string{"id"}
	entityColumns   = []string{"id", "action", "as_of_date", "active_status", "entity_kind", "profile_notes"}
	entityConflict  = []string{"id"}
	nameColumns     = []string{"owner_kind", "owner_id", "name_type", "title_hon", "first_name", "middle_name", "surname", "maiden_name", "suffix", "entity_name", "original_script"}
	descColumns     = []string{"owner_kind", "owner_id", "level1", "level2", "level3"}
	roleColumns     = []string{"person_id", "role_type", "occupation_code", "title", "since_date", "to_date"}
	dateColumns     = []string{"owner_kind", "owner_id", "date_type", "date_value", "notes"}
	addressColumns  = []string{"owner_kind", "owner_id", "line", "city", "province", "postal_code", "country_code", "url"}
	documentColumns = []string{"person_id", "id_type", "number", "notes", "issue_date", "expiry_date"}
	imageColumns    = []string{"owner_kind", "owner_id", "url"}
	birthColumns    = []string{"person_id", "place", "country_code"}
	sanctionColumns = []string{"owner_kind", "owner_id", "reference_code", "since_date", "to_date"}
	sourceColumns   = []string{"owner_kind", "owner_id", "source_name"}
	vesselColumns   = []string{"entity_id", "call_sign", "vessel_type", "tonnage", "grt", "owner_name", "flag"}
	assocColumns    = []string{"source_id", "source_kind", "target_id", "target_kind", "relationship_code", "is_former", "since_date", "to_date"}
	ownerKeyColumns = []string{"owner_kind", "owner_id"}
	assocKeyColumns = []string{"source_id", "source_kind"}
)

// ownedChildTables are cleared per owner by DeleteChildren.
var ownedChildTables = []string{
	"record_names",
	"record_descriptions",
	"record_dates",
	"record_addresses",
	"record_images",
	"record_sanctions",
	"record_sources",
}

// personChildTables are additionally cleared for person owners.
var personChildTables = []string{
	"person_roles",
	"person_documents",
	"person_birth_places",
}

// shadowTable maps the holder kind to its shadow-edge table.
func shadowTable(holderKind model.EntityKind) string {
	if holderKind == model.KindPerson {
		return "public_figure_associations"
	}
	return "special_entity_associations"
}

func personValues(p *model.Person) []any {
	return []any{p.ID, string(p.Action), p.Date, p.Gender, p.ActiveStatus, p.Deceased, p.ProfileNotes}
}

func entityValues(e *model.Entity) []any {
	return []any{e.ID, string(e.Action), e.Date, e.ActiveStatus, e.EntityKind, e.ProfileNotes}
}

func nameValues(owner model.OwnerRef, n model.Name) []any {
	return []any{string(owner.Kind), owner.ID, n.NameType, n.TitleHon, n.FirstName, n.MiddleName, n.Surname, n.MaidenName, n.Suffix, n.EntityName, n.OriginalScript}
}

func descValues(owner model.OwnerRef, d model.Description) []any {
	return []any{string(owner.Kind), owner.ID, d.Level1, d.Level2, d.Level3}
}

func roleValues(personID int64, r model.Role) []any {
	return []any{personID, r.RoleType, r.OccupationCode, r.Title, r.SinceDate, r.ToDate}
}

func dateValues(owner model.OwnerRef, d model.DateDetail) []any {
	return []any{string(owner.Kind), owner.ID, d.DateType, d.Date, d.Notes}
}

func addressValues(owner model.OwnerRef, a model.Address) []any {
	return []any{string(owner.Kind), owner.ID, a.Line, a.City, a.Province, a.PostalCode, a.CountryCode, a.URL}
}

func documentValues(personID int64, d model.Document) []any {
	return []any{personID, d.IDType, d.Number, d.Notes, d.IssueDate, d.ExpiryDate}
}

func imageValues(owner model.OwnerRef, i model.Image) []any {
	return []any{string(owner.Kind), owner.ID, i.URL}
}

func birthValues(personID int64, b model.BirthPlace) []any {
	return []any{personID, b.Place, b.CountryCode}
}

func sanctionValues(owner model.OwnerRef, s model.SanctionLink) []any {
	return []any{string(owner.Kind), owner.ID, s.ReferenceCode, s.SinceDate, s.ToDate}
}

func sourceValues(owner model.OwnerRef, s model.SourceLink) []any {
	return []any{string(owner.Kind), owner.ID, s.Name}
}

func vesselValues(entityID int64, v model.Vessel) []any {
	return []any{entityID, v.CallSign, v.VesselType, v.Tonnage, v.GRT, v.Owner, v.Flag}
}

func assocValues(a model.Association) []any {
	return []any{a.SourceID, string(a.SourceKind), a.TargetID, string(a.TargetKind), a.RelationshipCode, a.IsFormer, a.SinceDate, a.ToDate}
}

// Vocabulary specs.
var (
	countryColumns   = []string{"code", "name", "is_territory", "profile_url"}
	occupationCols   = []string{"code", "name"}
	relationshipCols = []string{"code", "name"}
	sanctionsRefCols = []string{"code", "name", "status", "description2_id"}
	descTypeColumns  = []string{"level", "id", "parent_id", "description", "record_type"}
	descTypeConflict = []string{"level", "id"}
	dateTypeColumns  = []string{"id", "name"}
	nameTypeColumns  = []string{"id", "name", "record_type"}
	roleTypeColumns  = []string{"id", "name"}
	codeConflict     = []string{"code"}
	idConflict       = []string{"id"}
)
