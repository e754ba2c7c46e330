package gateway

// The two DDL scripts differ only in type names (TIMESTAMPTZ/JSONB vs
// DATETIME/TEXT). Table and column names must stay aligned with tables.go.

const postgresSchema = `
CREATE TABLE IF NOT EXISTS persons (
	id            BIGINT PRIMARY KEY,
	action        TEXT NOT NULL DEFAULT '',
	as_of_date    TIMESTAMPTZ,
	gender        TEXT NOT NULL DEFAULT '',
	active_status TEXT NOT NULL DEFAULT '',
	deceased      BOOLEAN NOT NULL DEFAULT FALSE,
	profile_notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS entities (
	id            BIGINT PRIMARY KEY,
	action        TEXT NOT NULL DEFAULT '',
	as_of_date    TIMESTAMPTZ,
	active_status TEXT NOT NULL DEFAULT '',
	entity_kind   TEXT NOT NULL DEFAULT '',
	profile_notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS record_names (
	owner_kind      TEXT NOT NULL,
	owner_id        BIGINT NOT NULL,
	name_type       TEXT NOT NULL DEFAULT '',
	title_hon       TEXT NOT NULL DEFAULT '',
	first_name      TEXT NOT NULL DEFAULT '',
	middle_name     TEXT NOT NULL DEFAULT '',
	surname         TEXT NOT NULL DEFAULT '',
	maiden_name     TEXT NOT NULL DEFAULT '',
	suffix          TEXT NOT NULL DEFAULT '',
	entity_name     TEXT NOT NULL DEFAULT '',
	original_script TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS record_descriptions (
	owner_kind TEXT NOT NULL,
	owner_id   BIGINT NOT NULL,
	level1     BIGINT,
	level2     BIGINT,
	level3     BIGINT
);

CREATE TABLE IF NOT EXISTS record_dates (
	owner_kind TEXT NOT NULL,
	owner_id   BIGINT NOT NULL,
	date_type  TEXT NOT NULL DEFAULT '',
	date_value TIMESTAMPTZ,
	notes      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS record_addresses (
	owner_kind   TEXT NOT NULL,
	owner_id     BIGINT NOT NULL,
	line         TEXT NOT NULL DEFAULT '',
	city         TEXT NOT NULL DEFAULT '',
	province     TEXT NOT NULL DEFAULT '',
	postal_code  TEXT NOT NULL DEFAULT '',
	country_code TEXT NOT NULL DEFAULT '',
	url          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS record_images (
	owner_kind TEXT NOT NULL,
	owner_id   BIGINT NOT NULL,
	url        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS record_sanctions (
	owner_kind     TEXT NOT NULL,
	owner_id       BIGINT NOT NULL,
	reference_code BIGINT NOT NULL,
	since_date     TIMESTAMPTZ,
	to_date        TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS record_sources (
	owner_kind  TEXT NOT NULL,
	owner_id    BIGINT NOT NULL,
	source_name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS person_roles (
	person_id       BIGINT NOT NULL,
	role_type       TEXT NOT NULL DEFAULT '',
	occupation_code BIGINT,
	title           TEXT NOT NULL DEFAULT '',
	since_date      TIMESTAMPTZ,
	to_date         TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS person_documents (
	person_id   BIGINT NOT NULL,
	id_type     TEXT NOT NULL DEFAULT '',
	number      TEXT NOT NULL DEFAULT '',
	notes       TEXT NOT NULL DEFAULT '',
	issue_date  TIMESTAMPTZ,
	expiry_date TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS person_birth_places (
	person_id    BIGINT NOT NULL,
	place        TEXT NOT NULL DEFAULT '',
	country_code TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS entity_vessels (
	entity_id   BIGINT NOT NULL,
	call_sign   TEXT NOT NULL DEFAULT '',
	vessel_type TEXT NOT NULL DEFAULT '',
	tonnage     TEXT NOT NULL DEFAULT '',
	grt         TEXT NOT NULL DEFAULT '',
	owner_name  TEXT NOT NULL DEFAULT '',
	flag        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS associations (
	source_id         BIGINT NOT NULL,
	source_kind       TEXT NOT NULL,
	target_id         BIGINT NOT NULL,
	target_kind       TEXT NOT NULL,
	relationship_code BIGINT NOT NULL DEFAULT 0,
	is_former         BOOLEAN NOT NULL DEFAULT FALSE,
	since_date        TIMESTAMPTZ,
	to_date           TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS public_figure_associations (
	source_id         BIGINT NOT NULL,
	source_kind       TEXT NOT NULL,
	target_id         BIGINT NOT NULL,
	target_kind       TEXT NOT NULL,
	relationship_code BIGINT NOT NULL DEFAULT 0,
	is_former         BOOLEAN NOT NULL DEFAULT FALSE,
	since_date        TIMESTAMPTZ,
	to_date           TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS special_entity_associations (
	source_id         BIGINT NOT NULL,
	source_kind       TEXT NOT NULL,
	target_id         BIGINT NOT NULL,
	target_kind       TEXT NOT NULL,
	relationship_code BIGINT NOT NULL DEFAULT 0,
	is_former         BOOLEAN NOT NULL DEFAULT FALSE,
	since_date        TIMESTAMPTZ,
	to_date           TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS countries (
	code         TEXT PRIMARY KEY,
	name         TEXT NOT NULL DEFAULT '',
	is_territory BOOLEAN NOT NULL DEFAULT FALSE,
	profile_url  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS occupations (
	code BIGINT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS relationships (
	code BIGINT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sanctions_references (
	code            BIGINT PRIMARY KEY,
	name            TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT '',
	description2_id BIGINT
);

CREATE TABLE IF NOT EXISTS description_types (
	level       INT NOT NULL,
	id          BIGINT NOT NULL,
	parent_id   BIGINT,
	description TEXT NOT NULL DEFAULT '',
	record_type TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (level, id)
);

CREATE TABLE IF NOT EXISTS date_types (
	id   BIGINT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS name_types (
	id          BIGINT PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	record_type TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS role_types (
	id   BIGINT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS ingest_runs (
	id           TEXT PRIMARY KEY,
	feed_type    TEXT NOT NULL,
	source_file  TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT 'running',
	started_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at TIMESTAMPTZ,
	counts       JSONB,
	error        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_record_names_owner ON record_names(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_record_descriptions_owner ON record_descriptions(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_record_dates_owner ON record_dates(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_record_addresses_owner ON record_addresses(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_record_images_owner ON record_images(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_record_sanctions_owner ON record_sanctions(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_record_sources_owner ON record_sources(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_person_roles_person ON person_roles(person_id);
CREATE INDEX IF NOT EXISTS idx_person_documents_person ON person_documents(person_id);
CREATE INDEX IF NOT EXISTS idx_person_birth_places_person ON person_birth_places(person_id);
CREATE INDEX IF NOT EXISTS idx_entity_vessels_entity ON entity_vessels(entity_id);
CREATE INDEX IF NOT EXISTS idx_associations_source ON associations(source_id, source_kind);
CREATE INDEX IF NOT EXISTS idx_pf_associations_source ON public_figure_associations(source_id, source_kind);
CREATE INDEX IF NOT EXISTS idx_se_associations_source ON special_entity_associations(source_id, source_kind);
CREATE INDEX IF NOT EXISTS idx_ingest_runs_started ON ingest_runs(started_at);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS persons (
	id            INTEGER PRIMARY KEY,
	action        TEXT NOT NULL DEFAULT '',
	as_of_date    DATETIME,
	gender        TEXT NOT NULL DEFAULT '',
	active_status TEXT NOT NULL DEFAULT '',
	deceased      BOOLEAN NOT NULL DEFAULT 0,
	profile_notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS entities (
	id            INTEGER PRIMARY KEY,
	action        TEXT NOT NULL DEFAULT '',
	as_of_date    DATETIME,
	active_status TEXT NOT NULL DEFAULT '',
	entity_kind   TEXT NOT NULL DEFAULT '',
	profile_notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS record_names (
	owner_kind      TEXT NOT NULL,
	owner_id        INTEGER NOT NULL,
	name_type       TEXT NOT NULL DEFAULT '',
	title_hon       TEXT NOT NULL DEFAULT '',
	first_name      TEXT NOT NULL DEFAULT '',
	middle_name     TEXT NOT NULL DEFAULT '',
	surname         TEXT NOT NULL DEFAULT '',
	maiden_name     TEXT NOT NULL DEFAULT '',
	suffix          TEXT NOT NULL DEFAULT '',
	entity_name     TEXT NOT NULL DEFAULT '',
	original_script TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS record_descriptions (
	owner_kind TEXT NOT NULL,
	owner_id   INTEGER NOT NULL,
	level1     INTEGER,
	level2     INTEGER,
	level3     INTEGER
);

CREATE TABLE IF NOT EXISTS record_dates (
	owner_kind TEXT NOT NULL,
	owner_id   INTEGER NOT NULL,
	date_type  TEXT NOT NULL DEFAULT '',
	date_value DATETIME,
	notes      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS record_addresses (
	owner_kind   TEXT NOT NULL,
	owner_id     INTEGER NOT NULL,
	line         TEXT NOT NULL DEFAULT '',
	city         TEXT NOT NULL DEFAULT '',
	province     TEXT NOT NULL DEFAULT '',
	postal_code  TEXT NOT NULL DEFAULT '',
	country_code TEXT NOT NULL DEFAULT '',
	url          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS record_images (
	owner_kind TEXT NOT NULL,
	owner_id   INTEGER NOT NULL,
	url        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS record_sanctions (
	owner_kind     TEXT NOT NULL,
	owner_id       INTEGER NOT NULL,
	reference_code INTEGER NOT NULL,
	since_date     DATETIME,
	to_date        DATETIME
);

CREATE TABLE IF NOT EXISTS record_sources (
	owner_kind  TEXT NOT NULL,
	owner_id    INTEGER NOT NULL,
	source_name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS person_roles (
	person_id       INTEGER NOT NULL,
	role_type       TEXT NOT NULL DEFAULT '',
	occupation_code INTEGER,
	title           TEXT NOT NULL DEFAULT '',
	since_date      DATETIME,
	to_date         DATETIME
);

CREATE TABLE IF NOT EXISTS person_documents (
	person_id   INTEGER NOT NULL,
	id_type     TEXT NOT NULL DEFAULT '',
	number      TEXT NOT NULL DEFAULT '',
	notes       TEXT NOT NULL DEFAULT '',
	issue_date  DATETIME,
	expiry_date DATETIME
);

CREATE TABLE IF NOT EXISTS person_birth_places (
	person_id    INTEGER NOT NULL,
	place        TEXT NOT NULL DEFAULT '',
	country_code TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS entity_vessels (
	entity_id   INTEGER NOT NULL,
	call_sign   TEXT NOT NULL DEFAULT '',
	vessel_type TEXT NOT NULL DEFAULT '',
	tonnage     TEXT NOT NULL DEFAULT '',
	grt         TEXT NOT NULL DEFAULT '',
	owner_name  TEXT NOT NULL DEFAULT '',
	flag        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS associations (
	source_id         INTEGER NOT NULL,
	source_kind       TEXT NOT NULL,
	target_id         INTEGER NOT NULL,
	target_kind       TEXT NOT NULL,
	relationship_code INTEGER NOT NULL DEFAULT 0,
	is_former         BOOLEAN NOT NULL DEFAULT 0,
	since_date        DATETIME,
	to_date           DATETIME
);

CREATE TABLE IF NOT EXISTS public_figure_associations (
	source_id         INTEGER NOT NULL,
	source_kind       TEXT NOT NULL,
	target_id         INTEGER NOT NULL,
	target_kind       TEXT NOT NULL,
	relationship_code INTEGER NOT NULL DEFAULT 0,
	is_former         BOOLEAN NOT NULL DEFAULT 0,
	since_date        DATETIME,
	to_date           DATETIME
);

CREATE TABLE IF NOT EXISTS special_entity_associations (
	source_id         INTEGER NOT NULL,
	source_kind       TEXT NOT NULL,
	target_id         INTEGER NOT NULL,
	target_kind       TEXT NOT NULL,
	relationship_code INTEGER NOT NULL DEFAULT 0,
	is_former         BOOLEAN NOT NULL DEFAULT 0,
	since_date        DATETIME,
	to_date           DATETIME
);

CREATE TABLE IF NOT EXISTS countries (
	code         TEXT PRIMARY KEY,
	name         TEXT NOT NULL DEFAULT '',
	is_territory BOOLEAN NOT NULL DEFAULT 0,
	profile_url  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS occupations (
	code INTEGER PRIMARY KEY,
	name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS relationships (
	code INTEGER PRIMARY KEY,
	name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sanctions_references (
	code            INTEGER PRIMARY KEY,
	name            TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT '',
	description2_id INTEGER
);

CREATE TABLE IF NOT EXISTS description_types (
	level       INTEGER NOT NULL,
	id          INTEGER NOT NULL,
	parent_id   INTEGER,
	description TEXT NOT NULL DEFAULT '',
	record_type TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (level, id)
);

CREATE TABLE IF NOT EXISTS date_types (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS name_types (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	record_type TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS role_types (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS ingest_runs (
	id           TEXT PRIMARY KEY,
	feed_type    TEXT NOT NULL,
	source_file  TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT 'running',
	started_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	completed_at DATETIME,
	counts       TEXT,
	error        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_record_names_owner ON record_names(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_record_descriptions_owner ON record_descriptions(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_record_dates_owner ON record_dates(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_record_addresses_owner ON record_addresses(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_record_images_owner ON record_images(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_record_sanctions_owner ON record_sanctions(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_record_sources_owner ON record_sources(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_person_roles_person ON person_roles(person_id);
CREATE INDEX IF NOT EXISTS idx_person_documents_person ON person_documents(person_id);
CREATE INDEX IF NOT EXISTS idx_person_birth_places_person ON person_birth_places(person_id);
CREATE INDEX IF NOT EXISTS idx_entity_vessels_entity ON entity_vessels(entity_id);
CREATE INDEX IF NOT EXISTS idx_associations_source ON associations(source_id, source_kind);
CREATE INDEX IF NOT EXISTS idx_pf_associations_source ON public_figure_associations(source_id, source_kind);
CREATE INDEX IF NOT EXISTS idx_se_associations_source ON special_entity_associations(source_id, source_kind);
CREATE INDEX IF NOT EXISTS idx_ingest_runs_started ON ingest_runs(started_at);
`
