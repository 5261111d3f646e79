package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS categories (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE
);

CREATE TABLE IF NOT EXISTS travelers (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	given_name       TEXT NOT NULL,
	paternal_surname TEXT NOT NULL,
	maternal_surname TEXT,
	birth_date       TEXT NOT NULL,
	nationality      TEXT NOT NULL,
	category_id      INTEGER NOT NULL REFERENCES categories(id),
	email            TEXT NOT NULL UNIQUE,
	phone            TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS reservations (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	code          TEXT NOT NULL UNIQUE,
	holder_id     INTEGER NOT NULL REFERENCES travelers(id),
	contact_email TEXT NOT NULL DEFAULT '',
	contact_phone TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT 'confirmed',
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS reservation_travelers (
	reservation_id INTEGER NOT NULL REFERENCES reservations(id),
	traveler_id    INTEGER NOT NULL REFERENCES travelers(id),
	role           TEXT NOT NULL,
	seat           TEXT NOT NULL DEFAULT '',
	UNIQUE(reservation_id, traveler_id)
);

CREATE TABLE IF NOT EXISTS segments (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	origin        TEXT NOT NULL,
	destination   TEXT NOT NULL,
	flight_date   TEXT NOT NULL,
	trip_type     TEXT NOT NULL,
	airport       TEXT NOT NULL DEFAULT '',
	aircraft      TEXT NOT NULL DEFAULT '',
	lounge        TEXT NOT NULL DEFAULT '',
	gate          TEXT NOT NULL DEFAULT '',
	distance_km   REAL,
	flight_hours  REAL,
	wait_hours    REAL,
	customs_hours REAL,
	total_hours   REAL,
	base_fare     REAL,
	airport_fee   REAL,
	tax           REAL,
	discount      REAL,
	total_fare    REAL
);

CREATE TABLE IF NOT EXISTS reservation_segments (
	reservation_id INTEGER NOT NULL REFERENCES reservations(id),
	segment_id     INTEGER NOT NULL REFERENCES segments(id),
	leg_order      INTEGER NOT NULL,
	fare_class     TEXT NOT NULL DEFAULT '',
	UNIQUE(reservation_id, segment_id)
);

CREATE TABLE IF NOT EXISTS route_metrics (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	origin        TEXT NOT NULL,
	destination   TEXT NOT NULL,
	trip_type     TEXT,
	distance_km   REAL,
	flight_hours  REAL,
	wait_hours    REAL,
	customs_hours REAL,
	total_hours   REAL,
	base_fare     REAL,
	airport_fee   REAL,
	tax           REAL,
	discount      REAL,
	total_fare    REAL
);

CREATE TABLE IF NOT EXISTS route_summary (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	origin      TEXT NOT NULL,
	destination TEXT NOT NULL,
	trip_type   TEXT,
	distance_km REAL,
	total_hours REAL,
	total_fare  REAL
);

CREATE TABLE IF NOT EXISTS locations (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	name    TEXT NOT NULL UNIQUE COLLATE NOCASE,
	country TEXT NOT NULL,
	airport TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_route_metrics_pair ON route_metrics(origin, destination);
CREATE INDEX IF NOT EXISTS idx_route_summary_pair ON route_summary(origin, destination);
CREATE INDEX IF NOT EXISTS idx_res_travelers_res ON reservation_travelers(reservation_id);
CREATE INDEX IF NOT EXISTS idx_res_segments_res  ON reservation_segments(reservation_id);
`
