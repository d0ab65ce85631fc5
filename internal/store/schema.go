package store

// supportedDatabaseVersion is baked into the writer; any non-empty
// database whose meta[storage_version] differs is refused. The exact
// integer is arbitrary — spec.md leaves it unspecified and only
// requires it be refused-on-mismatch.
const supportedDatabaseVersion = 25

// SupportedDatabaseVersion returns the storage_version this package
// requires of any non-empty database it opens.
func SupportedDatabaseVersion() int {
	return supportedDatabaseVersion
}

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS meta(
	id INTEGER,
	key TEXT,
	value TEXT,
	PRIMARY KEY(id)
);

CREATE TABLE IF NOT EXISTS element(
	id INTEGER,
	PRIMARY KEY(id)
);

CREATE TABLE IF NOT EXISTS edge(
	id INTEGER NOT NULL,
	type INTEGER NOT NULL,
	source_node_id INTEGER NOT NULL,
	target_node_id INTEGER NOT NULL,
	PRIMARY KEY(id),
	FOREIGN KEY(id) REFERENCES element(id) ON DELETE CASCADE,
	FOREIGN KEY(source_node_id) REFERENCES node(id) ON DELETE CASCADE,
	FOREIGN KEY(target_node_id) REFERENCES node(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS node(
	id INTEGER NOT NULL,
	type INTEGER NOT NULL,
	serialized_name TEXT,
	PRIMARY KEY(id),
	FOREIGN KEY(id) REFERENCES element(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS symbol(
	id INTEGER NOT NULL,
	definition_kind INTEGER NOT NULL,
	PRIMARY KEY(id),
	FOREIGN KEY(id) REFERENCES node(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS file(
	id INTEGER NOT NULL,
	path TEXT,
	language TEXT,
	modification_time TEXT,
	indexed INTEGER,
	complete INTEGER,
	line_count INTEGER,
	PRIMARY KEY(id),
	FOREIGN KEY(id) REFERENCES node(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS filecontent(
	id INTEGER,
	content TEXT,
	FOREIGN KEY(id) REFERENCES file(id) ON DELETE CASCADE ON UPDATE CASCADE
);

CREATE TABLE IF NOT EXISTS local_symbol(
	id INTEGER NOT NULL,
	name TEXT,
	PRIMARY KEY(id),
	FOREIGN KEY(id) REFERENCES element(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS source_location(
	id INTEGER NOT NULL,
	file_node_id INTEGER,
	start_line INTEGER,
	start_column INTEGER,
	end_line INTEGER,
	end_column INTEGER,
	type INTEGER,
	PRIMARY KEY(id),
	FOREIGN KEY(file_node_id) REFERENCES node(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS occurrence(
	element_id INTEGER NOT NULL,
	source_location_id INTEGER NOT NULL,
	PRIMARY KEY(element_id, source_location_id),
	FOREIGN KEY(element_id) REFERENCES element(id) ON DELETE CASCADE,
	FOREIGN KEY(source_location_id) REFERENCES source_location(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS element_component(
	id INTEGER NOT NULL,
	element_id INTEGER NOT NULL,
	type INTEGER NOT NULL,
	data TEXT,
	PRIMARY KEY(id),
	FOREIGN KEY(element_id) REFERENCES element(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS error(
	id INTEGER NOT NULL,
	message TEXT,
	fatal INTEGER NOT NULL,
	indexed INTEGER NOT NULL,
	translation_unit TEXT,
	PRIMARY KEY(id),
	FOREIGN KEY(id) REFERENCES element(id) ON DELETE CASCADE
);
`

const createIndicesSQL = `
CREATE INDEX IF NOT EXISTS node_serialized_name_index ON node(serialized_name);
CREATE INDEX IF NOT EXISTS edge_source_target_type_index ON edge(source_node_id, target_node_id, type);
CREATE INDEX IF NOT EXISTS local_symbol_name_index ON local_symbol(name);
CREATE INDEX IF NOT EXISTS source_location_all_data_index ON source_location(file_node_id, start_line, start_column, end_line, end_column, type);
CREATE INDEX IF NOT EXISTS error_all_data_index ON error(message, fatal);
`

// dropTableOrder mirrors clearDatabase's drop list. It is mostly children
// before the parents they reference, but edge is dropped after node; Clear
// disables foreign-key enforcement before dropping, so the order never
// blocks a drop.
var dropTableOrder = []string{
	"meta",
	"error",
	"element_component",
	"occurrence",
	"source_location",
	"local_symbol",
	"filecontent",
	"file",
	"symbol",
	"node",
	"edge",
	"element",
}
