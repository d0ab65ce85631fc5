package store

import (
	"database/sql"
	"fmt"
)

// statements is the prepared-statement cache. Every statement is compiled
// once in prepareStatements() and finalized together in close(), mirroring
// setupPrecompiledStatements()/~DatabaseStorage()'s matched pair.
type statements struct {
	insertElement           *sql.Stmt
	findNode                *sql.Stmt
	insertNode              *sql.Stmt
	setNodeType             *sql.Stmt
	insertSymbol            *sql.Stmt
	findFile                *sql.Stmt
	insertFile              *sql.Stmt
	setFileLanguage         *sql.Stmt
	insertFileContent       *sql.Stmt
	findEdge                *sql.Stmt
	insertEdge              *sql.Stmt
	findLocalSymbol         *sql.Stmt
	insertLocalSymbol       *sql.Stmt
	findSourceLocation      *sql.Stmt
	insertSourceLocation    *sql.Stmt
	insertOccurrence        *sql.Stmt
	findError               *sql.Stmt
	insertError             *sql.Stmt
	insertOrUpdateMetaValue *sql.Stmt
}

type stmtSpec struct {
	dst  **sql.Stmt
	text string
}

func prepareStatements(db *sql.DB, s *statements) error {
	specs := []stmtSpec{
		{&s.insertElement, "INSERT INTO element(id) VALUES(NULL);"},
		{&s.findNode, "SELECT id FROM node WHERE serialized_name == ? LIMIT 1;"},
		{&s.insertNode, "INSERT INTO node(id, type, serialized_name) VALUES(?, ?, ?);"},
		{&s.setNodeType, "UPDATE node SET type = ? WHERE id == ?;"},
		{&s.insertSymbol, "INSERT OR IGNORE INTO symbol(id, definition_kind) VALUES(?, ?);"},
		{&s.findFile, "SELECT id FROM file WHERE id == ?;"},
		{&s.insertFile, "INSERT OR IGNORE INTO file(id, path, language, modification_time, indexed, complete, line_count) VALUES(?, ?, ?, ?, ?, ?, ?);"},
		{&s.setFileLanguage, "UPDATE file SET language = ? WHERE id == ?;"},
		{&s.insertFileContent, "INSERT INTO filecontent(id, content) VALUES(?, ?);"},
		{&s.findEdge, "SELECT id FROM edge WHERE source_node_id == ? AND target_node_id == ? AND type == ? LIMIT 1;"},
		{&s.insertEdge, "INSERT INTO edge(id, type, source_node_id, target_node_id) VALUES(?, ?, ?, ?);"},
		{&s.findLocalSymbol, "SELECT id FROM local_symbol WHERE name == ? LIMIT 1;"},
		{&s.insertLocalSymbol, "INSERT INTO local_symbol(id, name) VALUES(?, ?);"},
		{&s.findSourceLocation, "SELECT id FROM source_location WHERE file_node_id = ? AND start_line = ? AND start_column = ? AND end_line = ? AND end_column = ? AND type = ? LIMIT 1;"},
		{&s.insertSourceLocation, "INSERT INTO source_location(id, file_node_id, start_line, start_column, end_line, end_column, type) VALUES(NULL, ?, ?, ?, ?, ?, ?);"},
		{&s.insertOccurrence, "INSERT OR IGNORE INTO occurrence(element_id, source_location_id) VALUES(?, ?);"},
		{&s.findError, "SELECT id FROM error WHERE message = ? AND fatal == ? LIMIT 1;"},
		{&s.insertError, "INSERT INTO error(id, message, fatal, indexed, translation_unit) VALUES(?, ?, ?, ?, ?);"},
		{&s.insertOrUpdateMetaValue, "INSERT OR REPLACE INTO meta(id, key, value) VALUES((SELECT id FROM meta WHERE key = ?), ?, ?);"},
	}

	for _, spec := range specs {
		stmt, err := db.Prepare(spec.text)
		if err != nil {
			return fmt.Errorf("prepare statement %q: %w", spec.text, err)
		}
		*spec.dst = stmt
	}
	return nil
}

func (s *statements) close() error {
	all := []*sql.Stmt{
		s.insertElement, s.findNode, s.insertNode, s.setNodeType, s.insertSymbol,
		s.findFile, s.insertFile, s.setFileLanguage, s.insertFileContent,
		s.findEdge, s.insertEdge, s.findLocalSymbol, s.insertLocalSymbol,
		s.findSourceLocation, s.insertSourceLocation, s.insertOccurrence,
		s.findError, s.insertError, s.insertOrUpdateMetaValue,
	}
	var firstErr error
	for _, stmt := range all {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close prepared statement: %w", err)
		}
	}
	return firstErr
}
