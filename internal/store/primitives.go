package store

import (
	"database/sql"
	"fmt"

	"github.com/jward/srctrail/internal/fsutil"
	"github.com/jward/srctrail/internal/kind"
)

// File carries the fields addFile needs; the id must already be reserved
// via AddNode (a file is a node of kind FILE).
type File struct {
	ID               int64
	Path             string
	LanguageIdentifier string
	ModificationTime string
	Indexed          bool
	Complete         bool
}

// SourceLocation carries the six-tuple addSourceLocation dedups on.
type SourceLocation struct {
	FileNodeID  int64
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
	Kind        kind.LocationKind
}

// Error carries the fields addError needs.
type Error struct {
	Message         string
	Fatal           bool
	Indexed         bool
	TranslationUnit string
}

func (e *Engine) insertElement() (int64, error) {
	stmt := e.stmt(e.stmts.insertElement)
	res, err := stmt.Exec()
	if err != nil {
		return 0, fmt.Errorf("insert element: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// AddNode finds or inserts a node by its serialized name. kind is set
// only when the row is freshly inserted; it is never overwritten here.
func (e *Engine) AddNode(k kind.NodeKind, serializedName string) (int64, error) {
	var id int64
	err := e.stmt(e.stmts.findNode).QueryRow(serializedName).Scan(&id)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("find node: %w", err)
	}
	if err == nil {
		e.metrics.recordFound("node")
		return id, nil
	}

	id, err = e.insertElement()
	if err != nil {
		return 0, err
	}
	if _, err := e.stmt(e.stmts.insertNode).Exec(id, kind.NodeKindToInt(k), serializedName); err != nil {
		return 0, fmt.Errorf("insert node: %w", err)
	}
	e.metrics.recordInserted("node")
	return id, nil
}

// SetNodeType overwrites a node's kind unconditionally.
func (e *Engine) SetNodeType(id int64, k kind.NodeKind) error {
	if _, err := e.stmt(e.stmts.setNodeType).Exec(kind.NodeKindToInt(k), id); err != nil {
		return fmt.Errorf("set node type: %w", err)
	}
	return nil
}

// AddSymbol marks a node as an indexed symbol. INSERT OR IGNORE —
// repeated recordings with the same id are no-ops.
func (e *Engine) AddSymbol(id int64, defKind kind.DefinitionKind) error {
	if _, err := e.stmt(e.stmts.insertSymbol).Exec(id, kind.DefinitionKindToInt(defKind)); err != nil {
		return fmt.Errorf("insert symbol: %w", err)
	}
	return nil
}

// AddFile inserts the file row for an already-recorded node id. Short-
// circuits if the row exists. Reads disk content when the path exists on
// disk and stores it alongside the line count; otherwise content is empty
// and line_count is 0.
func (e *Engine) AddFile(f File) error {
	var existing int64
	err := e.stmt(e.stmts.findFile).QueryRow(f.ID).Scan(&existing)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("find file: %w", err)
	}
	if err == nil {
		e.metrics.recordFound("file")
		return nil
	}

	content := ""
	if fsutil.Exists(f.Path) {
		content, err = fsutil.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("read file content for %s: %w", f.Path, err)
		}
	}
	lineCount := fsutil.LineCount(content)

	_, err = e.stmt(e.stmts.insertFile).Exec(
		f.ID, f.Path, f.LanguageIdentifier, f.ModificationTime, f.Indexed, f.Complete, lineCount,
	)
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	e.metrics.recordInserted("file")

	if content != "" {
		if _, err := e.stmt(e.stmts.insertFileContent).Exec(f.ID, content); err != nil {
			return fmt.Errorf("insert file content: %w", err)
		}
	}
	return nil
}

// SetFileLanguage overwrites a file's language unconditionally.
func (e *Engine) SetFileLanguage(id int64, language string) error {
	if _, err := e.stmt(e.stmts.setFileLanguage).Exec(language, id); err != nil {
		return fmt.Errorf("set file language: %w", err)
	}
	return nil
}

// AddEdge finds or inserts an edge by the (source, target, kind) triple.
func (e *Engine) AddEdge(source, target int64, k kind.EdgeKind) (int64, error) {
	var id int64
	err := e.stmt(e.stmts.findEdge).QueryRow(source, target, kind.EdgeKindToInt(k)).Scan(&id)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("find edge: %w", err)
	}
	if err == nil {
		e.metrics.recordFound("edge")
		return id, nil
	}

	id, err = e.insertElement()
	if err != nil {
		return 0, err
	}
	if _, err := e.stmt(e.stmts.insertEdge).Exec(id, kind.EdgeKindToInt(k), source, target); err != nil {
		return 0, fmt.Errorf("insert edge: %w", err)
	}
	e.metrics.recordInserted("edge")
	return id, nil
}

// AddLocalSymbol finds or inserts a local symbol by name.
func (e *Engine) AddLocalSymbol(name string) (int64, error) {
	var id int64
	err := e.stmt(e.stmts.findLocalSymbol).QueryRow(name).Scan(&id)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("find local symbol: %w", err)
	}
	if err == nil {
		e.metrics.recordFound("local_symbol")
		return id, nil
	}

	id, err = e.insertElement()
	if err != nil {
		return 0, err
	}
	if _, err := e.stmt(e.stmts.insertLocalSymbol).Exec(id, name); err != nil {
		return 0, fmt.Errorf("insert local symbol: %w", err)
	}
	e.metrics.recordInserted("local_symbol")
	return id, nil
}

// AddSourceLocation finds or inserts a source_location row by its full
// six-tuple. Unlike the other primitives, source_location rows are not
// part of the unified element-id space — the id comes directly from
// SQLite's rowid.
func (e *Engine) AddSourceLocation(loc SourceLocation) (int64, error) {
	var id int64
	err := e.stmt(e.stmts.findSourceLocation).QueryRow(
		loc.FileNodeID, loc.StartLine, loc.StartColumn, loc.EndLine, loc.EndColumn, kind.LocationKindToInt(loc.Kind),
	).Scan(&id)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("find source location: %w", err)
	}
	if err == nil {
		e.metrics.recordFound("source_location")
		return id, nil
	}

	res, err := e.stmt(e.stmts.insertSourceLocation).Exec(
		loc.FileNodeID, loc.StartLine, loc.StartColumn, loc.EndLine, loc.EndColumn, kind.LocationKindToInt(loc.Kind),
	)
	if err != nil {
		return 0, fmt.Errorf("insert source location: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	e.metrics.recordInserted("source_location")
	return id, nil
}

// AddOccurrence binds an element to a location. INSERT OR IGNORE — the
// composite (element, location) pair is the primary key.
func (e *Engine) AddOccurrence(elementID, sourceLocationID int64) error {
	if _, err := e.stmt(e.stmts.insertOccurrence).Exec(elementID, sourceLocationID); err != nil {
		return fmt.Errorf("insert occurrence: %w", err)
	}
	return nil
}

// AddElementComponent inserts an auxiliary flag attached to an element.
// There is no find step — repeated calls insert repeated rows, matching
// the original's unconditional insert.
func (e *Engine) AddElementComponent(elementID int64, k kind.ElementComponentKind, data string) (int64, error) {
	exec := e.db.Exec
	if e.tx != nil {
		exec = e.tx.Exec
	}
	res, err := exec(
		"INSERT INTO element_component(element_id, type, data) VALUES(?, ?, ?);",
		elementID, kind.ElementComponentKindToInt(k), data,
	)
	if err != nil {
		return 0, fmt.Errorf("insert element component: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// AddError finds or inserts an error by the (message, fatal) pair.
func (e *Engine) AddError(ee Error) (int64, error) {
	var id int64
	err := e.stmt(e.stmts.findError).QueryRow(ee.Message, ee.Fatal).Scan(&id)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("find error: %w", err)
	}
	if err == nil {
		e.metrics.recordFound("error")
		return id, nil
	}

	id, err = e.insertElement()
	if err != nil {
		return 0, err
	}
	if _, err := e.stmt(e.stmts.insertError).Exec(id, ee.Message, ee.Fatal, ee.Indexed, ee.TranslationUnit); err != nil {
		return 0, fmt.Errorf("insert error: %w", err)
	}
	e.metrics.recordInserted("error")
	return id, nil
}
