package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jward/srctrail/internal/kind"
)

// Typed bulk read accessors, used only by the test harness (spec.md
// §4.4). Write paths stay hand-written SQL for column-order exactness;
// these read-only queries benefit from squirrel's composable builder
// instead.

var statementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Node is a row of the node table, as returned by AllNodes.
type Node struct {
	ID             int64
	Kind           kind.NodeKind
	SerializedName string
}

// AllNodes returns every row in node.
func (e *Engine) AllNodes() ([]Node, error) {
	rows, err := statementBuilder.Select("id", "type", "serialized_name").From("node").RunWith(e.db).Query()
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		var n Node
		var k int32
		if err := rows.Scan(&n.ID, &k, &n.SerializedName); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		n.Kind = kind.IntToNodeKind(k)
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// Edge is a row of the edge table, as returned by AllEdges.
type Edge struct {
	ID     int64
	Kind   kind.EdgeKind
	Source int64
	Target int64
}

// AllEdges returns every row in edge.
func (e *Engine) AllEdges() ([]Edge, error) {
	rows, err := statementBuilder.Select("id", "type", "source_node_id", "target_node_id").From("edge").RunWith(e.db).Query()
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		var ed Edge
		var k int32
		if err := rows.Scan(&ed.ID, &k, &ed.Source, &ed.Target); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		ed.Kind = kind.IntToEdgeKind(k)
		edges = append(edges, ed)
	}
	return edges, rows.Err()
}

// Symbol is a row of the symbol table, as returned by AllSymbols.
type Symbol struct {
	ID             int64
	DefinitionKind kind.DefinitionKind
}

// AllSymbols returns every row in symbol.
func (e *Engine) AllSymbols() ([]Symbol, error) {
	rows, err := statementBuilder.Select("id", "definition_kind").From("symbol").RunWith(e.db).Query()
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []Symbol
	for rows.Next() {
		var s Symbol
		var k int32
		if err := rows.Scan(&s.ID, &k); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		s.DefinitionKind = kind.IntToDefinitionKind(k)
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

// StoredFile is a row of the file table, as returned by AllFiles.
type StoredFile struct {
	ID               int64
	Path             string
	Language         string
	ModificationTime string
	Indexed          bool
	Complete         bool
	LineCount        int
}

// AllFiles returns every row in file.
func (e *Engine) AllFiles() ([]StoredFile, error) {
	rows, err := statementBuilder.
		Select("id", "path", "language", "modification_time", "indexed", "complete", "line_count").
		From("file").RunWith(e.db).Query()
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	var files []StoredFile
	for rows.Next() {
		var f StoredFile
		if err := rows.Scan(&f.ID, &f.Path, &f.Language, &f.ModificationTime, &f.Indexed, &f.Complete, &f.LineCount); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// LocalSymbol is a row of the local_symbol table, as returned by
// AllLocalSymbols.
type LocalSymbol struct {
	ID   int64
	Name string
}

// AllLocalSymbols returns every row in local_symbol.
func (e *Engine) AllLocalSymbols() ([]LocalSymbol, error) {
	rows, err := statementBuilder.Select("id", "name").From("local_symbol").RunWith(e.db).Query()
	if err != nil {
		return nil, fmt.Errorf("query local symbols: %w", err)
	}
	defer rows.Close()

	var symbols []LocalSymbol
	for rows.Next() {
		var s LocalSymbol
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan local symbol: %w", err)
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

// StoredSourceLocation is a row of the source_location table, as
// returned by AllSourceLocations.
type StoredSourceLocation struct {
	ID          int64
	FileNodeID  int64
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
	Kind        kind.LocationKind
}

// AllSourceLocations returns every row in source_location.
func (e *Engine) AllSourceLocations() ([]StoredSourceLocation, error) {
	rows, err := statementBuilder.
		Select("id", "file_node_id", "start_line", "start_column", "end_line", "end_column", "type").
		From("source_location").RunWith(e.db).Query()
	if err != nil {
		return nil, fmt.Errorf("query source locations: %w", err)
	}
	defer rows.Close()

	var locs []StoredSourceLocation
	for rows.Next() {
		var l StoredSourceLocation
		var k int32
		if err := rows.Scan(&l.ID, &l.FileNodeID, &l.StartLine, &l.StartColumn, &l.EndLine, &l.EndColumn, &k); err != nil {
			return nil, fmt.Errorf("scan source location: %w", err)
		}
		locKind, err := kind.IntToLocationKind(k)
		if err != nil {
			return nil, fmt.Errorf("source location %d: %w", l.ID, err)
		}
		l.Kind = locKind
		locs = append(locs, l)
	}
	return locs, rows.Err()
}

// Occurrence is a row of the occurrence table, as returned by
// AllOccurrences.
type Occurrence struct {
	ElementID        int64
	SourceLocationID int64
}

// AllOccurrences returns every row in occurrence.
func (e *Engine) AllOccurrences() ([]Occurrence, error) {
	rows, err := statementBuilder.Select("element_id", "source_location_id").From("occurrence").RunWith(e.db).Query()
	if err != nil {
		return nil, fmt.Errorf("query occurrences: %w", err)
	}
	defer rows.Close()

	var occs []Occurrence
	for rows.Next() {
		var o Occurrence
		if err := rows.Scan(&o.ElementID, &o.SourceLocationID); err != nil {
			return nil, fmt.Errorf("scan occurrence: %w", err)
		}
		occs = append(occs, o)
	}
	return occs, rows.Err()
}

// StoredError is a row of the error table, as returned by AllErrors.
type StoredError struct {
	ID              int64
	Message         string
	Fatal           bool
	Indexed         bool
	TranslationUnit string
}

// AllErrors returns every row in error.
func (e *Engine) AllErrors() ([]StoredError, error) {
	rows, err := statementBuilder.
		Select("id", "message", "fatal", "indexed", "translation_unit").
		From("error").RunWith(e.db).Query()
	if err != nil {
		return nil, fmt.Errorf("query errors: %w", err)
	}
	defer rows.Close()

	var errs []StoredError
	for rows.Next() {
		var se StoredError
		if err := rows.Scan(&se.ID, &se.Message, &se.Fatal, &se.Indexed, &se.TranslationUnit); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		errs = append(errs, se)
	}
	return errs, rows.Err()
}
