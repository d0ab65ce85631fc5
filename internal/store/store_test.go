package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jward/srctrail/internal/kind"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.srctrldb")
	e, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, e.Setup())
	t.Cleanup(func() { e.Close() })
	return e
}

// === Schema & Lifecycle ===

func TestSetupCreatesEmptyDatabase(t *testing.T) {
	e := newTestEngine(t)

	empty, err := e.IsEmpty()
	require.NoError(t, err)
	require.False(t, empty, "meta table must exist after Setup")

	version, err := e.LoadedVersion()
	require.NoError(t, err)
	require.Equal(t, supportedDatabaseVersion, version)
}

func TestIsEmptyBeforeSetup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.srctrldb")
	e, err := Open(dbPath)
	require.NoError(t, err)
	defer e.Close()

	empty, err := e.IsEmpty()
	require.NoError(t, err)
	require.True(t, empty)
}

func TestSetupRejectsIncompatibleVersion(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.db.Exec("UPDATE meta SET value = '1' WHERE key = 'storage_version';")
	require.NoError(t, err)

	err = e.Setup()
	require.ErrorIs(t, err, ErrIncompatible)
}

func TestClearResetsDatabase(t *testing.T) {
	e := newTestEngine(t)

	id, err := e.AddNode(kind.NodeClass, "n")
	require.NoError(t, err)
	require.NotZero(t, id)

	require.NoError(t, e.Clear())

	nodes, err := e.AllNodes()
	require.NoError(t, err)
	require.Empty(t, nodes)

	version, err := e.LoadedVersion()
	require.NoError(t, err)
	require.Equal(t, supportedDatabaseVersion, version)
}

// === Write Primitives: find-or-insert idempotency ===

func TestAddNodeDedupsOnSerializedName(t *testing.T) {
	e := newTestEngine(t)

	id1, err := e.AddNode(kind.NodeClass, "A\ts\tp")
	require.NoError(t, err)

	id2, err := e.AddNode(kind.NodeClass, "A\ts\tp")
	require.NoError(t, err)

	require.Equal(t, id1, id2)

	nodes, err := e.AllNodes()
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}

func TestAddNodeDifferentNamesDistinctIDs(t *testing.T) {
	e := newTestEngine(t)

	id1, err := e.AddNode(kind.NodeClass, "A\ts\tp")
	require.NoError(t, err)
	id2, err := e.AddNode(kind.NodeClass, "B\ts\tp")
	require.NoError(t, err)

	require.NotEqual(t, id1, id2)
}

func TestSetNodeTypeOverwrites(t *testing.T) {
	e := newTestEngine(t)

	id, err := e.AddNode(kind.NodeUnknown, "A\ts\tp")
	require.NoError(t, err)

	require.NoError(t, e.SetNodeType(id, kind.NodeClass))

	nodes, err := e.AllNodes()
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, kind.NodeClass, nodes[0].Kind)
}

func TestAddEdgeDedupsOnTriple(t *testing.T) {
	e := newTestEngine(t)

	src, err := e.AddNode(kind.NodeClass, "A\ts\tp")
	require.NoError(t, err)
	dst, err := e.AddNode(kind.NodeClass, "B\ts\tp")
	require.NoError(t, err)

	id1, err := e.AddEdge(src, dst, kind.EdgeUsage)
	require.NoError(t, err)
	id2, err := e.AddEdge(src, dst, kind.EdgeUsage)
	require.NoError(t, err)
	require.Equal(t, id1, id2)

	id3, err := e.AddEdge(src, dst, kind.EdgeCall)
	require.NoError(t, err)
	require.NotEqual(t, id1, id3)
}

func TestAddLocalSymbolDedupsOnName(t *testing.T) {
	e := newTestEngine(t)

	id1, err := e.AddLocalSymbol("local_0")
	require.NoError(t, err)
	id2, err := e.AddLocalSymbol("local_0")
	require.NoError(t, err)
	require.Equal(t, id1, id2)
}

func TestAddSourceLocationDedupsOnSixTuple(t *testing.T) {
	e := newTestEngine(t)

	fileNode, err := e.AddNode(kind.NodeFile, "file.go\ts\tp")
	require.NoError(t, err)

	loc := SourceLocation{FileNodeID: fileNode, StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 5, Kind: kind.LocationToken}
	id1, err := e.AddSourceLocation(loc)
	require.NoError(t, err)
	id2, err := e.AddSourceLocation(loc)
	require.NoError(t, err)
	require.Equal(t, id1, id2)

	loc.EndColumn = 6
	id3, err := e.AddSourceLocation(loc)
	require.NoError(t, err)
	require.NotEqual(t, id1, id3)
}

func TestAddErrorDedupsOnMessageAndFatal(t *testing.T) {
	e := newTestEngine(t)

	id1, err := e.AddError(Error{Message: "parse failure", Fatal: true, Indexed: true, TranslationUnit: "main.go"})
	require.NoError(t, err)
	id2, err := e.AddError(Error{Message: "parse failure", Fatal: true, Indexed: false, TranslationUnit: "other.go"})
	require.NoError(t, err)
	require.Equal(t, id1, id2, "dedup key is (message, fatal) only")

	id3, err := e.AddError(Error{Message: "parse failure", Fatal: false, Indexed: true, TranslationUnit: "main.go"})
	require.NoError(t, err)
	require.NotEqual(t, id1, id3)
}

func TestAddFileSkipsMissingPath(t *testing.T) {
	e := newTestEngine(t)

	fileNode, err := e.AddNode(kind.NodeFile, "missing.go\ts\tp")
	require.NoError(t, err)

	err = e.AddFile(File{ID: fileNode, Path: "/does/not/exist.go", LanguageIdentifier: "go"})
	require.NoError(t, err)

	files, err := e.AllFiles()
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, 0, files[0].LineCount)
}

func TestAddFileReadsExistingContent(t *testing.T) {
	e := newTestEngine(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "source.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644))

	fileNode, err := e.AddNode(kind.NodeFile, "source.go\ts\tp")
	require.NoError(t, err)

	require.NoError(t, e.AddFile(File{ID: fileNode, Path: path, LanguageIdentifier: "go"}))

	files, err := e.AllFiles()
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, 3, files[0].LineCount)
}

func TestAddOccurrenceIsIdempotent(t *testing.T) {
	e := newTestEngine(t)

	fileNode, err := e.AddNode(kind.NodeFile, "f.go\ts\tp")
	require.NoError(t, err)
	loc, err := e.AddSourceLocation(SourceLocation{FileNodeID: fileNode, StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 2, Kind: kind.LocationToken})
	require.NoError(t, err)

	require.NoError(t, e.AddOccurrence(fileNode, loc))
	require.NoError(t, e.AddOccurrence(fileNode, loc))

	occs, err := e.AllOccurrences()
	require.NoError(t, err)
	require.Len(t, occs, 1)
}

func TestAddElementComponentInsertsEachCall(t *testing.T) {
	e := newTestEngine(t)

	id, err := e.AddNode(kind.NodeClass, "A\ts\tp")
	require.NoError(t, err)

	id1, err := e.AddElementComponent(id, kind.ElementComponentIsAmbiguous, "")
	require.NoError(t, err)
	id2, err := e.AddElementComponent(id, kind.ElementComponentIsAmbiguous, "")
	require.NoError(t, err)
	require.NotEqual(t, id1, id2, "addElementComponent has no find step")
}

// === Transaction Control ===

func TestTransactionCommit(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.BeginTx())
	_, err := e.AddNode(kind.NodeClass, "A\ts\tp")
	require.NoError(t, err)
	require.NoError(t, e.Commit())

	nodes, err := e.AllNodes()
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}

func TestTransactionRollback(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.BeginTx())
	_, err := e.AddNode(kind.NodeClass, "A\ts\tp")
	require.NoError(t, err)
	require.NoError(t, e.Rollback())

	nodes, err := e.AllNodes()
	require.NoError(t, err)
	require.Empty(t, nodes)
}

func TestBeginTxTwiceFails(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.BeginTx())
	err := e.BeginTx()
	require.ErrorIs(t, err, ErrTransactionActive)
	require.NoError(t, e.Rollback())
}

func TestCommitWithoutTransactionFails(t *testing.T) {
	e := newTestEngine(t)

	err := e.Commit()
	require.ErrorIs(t, err, ErrNoTransaction)
}

func TestRollbackWithoutTransactionFails(t *testing.T) {
	e := newTestEngine(t)

	err := e.Rollback()
	require.ErrorIs(t, err, ErrNoTransaction)
}

// === Foreign Keys ===

func TestEdgeCascadesOnNodeDelete(t *testing.T) {
	e := newTestEngine(t)

	src, err := e.AddNode(kind.NodeClass, "A\ts\tp")
	require.NoError(t, err)
	dst, err := e.AddNode(kind.NodeClass, "B\ts\tp")
	require.NoError(t, err)
	_, err = e.AddEdge(src, dst, kind.EdgeUsage)
	require.NoError(t, err)

	_, err = e.db.Exec("DELETE FROM element WHERE id = ?;", src)
	require.NoError(t, err)

	edges, err := e.AllEdges()
	require.NoError(t, err)
	require.Empty(t, edges)
}
