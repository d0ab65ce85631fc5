package srctrail

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "t.srctrldb")
	w := NewWriter()
	require.True(t, w.Open(dbPath), w.GetLastError())
	t.Cleanup(func() { w.Close() })
	return w
}

// === S1: single symbol ===

func TestScenarioSingleSymbol(t *testing.T) {
	w := newTestWriter(t)
	require.True(t, w.Clear(), w.GetLastError())

	id := w.RecordSymbol(NameHierarchy{
		Delimiter: ".",
		Elements:  []NameElement{{Name: "foo"}},
	})
	require.EqualValues(t, 1, id)

	nodes, err := w.engine.AllNodes()
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, ".\tmfoo\ts\tp", nodes[0].SerializedName)
	require.EqualValues(t, 1, nodes[0].Kind)
}

// === S2: qualified symbol with parent edges ===

func TestScenarioQualifiedSymbol(t *testing.T) {
	w := newTestWriter(t)
	require.True(t, w.Clear(), w.GetLastError())

	id := w.RecordSymbol(NameHierarchy{
		Delimiter: "::",
		Elements: []NameElement{
			{Name: "ns"},
			{Name: "C"},
			{Prefix: "void", Name: "m", Postfix: "()"},
		},
	})
	require.EqualValues(t, 3, id)

	nodes, err := w.engine.AllNodes()
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	edges, err := w.engine.AllEdges()
	require.NoError(t, err)
	require.Len(t, edges, 2)
	for _, e := range edges {
		require.EqualValues(t, EdgeMember, e.Kind)
	}
	require.ElementsMatch(t, []struct{ Source, Target int64 }{{1, 2}, {2, 3}},
		[]struct{ Source, Target int64 }{{edges[0].Source, edges[0].Target}, {edges[1].Source, edges[1].Target}})
}

// === S3: reference dedup ===

func TestScenarioReferenceDedup(t *testing.T) {
	w := newTestWriter(t)
	require.True(t, w.Clear(), w.GetLastError())

	w.RecordSymbol(NameHierarchy{Delimiter: "::", Elements: []NameElement{
		{Name: "ns"}, {Name: "C"}, {Prefix: "void", Name: "m", Postfix: "()"},
	}})

	reuseID := w.RecordSymbol(NameHierarchy{Delimiter: "::", Elements: []NameElement{
		{Name: "ns"}, {Name: "C"},
	}})
	require.EqualValues(t, 2, reuseID)

	// Nodes 1-3 and MEMBER edges 4-5 already hold ids 1-5 of the shared
	// element sequence, so the new reference edge gets 6.
	refID := w.RecordReference(3, 2, ReferenceCall)
	require.EqualValues(t, 6, refID)

	refID2 := w.RecordReference(3, 2, ReferenceCall)
	require.EqualValues(t, 6, refID2)

	edges, err := w.engine.AllEdges()
	require.NoError(t, err)
	require.Len(t, edges, 3)
}

// === S4: symbol token location ===

func TestScenarioSymbolTokenLocation(t *testing.T) {
	w := newTestWriter(t)
	require.True(t, w.Clear(), w.GetLastError())

	symbolID := w.RecordSymbol(NameHierarchy{Delimiter: "::", Elements: []NameElement{
		{Name: "ns"}, {Name: "C"}, {Prefix: "void", Name: "m", Postfix: "()"},
	}})

	fileID := w.RecordFile("/tmp/a.cpp")

	require.True(t, w.RecordSymbolLocation(symbolID, SourceRange{
		FileID: fileID, StartLine: 10, StartColumn: 5, EndLine: 10, EndColumn: 15,
	}), w.GetLastError())

	locs, err := w.engine.AllSourceLocations()
	require.NoError(t, err)
	require.Len(t, locs, 1)
	require.EqualValues(t, LocationToken, locs[0].Kind)

	occs, err := w.engine.AllOccurrences()
	require.NoError(t, err)
	require.Len(t, occs, 1)
	require.Equal(t, symbolID, occs[0].ElementID)
	require.Equal(t, locs[0].ID, occs[0].SourceLocationID)
}

// === S5: error record ===

func TestScenarioErrorRecord(t *testing.T) {
	w := newTestWriter(t)
	require.True(t, w.Clear(), w.GetLastError())

	fileID := w.RecordFile("/tmp/a.cpp")

	require.True(t, w.RecordError("boom", false, SourceRange{FileID: fileID, StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 1}), w.GetLastError())

	errs, err := w.engine.AllErrors()
	require.NoError(t, err)
	require.Len(t, errs, 1)
	require.Equal(t, "boom", errs[0].Message)
	require.False(t, errs[0].Fatal)
	require.True(t, errs[0].Indexed)
	require.Equal(t, "", errs[0].TranslationUnit)

	locs, err := w.engine.AllSourceLocations()
	require.NoError(t, err)
	require.Len(t, locs, 1)
	require.EqualValues(t, LocationIndexerError, locs[0].Kind)

	// Second identical call is a no-op: still one error row.
	require.True(t, w.RecordError("boom", false, SourceRange{FileID: fileID, StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 1}))
	errs, err = w.engine.AllErrors()
	require.NoError(t, err)
	require.Len(t, errs, 1)
}

// === S6: unsolved symbol ===

func TestScenarioUnsolvedSymbol(t *testing.T) {
	w := newTestWriter(t)
	require.True(t, w.Clear(), w.GetLastError())

	symbolID := w.RecordSymbol(NameHierarchy{Delimiter: "::", Elements: []NameElement{
		{Name: "ns"}, {Name: "C"}, {Prefix: "void", Name: "m", Postfix: "()"},
	}})

	fileID := w.RecordFile("/tmp/a.cpp")

	refID := w.RecordReferenceToUnsolvedSymbol(symbolID, ReferenceUsage, SourceRange{
		FileID: fileID, StartLine: 2, StartColumn: 1, EndLine: 2, EndColumn: 3,
	})
	require.NotZero(t, refID)

	edges, err := w.engine.AllEdges()
	require.NoError(t, err)
	var found bool
	for _, e := range edges {
		if e.ID == refID {
			found = true
			require.EqualValues(t, EdgeUsage, e.Kind)
			require.Equal(t, symbolID, e.Source)
		}
	}
	require.True(t, found)

	nodes, err := w.engine.AllNodes()
	require.NoError(t, err)
	var sawUnsolved bool
	for _, n := range nodes {
		if n.SerializedName == "\tmunsolved symbol\ts\tp" {
			sawUnsolved = true
		}
	}
	require.True(t, sawUnsolved)

	locs, err := w.engine.AllSourceLocations()
	require.NoError(t, err)
	var sawUnsolvedLoc bool
	for _, l := range locs {
		if l.Kind == LocationUnsolved {
			sawUnsolvedLoc = true
		}
	}
	require.True(t, sawUnsolvedLoc)
}

// === Boundary behaviors ===

func TestRecordSymbolEmptyHierarchyFails(t *testing.T) {
	w := newTestWriter(t)
	require.True(t, w.Clear())

	id := w.RecordSymbol(NameHierarchy{})
	require.Zero(t, id)
	require.NotEmpty(t, w.GetLastError())
}

func TestRecordReferenceZeroIDFails(t *testing.T) {
	w := newTestWriter(t)
	require.True(t, w.Clear())

	id := w.RecordSymbol(NameHierarchy{Delimiter: ".", Elements: []NameElement{{Name: "a"}}})
	require.NotZero(t, id)

	require.Zero(t, w.RecordReference(0, id, ReferenceCall))
	require.Zero(t, w.RecordReference(id, 0, ReferenceCall))
}

func TestOperationsFailBeforeOpen(t *testing.T) {
	w := NewWriter()
	require.Zero(t, w.RecordSymbol(NameHierarchy{Delimiter: ".", Elements: []NameElement{{Name: "a"}}}))
	require.NotEmpty(t, w.GetLastError())
	w.ClearLastError()
	require.Empty(t, w.GetLastError())
}

func TestRecordFileIdempotent(t *testing.T) {
	w := newTestWriter(t)
	require.True(t, w.Clear())

	id1 := w.RecordFile("/tmp/a.cpp")
	id2 := w.RecordFile("/tmp/a.cpp")
	require.Equal(t, id1, id2)

	nodes, err := w.engine.AllNodes()
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.EqualValues(t, NodeFile, nodes[0].Kind)
}

func TestClearThenIsEmptyReportsFalseWithNoRows(t *testing.T) {
	w := newTestWriter(t)
	w.RecordFile("/tmp/a.cpp")

	require.True(t, w.Clear(), w.GetLastError())
	require.False(t, w.IsEmpty())

	nodes, err := w.engine.AllNodes()
	require.NoError(t, err)
	require.Empty(t, nodes)
}

func TestOpenCreatesProjectSettingsSidecar(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "proj.srctrldb")
	w := NewWriter()
	require.True(t, w.Open(dbPath), w.GetLastError())
	defer w.Close()

	sidecarPath := filepath.Join(dir, "proj.srctrlprj")
	text, err := readProjectSettingsText(sidecarPath)
	require.NoError(t, err)
	require.Equal(t, defaultProjectSettingsDocument, text)
}

func TestMetricsCountsFoundAndInserted(t *testing.T) {
	w := newTestWriter(t)
	require.True(t, w.Clear())

	registry := w.Metrics()
	require.NotNil(t, registry)

	id1 := w.RecordSymbol(NameHierarchy{Delimiter: ".", Elements: []NameElement{{Name: "a"}}})
	id2 := w.RecordSymbol(NameHierarchy{Delimiter: ".", Elements: []NameElement{{Name: "a"}}})
	require.Equal(t, id1, id2)

	families, err := registry.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	var sawFound, sawInserted bool
	for _, mf := range families {
		switch mf.GetName() {
		case "srctrail_store_found_total":
			sawFound = true
		case "srctrail_store_inserted_total":
			sawInserted = true
		}
	}
	require.True(t, sawFound)
	require.True(t, sawInserted)
}

func TestMetricsNilBeforeOpen(t *testing.T) {
	w := NewWriter()
	require.Nil(t, w.Metrics())
}

func TestRecordReferenceIsAmbiguousReturnsTrue(t *testing.T) {
	w := newTestWriter(t)
	require.True(t, w.Clear())

	id := w.RecordSymbol(NameHierarchy{Delimiter: ".", Elements: []NameElement{{Name: "a"}}})
	refID := w.RecordReference(id, id, ReferenceCall)
	require.True(t, w.RecordReferenceIsAmbiguous(refID))
}
