package srctrail

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jward/srctrail/internal/kind"
	"github.com/jward/srctrail/internal/namehierarchy"
	"github.com/jward/srctrail/internal/store"
)

// versionString is reported by GetVersionString in the form "vXX.dbYY.pZZ".
const versionString = "v0.3.0.db25.p0"

// Writer is a write-only handle onto one SourcetrailDB-compatible SQLite
// database. Every public operation returns a bool (or 0 for id-returning
// operations) to signal failure; on failure GetLastError describes what
// went wrong. This mirrors SourcetrailDBWriter's C++ API shape exactly, so
// language bindings built against either one see the same contract.
type Writer struct {
	databasePath        string
	projectSettingsPath string
	engine              *store.Engine
	lastError           string
}

// NewWriter returns an unopened Writer. Call Open before recording
// anything.
func NewWriter() *Writer {
	return &Writer{}
}

// GetVersionString returns this writer's version in the form
// "vXX.dbYY.pZZ".
func (w *Writer) GetVersionString() string {
	return versionString
}

// GetSupportedDatabaseVersion returns the storage_version this writer
// requires of any non-empty database it opens.
func (w *Writer) GetSupportedDatabaseVersion() int {
	return store.SupportedDatabaseVersion()
}

// GetLastError returns the message set by the most recently failed
// operation.
func (w *Writer) GetLastError() string {
	return w.lastError
}

// ClearLastError clears the last-error slot. Success never clears it
// implicitly — callers call this explicitly.
func (w *Writer) ClearLastError() {
	w.lastError = ""
}

// Metrics returns the passive counters registry for the open database, or
// nil if no database is open. Nothing in this package binds a socket; a
// host process mounts the registry on its own exporter if it wants one.
func (w *Writer) Metrics() *prometheus.Registry {
	if w.engine == nil {
		return nil
	}
	return w.engine.Metrics().Registry()
}

func (w *Writer) fail(context string, err error) {
	w.lastError = fmt.Sprintf("%s: %v", context, classify(err))
}

func (w *Writer) failUsage(operation string) {
	w.lastError = fmt.Sprintf("unable to %s, because no database is currently open: %v", operation, ErrUsage)
}

// classify wraps err with the taxonomy sentinel spec.md §7 assigns to it,
// unless err already carries a more specific one. Classification only
// matters to callers that inspect GetLastError's text or, internally, to
// anything that would errors.Is against these sentinels before the
// message is serialized to the lastError string.
func classify(err error) error {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, store.ErrIncompatible):
		return fmt.Errorf("%w: %v", ErrIncompatibleDatabase, err)
	case errors.Is(err, ErrBadInput):
		return err
	case errors.As(err, &pathErr):
		return fmt.Errorf("%w: %v", ErrIO, err)
	default:
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
}

// Open records path, creates the companion .srctrlprj sidecar if missing,
// opens the storage engine, runs schema setup, and mirrors the sidecar's
// text into meta[project_settings]. Any failure releases partially
// acquired resources before returning false.
func (w *Writer) Open(path string) bool {
	w.databasePath = path
	w.projectSettingsPath = projectSettingsPath(path)

	if err := createProjectSettingsFileIfMissing(w.projectSettingsPath); err != nil {
		w.fail("open", err)
		return false
	}

	engine, err := store.Open(path)
	if err != nil {
		w.fail("open", err)
		return false
	}

	if err := engine.Setup(); err != nil {
		engine.Close()
		w.fail("open", err)
		return false
	}

	if err := w.syncProjectSettingsText(engine); err != nil {
		engine.Close()
		w.fail("open", err)
		return false
	}

	w.engine = engine
	return true
}

// Close releases the storage engine. Subsequent writes fail until the
// next Open.
func (w *Writer) Close() bool {
	if w.engine == nil {
		w.failUsage("close database")
		return false
	}
	err := w.engine.Close()
	w.engine = nil
	if err != nil {
		w.fail("close", err)
		return false
	}
	return true
}

// Clear drops and recreates every table, then re-syncs project-settings
// text.
func (w *Writer) Clear() bool {
	if w.engine == nil {
		w.failUsage("clear database")
		return false
	}
	if err := w.engine.Clear(); err != nil {
		w.fail("clear", err)
		return false
	}
	if err := w.syncProjectSettingsText(w.engine); err != nil {
		w.fail("clear", err)
		return false
	}
	return true
}

func (w *Writer) syncProjectSettingsText(engine *store.Engine) error {
	text, err := readProjectSettingsText(w.projectSettingsPath)
	if err != nil {
		return err
	}
	return engine.SetProjectSettingsText(text)
}

// IsEmpty reports whether the open database has no tables yet.
func (w *Writer) IsEmpty() bool {
	if w.engine == nil {
		w.failUsage("check if database is empty")
		return true
	}
	empty, err := w.engine.IsEmpty()
	if err != nil {
		w.fail("is empty", err)
		return true
	}
	return empty
}

// IsCompatible reports whether the open database's storage_version
// matches this writer, or the database is empty.
func (w *Writer) IsCompatible() bool {
	if w.engine == nil {
		w.failUsage("check if database is compatible")
		return false
	}
	compatible, err := w.engine.IsCompatible()
	if err != nil {
		w.fail("is compatible", err)
		return false
	}
	return compatible
}

// GetLoadedDatabaseVersion reads meta[storage_version] from the open
// database.
func (w *Writer) GetLoadedDatabaseVersion() int {
	if w.engine == nil {
		w.failUsage("fetch database version")
		return 0
	}
	version, err := w.engine.LoadedVersion()
	if err != nil {
		w.fail("get loaded database version", err)
		return 0
	}
	return version
}

// BeginTransaction starts a transaction on the open database.
func (w *Writer) BeginTransaction() bool {
	if w.engine == nil {
		w.failUsage("begin transaction")
		return false
	}
	if err := w.engine.BeginTx(); err != nil {
		w.fail("begin transaction", err)
		return false
	}
	return true
}

// CommitTransaction commits the active transaction.
func (w *Writer) CommitTransaction() bool {
	if w.engine == nil {
		w.failUsage("commit transaction")
		return false
	}
	if err := w.engine.Commit(); err != nil {
		w.fail("commit transaction", err)
		return false
	}
	return true
}

// RollbackTransaction rolls back the active transaction.
func (w *Writer) RollbackTransaction() bool {
	if w.engine == nil {
		w.failUsage("rollback transaction")
		return false
	}
	if err := w.engine.Rollback(); err != nil {
		w.fail("rollback transaction", err)
		return false
	}
	return true
}

// OptimizeDatabaseMemory runs a full database compaction.
func (w *Writer) OptimizeDatabaseMemory() bool {
	if w.engine == nil {
		w.failUsage("optimize database memory")
		return false
	}
	if err := w.engine.Optimize(); err != nil {
		w.fail("optimize database memory", err)
		return false
	}
	return true
}

// RecordSymbol walks name.Elements prefix by prefix, recording a node
// (kind UNKNOWN) for each proper prefix and a MEMBER edge from each
// parent to its child. All nodes are recorded before any edge, so the
// nodes of one call take consecutive ids. Returns the id of the deepest
// node, or 0 if name has no elements.
func (w *Writer) RecordSymbol(name NameHierarchy) int64 {
	if w.engine == nil {
		w.failUsage("record symbol")
		return 0
	}
	id, err := w.addNodeHierarchy(name)
	if err != nil {
		w.fail("record symbol", err)
		return 0
	}
	return id
}

func (w *Writer) addNodeHierarchy(name NameHierarchy) (int64, error) {
	if len(name.Elements) == 0 {
		return 0, fmt.Errorf("%w: empty name hierarchy", ErrBadInput)
	}

	nodeIDs := make([]int64, 0, len(name.Elements))
	current := namehierarchy.NameHierarchy{Delimiter: name.Delimiter}

	for _, element := range name.Elements {
		current.Elements = append(current.Elements, element)

		nodeID, err := w.engine.AddNode(kind.NodeUnknown, namehierarchy.SerializeToDatabaseString(current))
		if err != nil {
			return 0, err
		}
		nodeIDs = append(nodeIDs, nodeID)
	}
	for i := 1; i < len(nodeIDs); i++ {
		if _, err := w.engine.AddEdge(nodeIDs[i-1], nodeIDs[i], kind.EdgeMember); err != nil {
			return 0, err
		}
	}
	return nodeIDs[len(nodeIDs)-1], nil
}

// RecordSymbolDefinitionKind marks symbolID as having the given
// definition kind.
func (w *Writer) RecordSymbolDefinitionKind(symbolID int64, defKind DefinitionKind) bool {
	if w.engine == nil {
		w.failUsage("record symbol definition kind")
		return false
	}
	if err := w.engine.AddSymbol(symbolID, defKind); err != nil {
		w.fail("record symbol definition kind", err)
		return false
	}
	return true
}

// RecordSymbolKind overwrites symbolID's node kind, translated from the
// domain-facing SymbolKind to the stored NodeKind.
func (w *Writer) RecordSymbolKind(symbolID int64, symKind SymbolKind) bool {
	if w.engine == nil {
		w.failUsage("record symbol kind")
		return false
	}
	if err := w.engine.SetNodeType(symbolID, kind.SymbolKindToNodeKind(symKind)); err != nil {
		w.fail("record symbol kind", err)
		return false
	}
	return true
}

// RecordSymbolLocation attaches location as a TOKEN-kind occurrence of
// symbolID.
func (w *Writer) RecordSymbolLocation(symbolID int64, location SourceRange) bool {
	return w.recordLocation("record symbol location", symbolID, location, kind.LocationToken)
}

// RecordSymbolScopeLocation attaches location as a SCOPE-kind occurrence
// of symbolID.
func (w *Writer) RecordSymbolScopeLocation(symbolID int64, location SourceRange) bool {
	return w.recordLocation("record symbol scope location", symbolID, location, kind.LocationScope)
}

// RecordSymbolSignatureLocation attaches location as a SIGNATURE-kind
// occurrence of symbolID.
func (w *Writer) RecordSymbolSignatureLocation(symbolID int64, location SourceRange) bool {
	return w.recordLocation("record symbol signature location", symbolID, location, kind.LocationSignature)
}

// RecordReference translates refKind to an EdgeKind and adds an edge from
// contextSymbolID to referencedSymbolID. Fails if either id is 0.
func (w *Writer) RecordReference(contextSymbolID, referencedSymbolID int64, refKind ReferenceKind) int64 {
	if w.engine == nil {
		w.failUsage("record reference")
		return 0
	}
	id, err := w.addEdge(contextSymbolID, referencedSymbolID, kind.ReferenceKindToEdgeKind(refKind))
	if err != nil {
		w.fail("record reference", err)
		return 0
	}
	return id
}

func (w *Writer) addEdge(sourceID, targetID int64, edgeKind EdgeKind) (int64, error) {
	if sourceID == 0 {
		return 0, fmt.Errorf("%w: source id is invalid", ErrBadInput)
	}
	if targetID == 0 {
		return 0, fmt.Errorf("%w: target id is invalid", ErrBadInput)
	}
	return w.engine.AddEdge(sourceID, targetID, edgeKind)
}

// RecordReferenceLocation attaches location as a TOKEN-kind occurrence of
// referenceID.
func (w *Writer) RecordReferenceLocation(referenceID int64, location SourceRange) bool {
	return w.recordLocation("record reference location", referenceID, location, kind.LocationToken)
}

// RecordReferenceIsAmbiguous flags referenceID as ambiguous.
func (w *Writer) RecordReferenceIsAmbiguous(referenceID int64) bool {
	if w.engine == nil {
		w.failUsage("record ambiguity of reference")
		return false
	}
	if _, err := w.engine.AddElementComponent(referenceID, kind.ElementComponentIsAmbiguous, ""); err != nil {
		w.fail("record reference is ambiguous", err)
		return false
	}
	return true
}

// RecordReferenceToUnsolvedSymbol records a sentinel "unsolved symbol"
// node, an edge from contextSymbolID to it of the translated kind, and an
// UNSOLVED-kind location for that edge. Returns the new edge's id.
func (w *Writer) RecordReferenceToUnsolvedSymbol(contextSymbolID int64, refKind ReferenceKind, location SourceRange) int64 {
	if w.engine == nil {
		w.failUsage("record reference to unsolved symbol")
		return 0
	}

	unsolved := namehierarchy.NameHierarchy{
		Elements: []namehierarchy.NameElement{{Name: "unsolved symbol"}},
	}
	unsolvedID, err := w.addNodeHierarchy(unsolved)
	if err != nil {
		w.fail("record reference to unsolved symbol", err)
		return 0
	}

	referenceID, err := w.addEdge(contextSymbolID, unsolvedID, kind.ReferenceKindToEdgeKind(refKind))
	if err != nil {
		w.fail("record reference to unsolved symbol", err)
		return 0
	}

	if err := w.addSourceLocation(referenceID, location, kind.LocationUnsolved); err != nil {
		w.fail("record reference to unsolved symbol", err)
		return 0
	}
	return referenceID
}

// RecordQualifierLocation attaches location as a QUALIFIER-kind
// occurrence of referencedSymbolID.
func (w *Writer) RecordQualifierLocation(referencedSymbolID int64, location SourceRange) bool {
	return w.recordLocation("record qualifier location", referencedSymbolID, location, kind.LocationQualifier)
}

// RecordFile canonicalizes path as a one-element name hierarchy
// delimited by "/", promotes the resulting node's kind to FILE, and
// inserts the file row with the current wall-clock modification time.
// Returns the node id, reusing the same id on repeated calls with the
// same path.
func (w *Writer) RecordFile(path string) int64 {
	if w.engine == nil {
		w.failUsage("record file")
		return 0
	}
	id, err := w.addFile(path)
	if err != nil {
		w.fail("record file", err)
		return 0
	}
	return id
}

// RecordFileLanguage overwrites the language identifier of an
// already-recorded file.
func (w *Writer) RecordFileLanguage(fileID int64, languageIdentifier string) bool {
	if w.engine == nil {
		w.failUsage("record file language")
		return false
	}
	if err := w.engine.SetFileLanguage(fileID, languageIdentifier); err != nil {
		w.fail("record file language", err)
		return false
	}
	return true
}

// RecordLocalSymbol finds or inserts a function-scoped local symbol by
// name.
func (w *Writer) RecordLocalSymbol(name string) int64 {
	if w.engine == nil {
		w.failUsage("record local symbol")
		return 0
	}
	id, err := w.engine.AddLocalSymbol(name)
	if err != nil {
		w.fail("record local symbol", err)
		return 0
	}
	return id
}

// RecordLocalSymbolLocation attaches location as a LOCAL_SYMBOL-kind
// occurrence of localSymbolID.
func (w *Writer) RecordLocalSymbolLocation(localSymbolID int64, location SourceRange) bool {
	return w.recordLocation("record local symbol location", localSymbolID, location, kind.LocationLocalSymbol)
}

// RecordAtomicSourceRange stores a kind-only ATOMIC_RANGE location with
// no occurrence, used by viewers to keep multi-line tokens contiguous.
func (w *Writer) RecordAtomicSourceRange(sourceRange SourceRange) bool {
	if w.engine == nil {
		w.failUsage("record atomic source range")
		return false
	}
	if _, err := w.engine.AddSourceLocation(toStoreLocation(sourceRange, kind.LocationAtomicRange)); err != nil {
		w.fail("record atomic source range", err)
		return false
	}
	return true
}

// RecordCommentLocation stores a kind-only location with no occurrence.
// It reuses ATOMIC_RANGE: the defined LocationKind set has no separate
// comment slot, and this is the same "kind-only, no occurrence" shape
// RecordAtomicSourceRange already uses.
func (w *Writer) RecordCommentLocation(sourceRange SourceRange) bool {
	if w.engine == nil {
		w.failUsage("record comment location")
		return false
	}
	if _, err := w.engine.AddSourceLocation(toStoreLocation(sourceRange, kind.LocationAtomicRange)); err != nil {
		w.fail("record comment location", err)
		return false
	}
	return true
}

// RecordError inserts an error row with indexed=true and an empty
// translation unit, then attaches location as an INDEXER_ERROR-kind
// occurrence of it.
func (w *Writer) RecordError(message string, fatal bool, location SourceRange) bool {
	if w.engine == nil {
		w.failUsage("record error")
		return false
	}
	errorID, err := w.engine.AddError(store.Error{Message: message, Fatal: fatal, Indexed: true, TranslationUnit: ""})
	if err != nil {
		w.fail("record error", err)
		return false
	}
	if err := w.addSourceLocation(errorID, location, kind.LocationIndexerError); err != nil {
		w.fail("record error", err)
		return false
	}
	return true
}

func (w *Writer) recordLocation(operation string, elementID int64, location SourceRange, locKind LocationKind) bool {
	if w.engine == nil {
		w.failUsage(operation)
		return false
	}
	if err := w.addSourceLocation(elementID, location, locKind); err != nil {
		w.fail(operation, err)
		return false
	}
	return true
}

func (w *Writer) addSourceLocation(elementID int64, location SourceRange, locKind LocationKind) error {
	locationID, err := w.engine.AddSourceLocation(toStoreLocation(location, locKind))
	if err != nil {
		return err
	}
	return w.engine.AddOccurrence(elementID, locationID)
}

func (w *Writer) addFile(path string) (int64, error) {
	hierarchy := namehierarchy.NameHierarchy{
		Delimiter: "/",
		Elements:  []namehierarchy.NameElement{{Name: path}},
	}
	nodeID, err := w.addNodeHierarchy(hierarchy)
	if err != nil {
		return 0, err
	}
	if err := w.engine.SetNodeType(nodeID, kind.NodeFile); err != nil {
		return 0, err
	}
	if err := w.engine.AddFile(store.File{
		ID:                 nodeID,
		Path:               path,
		LanguageIdentifier: "",
		ModificationTime:   currentTimestamp(),
		Indexed:            true,
		Complete:           true,
	}); err != nil {
		return 0, err
	}
	return nodeID, nil
}

func toStoreLocation(r SourceRange, k LocationKind) store.SourceLocation {
	return store.SourceLocation{
		FileNodeID:  r.FileID,
		StartLine:   r.StartLine,
		StartColumn: r.StartColumn,
		EndLine:     r.EndLine,
		EndColumn:   r.EndColumn,
		Kind:        k,
	}
}
