// Package srctrail records source-code facts — symbols, references,
// files, and errors — into a SourcetrailDB-compatible SQLite database.
// It is write-only: there is no query surface here, only the recording
// API a language indexer calls while it walks a codebase.
//
// # Usage
//
// Create a Writer, open a database file, and record facts as the indexer
// discovers them:
//
//	w := srctrail.NewWriter()
//	if !w.Open("project.srctrldb") {
//		log.Fatal(w.GetLastError())
//	}
//	defer w.Close()
//
//	fileID := w.RecordFile("/path/to/main.go")
//	w.RecordFileLanguage(fileID, "go")
//
//	symbolID := w.RecordSymbol(srctrail.NameHierarchy{
//		Delimiter: ".",
//		Elements:  []srctrail.NameElement{{Name: "main"}},
//	})
//	w.RecordSymbolDefinitionKind(symbolID, srctrail.DefinitionExplicit)
//	w.RecordSymbolKind(symbolID, srctrail.SymbolFunction)
//	w.RecordSymbolLocation(symbolID, srctrail.SourceRange{
//		FileID: fileID, StartLine: 10, StartColumn: 1, EndLine: 10, EndColumn: 9,
//	})
//
// # Error convention
//
// Every public operation returns a bool (or 0 for id-returning
// operations) to signal failure. On failure, GetLastError returns a
// human-readable message describing what went wrong; ClearLastError
// clears it explicitly — success never clears it implicitly.
//
// # Transactions
//
// BeginTransaction/CommitTransaction/RollbackTransaction are strongly
// recommended around bulk recording; without one, every primitive incurs
// its own fsync.
package srctrail

import "time"

// currentTimestamp formats the current wall-clock time the same way
// RecordFile stamps a file's modification_time column.
func currentTimestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
