// Package fileutil expands command-line path arguments into the ordered list
// of log files a run analyzes.
//
// File arguments are passed through as given, even when they do not exist, so
// that a missing file surfaces as a read diagnostic for that file instead of
// aborting discovery. Directory arguments are scanned for files whose
// extension matches ScanOptions.Extensions (case-insensitive), optionally
// descending into subdirectories. Hidden directories and ScanOptions.ExcludeDirs
// are never entered.
//
// Output order is deterministic: arguments are expanded in the order given,
// each directory's matches are sorted, and a file reached twice is kept only
// at its first position.
//
//	result, err := fileutil.Discover([]string{"app.log", "logs/"}, fileutil.ScanOptions{
//		Extensions: []string{".log"},
//		Recursive:  true,
//	})
//	if err != nil {
//		return err
//	}
//	for _, e := range result.Errors {
//		log.Printf("skipped: %v", e)
//	}
package fileutil
