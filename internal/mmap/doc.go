// Package mmap maps dataset and archive files read-only into memory.
//
// # Usage
//
//	f, err := mmap.Open("iris.csv")
//	if err != nil { ... }
//	defer f.Close()
//
//	_ = f.Advise(mmap.AccessSequential)
//	records, err := csv.NewReader(f.Reader()).ReadAll()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile; Advise is a no-op
//
// Callers must not touch Bytes() after Close returns.
package mmap
