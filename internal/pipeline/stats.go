package pipeline

// RunStats tracks aggregate counters across a batch run. Processed plus
// Skipped equals the number of files attempted; Total is the number of
// candidates the walk discovered.
type RunStats struct {
	Total      int
	Current    int
	Processed  int
	Skipped    int
	InputBytes int64
}
