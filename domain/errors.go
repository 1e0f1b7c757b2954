package domain

// RepositoryError represents an error from the repository layer.
type RepositoryError struct {
	Op  string
	Err string
}

func (e *RepositoryError) Error() string {
	return e.Op + ": " + e.Err
}

// SearchEngineError represents an error from the search engine layer.
type SearchEngineError struct {
	Op  string
	Err string
}

func (e *SearchEngineError) Error() string {
	return e.Op + ": " + e.Err
}

// DriverError represents an error from the driver layer.
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}

// AdapterError represents a failure mapping one source-native item to a
// canonical record. It identifies the offending item so the import
// pipeline can log it and move on.
type AdapterError struct {
	Source SourceType
	ItemID string
	Err    string
}

func (e *AdapterError) Error() string {
	return string(e.Source) + " item " + e.ItemID + ": " + e.Err
}
