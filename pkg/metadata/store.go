package metadata

// Store maps archive paths to their accumulated records.
// It is not safe for concurrent use.
type Store struct {
	records map[string]*Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]*Record)}
}

// Get returns the record for archive, or nil if no field was ever written.
// The returned record must not be modified.
func (s *Store) Get(archive string) *Record {
	return s.records[archive]
}

// Merge validates each candidate and writes the survivors into archive's
// record. With overwrite false an existing value is kept; with overwrite
// true it is replaced. Invalid candidates are dropped silently, and no
// record is created until a field is written.
// It returns the fields that were written.
func (s *Store) Merge(archive string, c Candidates, overwrite bool) []Field {
	if archive == "" || len(c) == 0 {
		return nil
	}
	rec := s.records[archive]

	var written []Field
	for _, f := range Fields {
		value, ok := c[f]
		if !ok || !Validate(f, value) {
			continue
		}
		if rec == nil {
			rec = &Record{}
			s.records[archive] = rec
		}
		if overwrite || !rec.Has(f) {
			rec.set(f, value)
			written = append(written, f)
		}
	}
	return written
}

// Fill writes value into field for archive only when the field is absent.
// The value still has to pass validation.
func (s *Store) Fill(archive string, field Field, value string) bool {
	if rec := s.records[archive]; rec != nil && rec.Has(field) {
		return false
	}
	return len(s.Merge(archive, Candidates{field: value}, false)) > 0
}

// Partition splits archives into those with a complete record and the rest,
// preserving input order.
func (s *Store) Partition(archives []string) (complete, partial []string) {
	for _, a := range archives {
		if s.records[a].Complete() {
			complete = append(complete, a)
		} else {
			partial = append(partial, a)
		}
	}
	return complete, partial
}

// Len returns the number of archives with at least one field.
func (s *Store) Len() int {
	return len(s.records)
}
