package dictionary

// MergeReport counts how edited rows were matched against the dataset.
// Unmatched and Duplicates are integrity problems: an unmatched edit is
// dropped, a duplicated key is written to every matching entry.
type MergeReport struct {
	Applied    int  `json:"applied"`
	Skipped    int  `json:"skipped"`
	Unmatched  int  `json:"unmatched"`
	Duplicates int  `json:"duplicates"`
	Replaced   bool `json:"replaced,omitempty"`
}

// Clean reports whether every edited row matched exactly one entry.
func (r MergeReport) Clean() bool {
	return r.Skipped == 0 && r.Unmatched == 0 && r.Duplicates == 0
}

// Merge folds edited rows of the given view back into a copy of full.
//
// In the tables view a row matches table entries with the same name and
// parent. In the columns view it matches on (name, parent, type), or on
// (name, parent) when the row carries no type. Every field of the dataset
// schema is copied from the edited row onto each match. Rows without a name
// or parent are skipped. Any other view replaces the dataset with the rows.
// full is never modified.
func Merge(full Dataset, edited []Row, mode Mode, selectedTable string) (Dataset, MergeReport) {
	var report MergeReport

	switch {
	case mode == ModeTables:
		out := full.Clone()
		hasType := out.HasType()
		for _, row := range edited {
			e := out.restrict(row.Entry)
			if e.Name == "" || e.Parent == "" {
				report.Skipped++
				continue
			}
			n := out.overwrite(e, func(cand Entry) bool {
				if hasType && !cand.IsTable() {
					return false
				}
				return cand.Name == e.Name && cand.Parent == e.Parent
			})
			report.count(n)
		}
		return out, report

	case mode == ModeColumns && selectedTable != "":
		out := full.Clone()
		for _, row := range edited {
			e := out.restrict(row.Entry)
			if e.Name == "" || e.Parent == "" {
				report.Skipped++
				continue
			}
			key := KeyOf(e, out.HasType() && e.Type != "")
			withType := key.Type != ""
			n := out.overwrite(e, func(cand Entry) bool {
				return KeyOf(cand, withType) == key
			})
			report.count(n)
		}
		return out, report

	default:
		out := Dataset{
			Fields:  append([]Field(nil), full.Fields...),
			Entries: make([]Entry, 0, len(edited)),
		}
		for _, row := range edited {
			out.Entries = append(out.Entries, out.restrict(row.Entry))
		}
		report.Applied = len(edited)
		report.Replaced = true
		return out, report
	}
}

// overwrite copies every dataset field of e onto each entry accepted by
// match and returns how many entries were written.
func (d Dataset) overwrite(e Entry, match func(Entry) bool) int {
	n := 0
	for i := range d.Entries {
		if !match(d.Entries[i]) {
			continue
		}
		for _, f := range d.Fields {
			copyField(&d.Entries[i], e, f)
		}
		n++
	}
	return n
}

func (r *MergeReport) count(matches int) {
	switch {
	case matches == 0:
		r.Unmatched++
	case matches > 1:
		r.Duplicates++
		r.Applied++
	default:
		r.Applied++
	}
}
