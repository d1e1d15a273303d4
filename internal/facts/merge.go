package facts

import "sort"

// Merge combines sources key by key in argument order. When a code appears in
// more than one source the later source wins and the earlier list is dropped.
// Nil or empty sources contribute nothing. The result never aliases the
// inputs' lists.
func Merge(sources ...map[CountryCode]FactList) map[CountryCode]FactList {
	size := 0
	for _, src := range sources {
		size += len(src)
	}
	out := make(map[CountryCode]FactList, size)
	for _, src := range sources {
		for code, list := range src {
			out[code] = list.Clone()
		}
	}
	return out
}

// Aggregate merges the regional tables in declaration order and the default
// table last, producing the lookup table for one (locale, category) pair.
func Aggregate(regions []RegionalTable, defaults RegionalTable) *Table {
	sources := make([]map[CountryCode]FactList, 0, len(regions)+1)
	for _, region := range regions {
		sources = append(sources, region.Facts)
	}
	sources = append(sources, defaults.Facts)
	return &Table{entries: Merge(sources...)}
}

// Collision records a code defined by more than one source.
type Collision struct {
	Code CountryCode
	// Regions lists every source defining Code, in merge order.
	Regions []string
	// Winner is the region whose list survives the merge.
	Winner string
}

// Collisions reports codes present in more than one of the sources Aggregate
// would merge. Results are sorted by code.
func Collisions(regions []RegionalTable, defaults RegionalTable) []Collision {
	ordered := make([]RegionalTable, 0, len(regions)+1)
	ordered = append(ordered, regions...)
	ordered = append(ordered, defaults)

	seen := map[CountryCode][]string{}
	for _, table := range ordered {
		for code := range table.Facts {
			seen[code] = append(seen[code], table.Region)
		}
	}

	out := []Collision{}
	for code, owners := range seen {
		if len(owners) < 2 {
			continue
		}
		out = append(out, Collision{
			Code:    code,
			Regions: owners,
			Winner:  owners[len(owners)-1],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// FlattenDirectory concatenates directory groups in order.
func FlattenDirectory(groups []DirectoryGroup) []DirectoryEntry {
	total := 0
	for _, group := range groups {
		total += len(group.Entries)
	}
	out := make([]DirectoryEntry, 0, total)
	for _, group := range groups {
		out = append(out, group.Entries...)
	}
	return out
}
