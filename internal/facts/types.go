package facts

// Category identifies an independent fact domain such as electricity or water.
type Category string

// Locale identifies the language fact text is written in.
type Locale string

// CountryCode is an ISO 3166-1 alpha-2 code or one of the reserved pseudo codes.
type CountryCode string

// FactList is the ordered set of display strings stored for one country.
type FactList []string

const (
	CategoryElectricity Category = "electricity"
	CategoryWater       Category = "water"
)

const (
	// DefaultCode holds generic facts used when a country has no dedicated entry.
	DefaultCode CountryCode = "DEFAULT"
	// WorldCode holds facts framed at a global level. It is never an implicit fallback.
	WorldCode CountryCode = "WORLD"
)

// IsReserved reports whether code is one of the pseudo-country keys.
func (c CountryCode) IsReserved() bool {
	return c == DefaultCode || c == WorldCode
}

func (c CountryCode) String() string { return string(c) }

func (c Category) String() string { return string(c) }

func (l Locale) String() string { return string(l) }

// Clone returns a copy that callers can modify without touching the source list.
func (f FactList) Clone() FactList {
	if f == nil {
		return nil
	}
	out := make(FactList, len(f))
	copy(out, f)
	return out
}

// Equal reports whether both lists hold the same strings in the same order.
func (f FactList) Equal(other FactList) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

// RegionalTable is an authoring partition of fact lists for one region.
// The region name only matters while merging and auditing.
type RegionalTable struct {
	Region string
	Facts  map[CountryCode]FactList
}

// DirectoryEntry describes a country with dedicated content. DisplayNameKey is
// resolved by an external translator.
type DirectoryEntry struct {
	Code           CountryCode `json:"code"`
	DisplayNameKey string      `json:"displayNameKey"`
}

// DirectoryGroup keeps directory entries grouped by region for readability.
type DirectoryGroup struct {
	Region  string           `json:"region"`
	Entries []DirectoryEntry `json:"entries"`
}
