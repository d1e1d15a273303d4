package facts

import "testing"

func sampleTable() *Table {
	return Aggregate([]RegionalTable{
		{Region: "europe", Facts: map[CountryCode]FactList{"DE": {"one", "two"}}},
	}, RegionalTable{Region: "default", Facts: map[CountryCode]FactList{
		DefaultCode: {"generic"},
		WorldCode:   {"global"},
	}})
}

func TestTableGetIsExactAndCaseSensitive(t *testing.T) {
	table := sampleTable()

	if _, ok := table.Get("DE"); !ok {
		t.Fatal("expected DE entry")
	}
	if _, ok := table.Get("de"); ok {
		t.Fatal("expected lowercase lookup to miss")
	}
	if _, ok := table.Get(" DE"); ok {
		t.Fatal("expected padded lookup to miss")
	}
}

func TestTableResolve(t *testing.T) {
	table := sampleTable()

	t.Run("returns own entry", func(t *testing.T) {
		res := table.Resolve("DE")
		if res.Fallback || res.Code != "DE" {
			t.Fatalf("expected direct hit, got %+v", res)
		}
		if !res.Facts.Equal(FactList{"one", "two"}) {
			t.Fatalf("unexpected facts %v", res.Facts)
		}
	})

	t.Run("falls back to DEFAULT", func(t *testing.T) {
		res := table.Resolve("ZZ")
		if !res.Fallback || res.Code != DefaultCode || res.Requested != "ZZ" {
			t.Fatalf("expected default fallback, got %+v", res)
		}
		if !res.Facts.Equal(FactList{"generic"}) {
			t.Fatalf("unexpected facts %v", res.Facts)
		}
	})

	t.Run("WORLD is addressable but not a fallback", func(t *testing.T) {
		res := table.Resolve(WorldCode)
		if res.Fallback || !res.Facts.Equal(FactList{"global"}) {
			t.Fatalf("expected explicit world lookup, got %+v", res)
		}
	})

	t.Run("missing DEFAULT yields nothing", func(t *testing.T) {
		bare := Aggregate(nil, RegionalTable{})
		res := bare.Resolve("ZZ")
		if res.Found() {
			t.Fatalf("expected empty resolution, got %+v", res)
		}
	})
}

func TestTableAccessorsReturnCopies(t *testing.T) {
	table := sampleTable()

	list, _ := table.Get("DE")
	list[0] = "mutated"

	again, _ := table.Get("DE")
	if again[0] != "one" {
		t.Fatalf("expected backing store to be untouched, got %q", again[0])
	}

	entries := table.Entries()
	delete(entries, "DE")
	if !table.Has("DE") {
		t.Fatal("expected Entries copy to be detached")
	}
}

func TestTableCodesSorted(t *testing.T) {
	codes := sampleTable().Codes()
	want := []CountryCode{"DE", DefaultCode, WorldCode}
	if len(codes) != len(want) {
		t.Fatalf("expected %d codes, got %v", len(want), codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("code %d: expected %s, got %s", i, want[i], codes[i])
		}
	}
}

func TestNilTableIsSafe(t *testing.T) {
	var table *Table
	if _, ok := table.Get("DE"); ok {
		t.Fatal("expected miss on nil table")
	}
	if table.Len() != 0 || len(table.Codes()) != 0 {
		t.Fatal("expected empty nil table")
	}
}

func TestTableEqual(t *testing.T) {
	if !sampleTable().Equal(sampleTable()) {
		t.Fatal("expected value-equal tables")
	}
	empty := Aggregate(nil, RegionalTable{})
	var missing *Table
	if !missing.Equal(empty) || !empty.Equal(missing) {
		t.Fatal("expected nil table to equal an empty table")
	}
	if missing.Equal(sampleTable()) || sampleTable().Equal(missing) {
		t.Fatal("expected nil table to differ from a populated one")
	}
	other := Aggregate([]RegionalTable{
		{Region: "europe", Facts: map[CountryCode]FactList{"DE": {"one"}}},
	}, RegionalTable{Region: "default", Facts: map[CountryCode]FactList{
		DefaultCode: {"generic"},
		WorldCode:   {"global"},
	}})
	if sampleTable().Equal(other) {
		t.Fatal("expected differing lists to compare unequal")
	}
}
