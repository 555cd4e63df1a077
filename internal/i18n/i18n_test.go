package i18n

import (
	"reflect"
	"testing"
)

func TestLookup_Fallback(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"en", "Math Solver"},
		{"pt-BR", "Resolvedor de Matemática"},
		{"de", "Mathe-Löser"},
		{"", "Math Solver"},
		{"xx", "Math Solver"},
		{"pt", "Math Solver"},
		{"EN", "Math Solver"},
	}

	for _, tt := range tests {
		if got := Lookup(tt.code).Title; got != tt.want {
			t.Errorf("Lookup(%q).Title: got %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve("fr"); got != "fr" {
		t.Errorf("Resolve(fr): got %q", got)
	}
	if got := Resolve("klingon"); got != Default {
		t.Errorf("Resolve(klingon): got %q, want %q", got, Default)
	}
}

func TestTables_Complete(t *testing.T) {
	for code, table := range Tables() {
		v := reflect.ValueOf(table)
		for i := 0; i < v.NumField(); i++ {
			if v.Field(i).String() == "" {
				t.Errorf("locale %s: %s is empty", code, v.Type().Field(i).Name)
			}
		}
	}
}

func TestLocales_MatchTables(t *testing.T) {
	tables := Tables()
	locs := Locales()

	if len(locs) != len(tables) {
		t.Errorf("%d locales listed, %d tables", len(locs), len(tables))
	}
	for _, l := range locs {
		if _, ok := tables[l.Code]; !ok {
			t.Errorf("locale %s has no table", l.Code)
		}
		if l.Name == "" {
			t.Errorf("locale %s has no name", l.Code)
		}
	}
	if locs[0].Code != Default {
		t.Errorf("first locale: got %s, want %s", locs[0].Code, Default)
	}
}

func TestTables_ReturnsCopy(t *testing.T) {
	Tables()["en"] = Strings{}
	if Lookup("en").Title == "" {
		t.Error("mutating Tables() result changed the package tables")
	}
}

func TestErrorMessage(t *testing.T) {
	if got := Lookup(Default).Error; got != "Invalid or unrecognized expression" {
		t.Errorf("default error message: got %q", got)
	}
}
