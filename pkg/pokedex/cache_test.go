package pokedex

import "testing"

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache()
	record := &Record{ID: 25, Name: "pikachu"}

	c.Put("pikachu", record)
	if got := c.Get("pikachu"); got != record {
		t.Errorf("Get() = %v, want the stored record", got)
	}
}

func TestCacheKeysAreCaseInsensitive(t *testing.T) {
	c := NewCache()
	record := &Record{ID: 25, Name: "pikachu"}

	c.Put("Pikachu", record)
	if got := c.Get("pikachu"); got != record {
		t.Error("a differently-cased name key missed the same entry")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheIDAndNameKeysAreIndependent(t *testing.T) {
	c := NewCache()
	record := &Record{ID: 25, Name: "pikachu"}

	// No canonicalization across id and name keys for the same Pokemon
	c.Put("pikachu", record)
	if got := c.Get("25"); got != nil {
		t.Error("id key unexpectedly satisfied by a name-keyed entry")
	}

	c.Put("25", record)
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 independent entries", c.Len())
	}
}

func TestCacheMiss(t *testing.T) {
	c := NewCache()
	if got := c.Get("missingno"); got != nil {
		t.Errorf("Get() on empty cache = %v, want nil", got)
	}
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pikachu", "pikachu"},
		{"  Mr-Mime ", "mr-mime"},
		{"25", "25"},
	}
	for _, tt := range tests {
		if got := CacheKey(tt.in); got != tt.want {
			t.Errorf("CacheKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
