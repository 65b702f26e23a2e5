package cache

import (
	"testing"
)

func TestCacheInit(t *testing.T) {
	cache, err := NewCache(5)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()
	hits, misses, c := cache.Stats()
	if hits != 0 || misses != 0 {
		t.Errorf("hits = %v, misses = %v, want 0", hits, misses)
	}
	if c != 5 {
		t.Errorf("capacity = %v, want 5", c)
	}
}

func TestSetInsertsValue(t *testing.T) {
	cache, err := NewCache(100)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	key := []string{"Heads", "Tails", "Heads"}
	if !cache.Set(key, 0.125) {
		t.Fatal("Set was dropped")
	}
	cache.Wait()

	v, ok := cache.Get(key)
	if !ok {
		t.Fatalf("Cache returned not ok")
	}
	if v != 0.125 {
		t.Errorf("Cache has incorrect value: %f != 0.125", v)
	}

	if _, ok := cache.Get([]string{"Heads", "Tails"}); ok {
		t.Errorf("prefix must not hit")
	}

	hits, misses, _ := cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("hits = %d, misses = %d, want 1 and 1", hits, misses)
	}
}

func TestKeyIsUnambiguous(t *testing.T) {
	pairs := [][2][]string{
		{{"ab", "c"}, {"a", "bc"}},
		{{}, {""}},
		{{""}, {"", ""}},
		{{"Heads\x1fTails"}, {"Heads", "Tails"}},
		{{"1:a"}, {"a"}},
		{{"1:a1:b"}, {"a", "b"}},
	}
	for _, p := range pairs {
		if a, b := Key(p[0]), Key(p[1]); a == b {
			t.Errorf("keys for %q and %q collide: %q", p[0], p[1], a)
		}
	}
}

func TestEmptySequenceDoesNotHit(t *testing.T) {
	cache, err := NewCache(100)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	cache.Set([]string{""}, 0)
	cache.Wait()
	if _, ok := cache.Get(nil); ok {
		t.Fatal("empty sequence hit the entry of [\"\"]")
	}
}

func TestDeleteAndClear(t *testing.T) {
	cache, err := NewCache(100)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	k1, k2 := []string{"a"}, []string{"b"}
	cache.Set(k1, 0.5)
	cache.Set(k2, 0.25)
	cache.Wait()

	cache.Delete(k1)
	cache.Wait()
	if _, ok := cache.Get(k1); ok {
		t.Errorf("deleted key still present")
	}

	cache.Clear()
	if _, ok := cache.Get(k2); ok {
		t.Errorf("key present after Clear")
	}
}
