package hmm

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const coinsYAML = `
name: coins
transition:
  Coin 1: {Coin 1: 0.5, Coin 2: 0.5}
  Coin 2: {Coin 1: 0.5, Coin 2: 0.5}
emission:
  Coin 1: {Heads: 1.0, Tails: 0.0}
  Coin 2: {Heads: 0.0, Tails: 1.0}
start: {Coin 1: 0.5, Coin 2: 0.5}
`

const coinsJSON = `{
  "transition": {"Coin 1": {"Coin 1": 0.5, "Coin 2": 0.5}, "Coin 2": {"Coin 1": 0.5, "Coin 2": 0.5}},
  "emission": {"Coin 1": {"Heads": 1.0, "Tails": 0.0}, "Coin 2": {"Heads": 0.0, "Tails": 1.0}},
  "start": {"Coin 1": 0.5, "Coin 2": 0.5}
}`

func TestReadTables(t *testing.T) {

	ty, err := ReadTables(strings.NewReader(coinsYAML))
	fatalIf(t, err)
	tj, err := ReadTables(strings.NewReader(coinsJSON))
	fatalIf(t, err)

	if ty.Name != "coins" {
		t.Fatalf("name is [%s], expected coins", ty.Name)
	}
	tj.Name = ty.Name
	if !reflect.DeepEqual(ty, tj) {
		t.Fatalf("yaml and json tables differ:\n%+v\n%+v", ty, tj)
	}
	if !reflect.DeepEqual(ty, coinTablesNamed("coins", 1, 0)) {
		t.Fatalf("unexpected tables: %+v", ty)
	}

	m, err := NewModel(ty)
	fatalIf(t, err)
	if m.Name() != "coins" {
		t.Fatalf("model name is [%s], expected coins", m.Name())
	}
}

func TestReadTablesBad(t *testing.T) {

	if _, err := ReadTables(strings.NewReader("transition: [1, 2")); err == nil {
		t.Fatal("expected decoding error")
	}
}

func TestWriteReadModelFile(t *testing.T) {

	fn := filepath.Join(t.TempDir(), "models", "weather.yaml")
	m := makeModel(t, weatherTables(), Name("weather"))
	fatalIf(t, m.Tables().WriteFile(fn))

	m2, err := ReadModelFile(fn, UnknownSymbols(ZeroSymbols))
	fatalIf(t, err)
	if m2.Name() != "weather" || m2.Policy() != ZeroSymbols {
		t.Fatalf("wrong model read back: name %s policy %s", m2.Name(), m2.Policy())
	}
	if !reflect.DeepEqual(m.Tables(), m2.Tables()) {
		t.Fatalf("tables differ after write/read")
	}
}

func TestReadModelFileInvalid(t *testing.T) {

	tables := coinTables(0.5, 0.5)
	tables.Start["Coin 1"] = 0.9
	fn := filepath.Join(t.TempDir(), "bad.yaml")
	fatalIf(t, tables.WriteFile(fn))

	_, err := ReadModelFile(fn)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected wrapped ValidationError, got %v", err)
	}

	if _, err := ReadModelFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func coinTablesNamed(name string, e1, e2 float64) Tables {
	tables := coinTables(e1, e2)
	tables.Name = name
	return tables
}
