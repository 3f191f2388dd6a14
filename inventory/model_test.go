package inventory_test

import (
	"testing"

	"atlas-rooms/inventory"
	"atlas-rooms/item"
)

func TestVisibleHidesHiddenItems(t *testing.T) {
	m := inventory.NewModel()
	m.Set(item.NewBuilder("torch", "a flickering torch").Build())
	m.Set(item.NewBuilder("trapdoor", "a concealed trapdoor").SetHidden(true).Build())

	if _, ok := m.Visible("trapdoor", false); ok {
		t.Fatalf("Hidden item visible to a plain viewer.")
	}
	if _, ok := m.Visible("trapdoor", true); !ok {
		t.Fatalf("Hidden item invisible to an elevated viewer.")
	}
	if _, ok := m.Visible("torch", false); !ok {
		t.Fatalf("Plain item invisible.")
	}

	vs := m.VisibleItems(false)
	if len(vs) != 1 || vs[0].Name() != "torch" {
		t.Fatalf("Plain listing contains [%d] items.", len(vs))
	}
	if len(m.VisibleItems(true)) != 2 {
		t.Fatalf("Elevated listing omits items.")
	}
}

func TestItemsAreSortedByName(t *testing.T) {
	m := inventory.NewModel()
	m.Set(item.NewBuilder("torch", "").Build())
	m.Set(item.NewBuilder("apple", "").Build())
	m.Set(item.NewBuilder("coin", "").Build())

	is := m.Items()
	if len(is) != 3 {
		t.Fatalf("Listing contains [%d] items.", len(is))
	}
	if is[0].Name() != "apple" || is[1].Name() != "coin" || is[2].Name() != "torch" {
		t.Fatalf("Listing is not in name order.")
	}
}

func TestCloneIsolation(t *testing.T) {
	m := inventory.NewModel()
	m.Set(item.NewBuilder("torch", "").Build())

	c := m.Clone()
	c.Remove("torch")
	c.Set(item.NewBuilder("coin", "").Build())

	if _, ok := m.Get("torch"); !ok {
		t.Fatalf("Removing from the clone removed from the original.")
	}
	if _, ok := m.Get("coin"); ok {
		t.Fatalf("Adding to the clone added to the original.")
	}
}

func TestRecordsRoundTripThroughColumn(t *testing.T) {
	m := inventory.NewModel()
	m.Set(item.NewBuilder("coin", "a gold coin").SetQuantity(7).Build())
	m.Set(item.NewBuilder("trapdoor", "a concealed trapdoor").SetHidden(true).Build())

	v, err := m.Serialize().Value()
	if err != nil {
		t.Fatalf("Failed to serialize column value: %v", err)
	}

	var rs inventory.Records
	if err = rs.Scan(v); err != nil {
		t.Fatalf("Failed to scan column value: %v", err)
	}

	out, err := inventory.Make(rs)
	if err != nil {
		t.Fatalf("Failed to rebuild inventory: %v", err)
	}
	if out.Size() != 2 {
		t.Fatalf("Round trip kept [%d] items.", out.Size())
	}
	coin, ok := out.Get("coin")
	if !ok || coin.Quantity() != 7 {
		t.Fatalf("Coin stack lost its quantity.")
	}
	trapdoor, ok := out.Get("trapdoor")
	if !ok || !trapdoor.Hidden() {
		t.Fatalf("Trapdoor lost its hidden flag.")
	}
}

func TestScanOfEmptyColumn(t *testing.T) {
	var rs inventory.Records
	if err := rs.Scan(nil); err != nil {
		t.Fatalf("Failed to scan nil column: %v", err)
	}
	if len(rs) != 0 {
		t.Fatalf("Nil column produced [%d] records.", len(rs))
	}

	if err := rs.Scan([]byte("{}")); err != nil {
		t.Fatalf("Failed to scan empty document: %v", err)
	}
	if len(rs) != 0 {
		t.Fatalf("Empty document produced [%d] records.", len(rs))
	}
}
