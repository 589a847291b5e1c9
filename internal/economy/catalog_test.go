package economy

import (
	"testing"
	"time"
)

func TestEntryJobTier(t *testing.T) {
	entries := []string{"Cashier", "Burger Flipper", "Intern", "Nurse", "Street Performer"}
	for _, name := range entries {
		tier := EntryJobTier(name)
		if tier <= 0 {
			t.Fatalf("EntryJobTier(%q) = %d, want a positive tier", name, tier)
		}
		if Jobs[tier][0].Title != name {
			t.Fatalf("tier %d entry title = %q, want %q", tier, Jobs[tier][0].Title, name)
		}
	}

	if tier := EntryJobTier("cashier"); tier <= 0 {
		t.Fatalf("EntryJobTier should be case-insensitive, got %d", tier)
	}

	// Promoted ranks cannot be taken directly.
	for _, name := range []string{"Manager", "CEO", "Doctor", "None", "Plumber"} {
		if tier := EntryJobTier(name); tier != -1 {
			t.Fatalf("EntryJobTier(%q) = %d, want -1", name, tier)
		}
	}
}

func TestJobTracksShape(t *testing.T) {
	if len(Jobs) < 2 {
		t.Fatalf("expected at least one real job track")
	}
	if Jobs[0][0].Title != "None" {
		t.Fatalf("tier 0 must be the unemployed sentinel, got %q", Jobs[0][0].Title)
	}
	for tier := 1; tier < len(Jobs); tier++ {
		for rank, r := range Jobs[tier] {
			if r.HourlyPay <= 0 {
				t.Fatalf("tier %d rank %d has pay %d", tier, rank, r.HourlyPay)
			}
			if r.PromoteAfter <= 0 {
				t.Fatalf("tier %d rank %d has promote threshold %d", tier, rank, r.PromoteAfter)
			}
		}
	}
}

func TestNextPromotionBoundary(t *testing.T) {
	tier := EntryJobTier("Cashier")
	threshold := Jobs[tier][0].PromoteAfter

	// Exactly at the threshold is promotable, one short is not.
	if _, ready, top := nextPromotion(tier, 0, threshold); !ready || top {
		t.Fatalf("counter == threshold: ready=%v top=%v, want ready", ready, top)
	}
	if _, ready, _ := nextPromotion(tier, 0, threshold-1); ready {
		t.Fatalf("counter == threshold-1 must not be promotable")
	}
	if _, ready, _ := nextPromotion(tier, 0, threshold+100); !ready {
		t.Fatalf("counter past threshold must stay promotable")
	}
	if got, _, _ := nextPromotion(tier, 0, 0); got != threshold {
		t.Fatalf("threshold = %d, want %d", got, threshold)
	}

	// The last rank of every track is terminal.
	for tr := 1; tr < len(Jobs); tr++ {
		if _, ready, top := nextPromotion(tr, len(Jobs[tr])-1, 1_000_000); !top || ready {
			t.Fatalf("tier %d top rank: ready=%v top=%v, want terminal", tr, ready, top)
		}
	}
}

func TestIllegalShopGate(t *testing.T) {
	if illegalShopOpen(IllegalShopMinimum - 1) {
		t.Fatalf("one below the minimum must stay locked")
	}
	if !illegalShopOpen(IllegalShopMinimum) {
		t.Fatalf("exactly the minimum must open the shop")
	}
}

func TestDrugByName(t *testing.T) {
	for _, want := range Drugs {
		got, ok := DrugByName(want.Name)
		if !ok || got.Name != want.Name {
			t.Fatalf("DrugByName(%q) failed", want.Name)
		}
	}
	if d, ok := DrugByName("weed"); !ok || d.Name != "Weed" {
		t.Fatalf("DrugByName should be case-insensitive, got %+v ok=%v", d, ok)
	}
	if _, ok := DrugByName("Aspirin"); ok {
		t.Fatalf("unexpected hit for unknown drug")
	}
}

func TestEveryDrugHasAnEffectSpec(t *testing.T) {
	for _, d := range Drugs {
		spec, ok := EffectTable[d.Effect]
		if !ok {
			t.Fatalf("drug %s references unknown effect %s", d.Name, d.Effect)
		}
		if spec.Duration <= 0 {
			t.Fatalf("effect %s has non-positive duration", d.Effect)
		}
		if spec.Target == "" {
			t.Fatalf("effect %s has no target operation", d.Effect)
		}
	}
}

func TestEffectBonusAndCooldownCut(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	effects := []ActiveEffect{
		{Kind: EffectIncomeBoost, ExpiresAt: exp},
		{Kind: EffectCooldownCut, ExpiresAt: exp},
	}
	if got := effectBonus(effects, OpPassiveIncome); got != 0.10 {
		t.Fatalf("income bonus = %v, want 0.10", got)
	}
	if got := effectBonus(effects, OpWorkPayout); got != 0 {
		t.Fatalf("work bonus = %v, want 0", got)
	}
	if got := cooldownCut(effects); got != 10*time.Minute {
		t.Fatalf("cooldown cut = %v, want 10m", got)
	}
	if got := cooldownCut(nil); got != 0 {
		t.Fatalf("cooldown cut with no effects = %v, want 0", got)
	}
}

func TestAssetInfo(t *testing.T) {
	name, price, err := assetInfo(ClassHouse, 0)
	if err != nil || name != Houses[0].Name || price != Houses[0].Price {
		t.Fatalf("assetInfo house 0 = (%q, %d, %v)", name, price, err)
	}
	if _, _, err := assetInfo(ClassHouse, len(Houses)); err == nil {
		t.Fatalf("expected out-of-range house index to fail")
	}
	if _, _, err := assetInfo(ClassBusiness, -1); err == nil {
		t.Fatalf("expected negative index to fail")
	}
	if _, _, err := assetInfo(AssetClass("boat"), 0); err == nil {
		t.Fatalf("expected unknown class to fail")
	}

	name, price, err = assetInfo(ClassIllegal, 2)
	if err != nil || name != "Acid Lab" || price != 2_000_000 {
		t.Fatalf("assetInfo illegal 2 = (%q, %d, %v)", name, price, err)
	}
}

func TestAssetClassTable(t *testing.T) {
	tests := []struct {
		class AssetClass
		want  string
	}{
		{ClassHouse, "econ.houses"},
		{ClassBusiness, "econ.businesses"},
		{ClassIllegal, "econ.illegal_businesses"},
	}
	for _, tc := range tests {
		got, err := tc.class.table()
		if err != nil || got != tc.want {
			t.Fatalf("table(%s) = (%q, %v), want %q", tc.class, got, err, tc.want)
		}
	}
	if _, err := AssetClass("yacht").table(); err == nil {
		t.Fatalf("expected unknown class table lookup to fail")
	}
}

func TestIllegalBusinessesProduceKnownDrugs(t *testing.T) {
	for _, ib := range IllegalBusinesses {
		if _, ok := DrugByName(ib.Produces); !ok {
			t.Fatalf("%s produces unknown drug %q", ib.Name, ib.Produces)
		}
		if ib.Price < IllegalShopMinimum {
			t.Fatalf("%s priced below the shop entry gate", ib.Name)
		}
	}
}
