package card

import (
	"testing"

	"github.com/3cbsolver/solver/pkg/action"
	"github.com/3cbsolver/solver/pkg/state"
)

func oneLandState(behavior string, manaProduced []Color) (state.State, Static) {
	static := Static{ID: "plains", Behavior: behavior, Types: []Type{Land}, ManaProduced: manaProduced}
	st := state.State{
		Players: [2]state.Player{
			{Battlefield: []state.Permanent{{CardID: "plains", Controller: 0, Owner: 0}}},
			{},
		},
	}
	return st, static
}

func TestBasicLandTapForMana(t *testing.T) {
	s, static := oneLandState("basic_land", []Color{White})
	h, ok := Lookup("basic_land")
	if !ok {
		t.Fatal("basic_land not registered")
	}
	acts := h.BattlefieldActions(s, 0, 0, static)
	if len(acts) != 1 || acts[0].AbilityTag != "tap_for_mana" {
		t.Fatalf("expected one tap_for_mana action, got %+v", acts)
	}
	out, err := h.Activate(s, 0, 0, static, acts[0])
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if !out.Players[0].Battlefield[0].Tapped {
		t.Error("land should be tapped after activation")
	}
	if out.Players[0].Mana.W != 1 {
		t.Errorf("mana.W = %d, want 1", out.Players[0].Mana.W)
	}
}

func TestLevelUpThresholds(t *testing.T) {
	h, _ := Lookup("level_up_creature")
	static := Static{Power: 2, Toughness: 2}

	p, tgh, kw := h.EffectiveStats(static, state.Permanent{})
	if p != 2 || tgh != 2 || len(kw) != 0 {
		t.Errorf("level 0 stats = %d/%d %v, want 2/2 no keywords", p, tgh, kw)
	}

	p, tgh, kw = h.EffectiveStats(static, state.Permanent{Counters: map[string]int{"level": 2}})
	if p != 2 || tgh != 2 || !kw[FirstStrike] {
		t.Errorf("level 2 stats = %d/%d %v, want 2/2 first strike", p, tgh, kw)
	}

	p, tgh, kw = h.EffectiveStats(static, state.Permanent{Counters: map[string]int{"level": 6}})
	if p != 4 || tgh != 4 || !kw[DoubleStrike] {
		t.Errorf("level 6 stats = %d/%d %v, want 4/4 double strike", p, tgh, kw)
	}
}

func TestLevelUpActivateAddsCounter(t *testing.T) {
	h, _ := Lookup("level_up_creature")
	static := Static{Power: 2, Toughness: 2}
	s := state.State{
		Players: [2]state.Player{
			{Battlefield: []state.Permanent{{CardID: "student_of_warfare"}}, Mana: state.ManaPool{W: 1}},
			{},
		},
	}
	act := action.Action{Kind: action.Activate, PermanentIndex: 0, AbilityTag: "level_up", Payment: action.ManaPayment{W: 1}, SacrificeIndex: -1}
	out, err := h.Activate(s, 0, 0, static, act)
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if out.Players[0].Battlefield[0].Counters["level"] != 1 {
		t.Errorf("level counter = %d, want 1", out.Players[0].Battlefield[0].Counters["level"])
	}
	if !out.Players[0].Mana.IsEmpty() {
		t.Error("mana should be spent")
	}
}

func TestCombatDamageCounterOnEvent(t *testing.T) {
	h, _ := Lookup("combat_damage_counter_creature")
	static := Static{Power: 1, Toughness: 1}
	s := state.State{
		Players: [2]state.Player{
			{Battlefield: []state.Permanent{{CardID: "stromkirk_noble"}}},
			{},
		},
	}
	triggers := h.OnEvent(s, 0, 0, static, EventDealsDamage)
	if len(triggers) != 1 {
		t.Fatalf("expected one trigger, got %d", len(triggers))
	}
	out, err := triggers[0].Apply(s)
	if err != nil {
		t.Fatalf("trigger apply failed: %v", err)
	}
	if out.Players[0].Battlefield[0].Counters["+1/+1"] != 1 {
		t.Error("expected a +1/+1 counter to be added")
	}
	p, tgh, _ := h.EffectiveStats(static, out.Players[0].Battlefield[0])
	if p != 2 || tgh != 2 {
		t.Errorf("effective stats = %d/%d, want 2/2 after one +1/+1 counter", p, tgh)
	}
}

func TestBoastSacrificeDealsDamage(t *testing.T) {
	h, _ := Lookup("boast_sac_creature")
	static := Static{Power: 2, Toughness: 1}
	s := state.State{
		Players: [2]state.Player{
			{
				Battlefield: []state.Permanent{
					{CardID: "heartfire_hero", HasAttacked: true},
					{CardID: "plains"},
				},
				Mana: state.ManaPool{R: 1, C: 1},
			},
			{Life: 20},
		},
	}
	acts := h.BattlefieldActions(s, 0, 0, static)
	if len(acts) != 1 {
		t.Fatalf("expected one boast action (one other permanent to sacrifice), got %d", len(acts))
	}
	out, err := h.Activate(s, 0, 0, static, acts[0])
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if len(out.Players[0].Battlefield) != 1 {
		t.Errorf("expected sacrifice to remove a permanent, battlefield = %d", len(out.Players[0].Battlefield))
	}
	if out.Players[1].Life != 18 {
		t.Errorf("opponent life = %d, want 18", out.Players[1].Life)
	}
}

func TestManLandAnimate(t *testing.T) {
	h, _ := Lookup("man_land")
	static := Static{Types: []Type{Land}, ManaProduced: []Color{Colorless}}
	s := state.State{
		Players: [2]state.Player{
			{Battlefield: []state.Permanent{{CardID: "mutavault"}}, Mana: state.ManaPool{C: 1}},
			{},
		},
	}
	acts := h.BattlefieldActions(s, 0, 0, static)
	var animate action.Action
	found := false
	for _, a := range acts {
		if a.AbilityTag == "animate" {
			animate = a
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an animate action among %+v", acts)
	}
	out, err := h.Activate(s, 0, 0, static, animate)
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	perm := out.Players[0].Battlefield[0]
	if !perm.Animated || perm.TempPower != 2 || perm.TempToughness != 2 {
		t.Errorf("expected animated 2/2, got %+v", perm)
	}
}

func TestNoUntapCreatureSkipsUntap(t *testing.T) {
	h, _ := Lookup("no_untap_creature")
	if h.SkipsUntap == nil || !h.SkipsUntap(Static{}, state.Permanent{}) {
		t.Error("expected SkipsUntap to report true")
	}
}
