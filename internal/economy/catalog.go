package economy

import (
	"strings"
	"time"
)

type JobRank struct {
	Title        string
	HourlyPay    int64
	PromoteAfter int
}

// Jobs is indexed by (tier, rank). Tier 0 is the unemployed sentinel: never
// reachable by promotion, only by quitting. The top rank of each tier carries
// an unreachable threshold; promotion is terminal there.
var Jobs = [][]JobRank{
	{{Title: "None"}},
	{
		{Title: "Cashier", HourlyPay: 10, PromoteAfter: 5},
		{Title: "Stocker", HourlyPay: 15, PromoteAfter: 8},
		{Title: "Manager", HourlyPay: 20, PromoteAfter: 1000},
	},
	{
		{Title: "Burger Flipper", HourlyPay: 6, PromoteAfter: 6},
		{Title: "Assistant Manager", HourlyPay: 14, PromoteAfter: 4},
		{Title: "Manager", HourlyPay: 24, PromoteAfter: 1000},
	},
	{
		{Title: "Intern", HourlyPay: 5, PromoteAfter: 5},
		{Title: "Junior Developer", HourlyPay: 30, PromoteAfter: 20},
		{Title: "Senior Developer", HourlyPay: 60, PromoteAfter: 50},
		{Title: "Tech Lead", HourlyPay: 125, PromoteAfter: 1000},
	},
	{
		{Title: "Nurse", HourlyPay: 10, PromoteAfter: 10},
		{Title: "Doctor", HourlyPay: 25, PromoteAfter: 20},
		{Title: "Surgeon", HourlyPay: 50, PromoteAfter: 50},
		{Title: "Chief Surgeon", HourlyPay: 130, PromoteAfter: 1000},
	},
	{
		{Title: "Street Performer", HourlyPay: 5, PromoteAfter: 20},
		{Title: "Actor", HourlyPay: 30, PromoteAfter: 15},
		{Title: "Director", HourlyPay: 50, PromoteAfter: 50},
		{Title: "Producer", HourlyPay: 135, PromoteAfter: 1000},
	},
}

// EntryJobTier returns the tier whose entry rank matches name, or -1.
func EntryJobTier(name string) int {
	for tier := 1; tier < len(Jobs); tier++ {
		if strings.EqualFold(Jobs[tier][0].Title, name) {
			return tier
		}
	}
	return -1
}

// nextPromotion reports the promotion position for an employed account:
// the work-counter threshold of the current rank, whether the counter meets
// it, and whether the account already holds the top rank of its track.
func nextPromotion(tier, rank, timesWorked int) (threshold int, ready, top bool) {
	ranks := Jobs[tier]
	if rank >= len(ranks)-1 {
		return 0, false, true
	}
	threshold = ranks[rank].PromoteAfter
	return threshold, timesWorked >= threshold, false
}

type Asset struct {
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	HourlyIncome int64  `json:"hourly_income"`
}

var Houses = []Asset{
	{Name: "Studio Apartment", Price: 1_000, HourlyIncome: 10},
	{Name: "Suite", Price: 2_000, HourlyIncome: 20},
	{Name: "Bungalow", Price: 5_000, HourlyIncome: 50},
	{Name: "Duplex", Price: 10_000, HourlyIncome: 100},
	{Name: "Townhouse", Price: 20_000, HourlyIncome: 200},
	{Name: "Mansion", Price: 100_000, HourlyIncome: 1_000},
}

var Businesses = []Asset{
	{Name: "Food Truck", Price: 100_000, HourlyIncome: 1_100},
	{Name: "Laundromat", Price: 150_000, HourlyIncome: 1_700},
	{Name: "Gas Station", Price: 225_000, HourlyIncome: 2_400},
	{Name: "Clothing Store", Price: 300_000, HourlyIncome: 3_500},
	{Name: "Car Dealership", Price: 500_000, HourlyIncome: 5_600},
	{Name: "Chain Supermarket", Price: 1_000_000, HourlyIncome: 11_000},
}

// IllegalBusiness slots produce one unit of a consumable per passive-income
// claim instead of cash.
type IllegalBusiness struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Produces string `json:"produces"`
}

var IllegalBusinesses = []IllegalBusiness{
	{Name: "Weed Farm", Price: 1_250_000, Produces: "Weed"},
	{Name: "Cocaine Lockup", Price: 1_500_000, Produces: "Cocaine"},
	{Name: "Acid Lab", Price: 2_000_000, Produces: "LSD"},
	{Name: "Meth Lab", Price: 2_500_000, Produces: "Meth"},
}

// IllegalShopMinimum gates the illegal catalog behind a balance check.
const IllegalShopMinimum = int64(1_000_000)

type AssetClass string

const (
	ClassHouse    AssetClass = "house"
	ClassBusiness AssetClass = "business"
	ClassIllegal  AssetClass = "illegal_business"
)

// TargetOp names the operation an active effect modifies.
type TargetOp string

const (
	OpPassiveIncome TargetOp = "passive_income"
	OpWorkPayout    TargetOp = "work_payout"
	OpCoinflipLuck  TargetOp = "coinflip_luck"
	OpWorkCooldown  TargetOp = "work_cooldown"
)

type EffectKind string

const (
	EffectIncomeBoost EffectKind = "income_boost"
	EffectWorkBoost   EffectKind = "work_boost"
	EffectLuckBoost   EffectKind = "luck_boost"
	EffectCooldownCut EffectKind = "cooldown_cut"
)

// EffectSpec is the single table that drives every effect application: one
// duration, one target operation, one modifier. Bonus is a fractional payout
// or probability bump; CooldownCut only applies to OpWorkCooldown.
type EffectSpec struct {
	Duration    time.Duration
	Target      TargetOp
	Bonus       float64
	CooldownCut time.Duration
}

var EffectTable = map[EffectKind]EffectSpec{
	EffectIncomeBoost: {Duration: time.Hour, Target: OpPassiveIncome, Bonus: 0.10},
	EffectWorkBoost:   {Duration: time.Hour, Target: OpWorkPayout, Bonus: 0.25},
	EffectLuckBoost:   {Duration: time.Hour, Target: OpCoinflipLuck, Bonus: 0.20},
	EffectCooldownCut: {Duration: time.Hour, Target: OpWorkCooldown, CooldownCut: 10 * time.Minute},
}

type Drug struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	Effect      EffectKind `json:"effect"`
}

var Drugs = []Drug{
	{Name: "Weed", Description: "+10% passive income for one hour", Price: 5_000, Effect: EffectIncomeBoost},
	{Name: "Cocaine", Description: "+25% money from work for one hour", Price: 15_000, Effect: EffectWorkBoost},
	{Name: "LSD", Description: "+20% win chance in coinflip for one hour", Price: 25_000, Effect: EffectLuckBoost},
	{Name: "Meth", Description: "-10 minutes from work cooldown for one hour", Price: 50_000, Effect: EffectCooldownCut},
}

func DrugByName(name string) (Drug, bool) {
	for _, d := range Drugs {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Drug{}, false
}
