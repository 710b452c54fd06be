package badge

import (
	"time"

	"lg/canteen-go-api/internal/food"
)

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

var rarityRank = map[Rarity]int{
	RarityCommon:    0,
	RarityRare:      1,
	RarityEpic:      2,
	RarityLegendary: 3,
}

// Definition is one static catalog entry. Target is the threshold progress is
// measured against.
type Definition struct {
	ID          string     `json:"id"`
	Name        food.Label `json:"name"`
	Description food.Label `json:"description"`
	Icon        string     `json:"icon"`
	Tier        Tier       `json:"tier"`
	Rarity      Rarity     `json:"rarity"`
	Target      int        `json:"target"`

	check func(ev *evaluation, target int) result
}

type result struct {
	current  float64
	earned   bool
	earnedAt time.Time
}

// earlyAdopterCutoff closes the early adopter badge: the first log must
// predate it.
var earlyAdopterCutoff = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func hasVeg(m *food.Menu) bool     { return len(m.Vegetables) > 0 }
func hasProtein(m *food.Menu) bool { return len(m.Proteins) > 0 }

var catalog = []Definition{
	{ID: "streak_3", Name: food.Label{EN: "Getting Started", TH: "เริ่มต้นดี"}, Description: food.Label{EN: "Log meals 3 days in a row", TH: "บันทึกอาหาร 3 วันติดต่อกัน"},
		Icon: "🔥", Tier: TierBronze, Rarity: RarityCommon, Target: 3, check: checkStreak},
	{ID: "streak_7", Name: food.Label{EN: "Week Warrior", TH: "นักสู้ประจำสัปดาห์"}, Description: food.Label{EN: "Log meals 7 days in a row", TH: "บันทึกอาหาร 7 วันติดต่อกัน"},
		Icon: "🔥", Tier: TierSilver, Rarity: RarityRare, Target: 7, check: checkStreak},
	{ID: "streak_14", Name: food.Label{EN: "Fortnight Focus", TH: "สองสัปดาห์ไม่พลาด"}, Description: food.Label{EN: "Log meals 14 days in a row", TH: "บันทึกอาหาร 14 วันติดต่อกัน"},
		Icon: "⚡", Tier: TierGold, Rarity: RarityEpic, Target: 14, check: checkStreak},
	{ID: "streak_30", Name: food.Label{EN: "Habit Master", TH: "เจ้าแห่งวินัย"}, Description: food.Label{EN: "Log meals 30 days in a row", TH: "บันทึกอาหาร 30 วันติดต่อกัน"},
		Icon: "👑", Tier: TierPlatinum, Rarity: RarityLegendary, Target: 30, check: checkStreak},

	{ID: "first_meal", Name: food.Label{EN: "First Bite", TH: "คำแรก"}, Description: food.Label{EN: "Log your first meal", TH: "บันทึกอาหารมื้อแรก"},
		Icon: "🍽️", Tier: TierBronze, Rarity: RarityCommon, Target: 1, check: countLogs(nil)},
	{ID: "meals_10", Name: food.Label{EN: "Regular", TH: "ขาประจำ"}, Description: food.Label{EN: "Log 10 meals", TH: "บันทึกอาหาร 10 มื้อ"},
		Icon: "🥢", Tier: TierBronze, Rarity: RarityCommon, Target: 10, check: countLogs(nil)},
	{ID: "meals_25", Name: food.Label{EN: "Canteen Fan", TH: "แฟนโรงอาหาร"}, Description: food.Label{EN: "Log 25 meals", TH: "บันทึกอาหาร 25 มื้อ"},
		Icon: "🍱", Tier: TierSilver, Rarity: RarityCommon, Target: 25, check: countLogs(nil)},
	{ID: "meals_50", Name: food.Label{EN: "Food Journalist", TH: "นักบันทึกอาหาร"}, Description: food.Label{EN: "Log 50 meals", TH: "บันทึกอาหาร 50 มื้อ"},
		Icon: "📔", Tier: TierGold, Rarity: RarityRare, Target: 50, check: countLogs(nil)},
	{ID: "meals_100", Name: food.Label{EN: "Centurion", TH: "ร้อยมื้อ"}, Description: food.Label{EN: "Log 100 meals", TH: "บันทึกอาหาร 100 มื้อ"},
		Icon: "🏆", Tier: TierPlatinum, Rarity: RarityEpic, Target: 100, check: countLogs(nil)},

	{ID: "health_week", Name: food.Label{EN: "Healthy Week", TH: "สัปดาห์สุขภาพดี"}, Description: food.Label{EN: "Average health score 75+ over 5+ meals this week", TH: "คะแนนสุขภาพเฉลี่ย 75+ จาก 5 มื้อขึ้นไปในสัปดาห์นี้"},
		Icon: "🥦", Tier: TierSilver, Rarity: RarityRare, Target: 75, check: checkAverage(7, 5)},
	{ID: "health_month", Name: food.Label{EN: "Healthy Month", TH: "เดือนสุขภาพดี"}, Description: food.Label{EN: "Average health score 75+ over 20+ meals this month", TH: "คะแนนสุขภาพเฉลี่ย 75+ จาก 20 มื้อขึ้นไปในเดือนนี้"},
		Icon: "🌿", Tier: TierGold, Rarity: RarityEpic, Target: 75, check: checkAverage(30, 20)},
	{ID: "health_overall", Name: food.Label{EN: "Health Champion", TH: "แชมป์สุขภาพ"}, Description: food.Label{EN: "Average health score 80+ over 50+ meals", TH: "คะแนนสุขภาพเฉลี่ย 80+ จาก 50 มื้อขึ้นไป"},
		Icon: "💚", Tier: TierPlatinum, Rarity: RarityLegendary, Target: 80, check: checkAverage(0, 50)},
	{ID: "healthy_eater_25", Name: food.Label{EN: "Healthy Eater", TH: "สายสุขภาพ"}, Description: food.Label{EN: "Eat 25 meals scoring 70+", TH: "ทานอาหารคะแนน 70+ ครบ 25 มื้อ"},
		Icon: "🥗", Tier: TierSilver, Rarity: RarityRare, Target: 25,
		check: countLogs(func(m *food.Menu) bool { return m.Score() >= HealthyScore })},

	{ID: "veggie_lover", Name: food.Label{EN: "Veggie Lover", TH: "คนรักผัก"}, Description: food.Label{EN: "Eat 20 meals with vegetables", TH: "ทานอาหารที่มีผัก 20 มื้อ"},
		Icon: "🥕", Tier: TierSilver, Rarity: RarityCommon, Target: 20, check: countLogs(hasVeg)},
	{ID: "protein_power", Name: food.Label{EN: "Protein Power", TH: "พลังโปรตีน"}, Description: food.Label{EN: "Eat 20 meals with protein", TH: "ทานอาหารที่มีโปรตีน 20 มื้อ"},
		Icon: "💪", Tier: TierSilver, Rarity: RarityCommon, Target: 20, check: countLogs(hasProtein)},
	{ID: "balanced_diet", Name: food.Label{EN: "Balanced Plate", TH: "จานสมดุล"}, Description: food.Label{EN: "Eat 15 meals with both vegetables and protein", TH: "ทานอาหารที่มีทั้งผักและโปรตีน 15 มื้อ"},
		Icon: "⚖️", Tier: TierGold, Rarity: RarityRare, Target: 15,
		check: countLogs(func(m *food.Menu) bool { return hasVeg(m) && hasProtein(m) })},

	{ID: "first_share", Name: food.Label{EN: "First Share", TH: "แชร์ครั้งแรก"}, Description: food.Label{EN: "Log a public meal", TH: "บันทึกอาหารแบบสาธารณะ"},
		Icon: "📣", Tier: TierBronze, Rarity: RarityCommon, Target: 1, check: countPublic},
	{ID: "social_butterfly", Name: food.Label{EN: "Social Butterfly", TH: "ผีเสื้อสังคม"}, Description: food.Label{EN: "Log 20 public meals", TH: "บันทึกอาหารแบบสาธารณะ 20 มื้อ"},
		Icon: "🦋", Tier: TierGold, Rarity: RarityRare, Target: 20, check: countPublic},

	{ID: "early_adopter", Name: food.Label{EN: "Early Adopter", TH: "ผู้บุกเบิก"}, Description: food.Label{EN: "Logged a meal before 2026", TH: "บันทึกอาหารก่อนปี 2026"},
		Icon: "🌟", Tier: TierGold, Rarity: RarityEpic, Target: 1, check: checkEarlyAdopter},
	{ID: "explorer", Name: food.Label{EN: "Explorer", TH: "นักสำรวจ"}, Description: food.Label{EN: "Try 10 different menus", TH: "ลองเมนูที่ต่างกัน 10 เมนู"},
		Icon: "🧭", Tier: TierSilver, Rarity: RarityRare, Target: 10, check: checkExplorer},
}

// Catalog returns the badge definitions in display order.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}
