package bmi

// Category keys.
const (
	CategoryUnderweight   = "underweight"
	CategoryNormal        = "normal"
	CategoryOverweight    = "overweight"
	CategoryObese         = "obese"
	CategorySeverelyObese = "severely_obese"
)

// Label is a display string in English and Thai.
type Label struct {
	EN string `json:"en"`
	TH string `json:"th"`
}

// Info is the static bundle shown for a BMI band.
type Info struct {
	Category        string   `json:"category"`
	Label           Label    `json:"label"`
	Color           string   `json:"color"`
	Icon            string   `json:"icon"`
	Risks           []string `json:"risks"`
	Recommendations []string `json:"recommendations"`
}

type band struct {
	Below float64 // upper bound, exclusive; the last band has none
	Info  Info
}

// bands are contiguous half-open intervals in ascending order.
var bands = []band{
	{Below: 18.5, Info: Info{
		Category: CategoryUnderweight,
		Label:    Label{EN: "Underweight", TH: "น้ำหนักน้อยกว่าเกณฑ์"},
		Color:    "text-sky-600",
		Icon:     "🥄",
		Risks: []string{
			"Nutrient deficiencies",
			"Weakened immune system",
			"Reduced bone density",
		},
		Recommendations: []string{
			"Add an extra protein-rich meal or snack each day",
			"Choose energy-dense dishes with healthy fats",
			"Talk to a campus health officer if weight keeps dropping",
		},
	}},
	{Below: 25, Info: Info{
		Category: CategoryNormal,
		Label:    Label{EN: "Normal", TH: "ปกติ"},
		Color:    "text-green-600",
		Icon:     "✅",
		Risks:    []string{},
		Recommendations: []string{
			"Keep a balanced plate with vegetables and lean protein",
			"Stay active for at least 150 minutes a week",
		},
	}},
	{Below: 30, Info: Info{
		Category: CategoryOverweight,
		Label:    Label{EN: "Overweight", TH: "น้ำหนักเกิน"},
		Color:    "text-amber-600",
		Icon:     "⚠️",
		Risks: []string{
			"Raised blood pressure",
			"Higher risk of type 2 diabetes",
		},
		Recommendations: []string{
			"Prefer boiled, steamed or grilled dishes over fried ones",
			"Cut back on sugary desserts and drinks",
			"Add a daily 30-minute walk",
		},
	}},
	{Below: 35, Info: Info{
		Category: CategoryObese,
		Label:    Label{EN: "Obese", TH: "โรคอ้วน"},
		Color:    "text-orange-600",
		Icon:     "🔶",
		Risks: []string{
			"Type 2 diabetes",
			"Heart disease",
			"Sleep apnea",
		},
		Recommendations: []string{
			"Plan meals around vegetables and lean protein",
			"Limit high-sodium and fried dishes",
			"Consult a doctor or dietitian for a weight plan",
		},
	}},
	{Info: Info{
		Category: CategorySeverelyObese,
		Label:    Label{EN: "Severely obese", TH: "โรคอ้วนรุนแรง"},
		Color:    "text-red-600",
		Icon:     "🛑",
		Risks: []string{
			"Type 2 diabetes",
			"Cardiovascular disease",
			"Joint problems",
			"Sleep apnea",
		},
		Recommendations: []string{
			"Seek medical advice before changing diet or exercise",
			"Track every meal to understand intake",
			"Favor low-calorie, high-satiety dishes",
		},
	}},
}

// Classify maps a BMI to its band. Every value, including negatives and NaN,
// falls into exactly one band.
func Classify(bmi float64) Info {
	for _, b := range bands[:len(bands)-1] {
		if bmi < b.Below {
			return b.Info
		}
	}
	return bands[len(bands)-1].Info
}
