// Package bmi computes body-mass index, its health-risk classification, an
// ideal weight range and daily calorie needs from a user's body profile.
package bmi

import (
	"math"
	"time"
)

// Genders.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// ActivityMultipliers maps activity level strings to their daily-calorie
// multiplier. This is also the set of valid activity levels.
var ActivityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

const defaultActivityLevel = "sedentary"

// Profile is a user's physiological attributes. Every field is optional.
type Profile struct {
	HeightCM      *float64   `json:"height_cm"      db:"height_cm"      validate:"omitempty,gte=100,lte=250"`
	WeightKG      *float64   `json:"weight_kg"      db:"weight_kg"      validate:"omitempty,gte=20,lte=300"`
	Age           *int       `json:"age"            db:"age"            validate:"omitempty,gte=10,lte=120"`
	Gender        *string    `json:"gender"         db:"gender"`
	ActivityLevel *string    `json:"activity_level" db:"activity_level"`
	UpdatedAt     *time.Time `json:"updated_at"     db:"updated_at"`
}

// CalculateBMI returns weight / height(m)^2 rounded to 2 decimals. ok is false
// when either input is missing or not positive.
func CalculateBMI(heightCM, weightKG *float64) (bmi float64, ok bool) {
	if heightCM == nil || weightKG == nil || *heightCM <= 0 || *weightKG <= 0 {
		return 0, false
	}
	h := *heightCM / 100
	return round(*weightKG/(h*h), 2), true
}

// WeightRange is a min/max body weight in kilograms.
type WeightRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IdealWeightRange returns the weights at BMI 18.5 and 24.9 for the given
// height, rounded to 1 decimal. The height is not range-checked.
func IdealWeightRange(heightCM float64) WeightRange {
	h := heightCM / 100
	return WeightRange{
		Min: round(18.5*h*h, 1),
		Max: round(24.9*h*h, 1),
	}
}

// DailyCalories estimates daily energy needs: Harris-Benedict BMR times the
// activity multiplier. ok is false unless age, weight, height and gender are
// all present. An unset or unknown activity level counts as sedentary.
func DailyCalories(p Profile) (kcal int, ok bool) {
	if p.Age == nil || p.WeightKG == nil || p.HeightCM == nil || p.Gender == nil {
		return 0, false
	}

	bmr := basalMetabolicRate(*p.Gender, *p.WeightKG, *p.HeightCM, float64(*p.Age))

	level := defaultActivityLevel
	if p.ActivityLevel != nil {
		level = *p.ActivityLevel
	}
	mult, found := ActivityMultipliers[level]
	if !found {
		mult = ActivityMultipliers[defaultActivityLevel]
	}

	return int(math.Round(bmr * mult)), true
}

// basalMetabolicRate uses the revised Harris-Benedict coefficients. "other"
// takes the mean of the male and female equations.
func basalMetabolicRate(gender string, weightKG, heightCM, age float64) float64 {
	male := 88.362 + 13.397*weightKG + 4.799*heightCM - 5.677*age
	female := 447.593 + 9.247*weightKG + 3.098*heightCM - 4.330*age
	switch gender {
	case GenderMale:
		return male
	case GenderFemale:
		return female
	default:
		return (male + female) / 2
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Report bundles everything the profile screen shows. Fields that cannot be
// computed from the profile are nil.
type Report struct {
	Profile       Profile      `json:"profile"`
	BMI           *float64     `json:"bmi"`
	Info          *Info        `json:"info"`
	IdealWeight   *WeightRange `json:"ideal_weight"`
	DailyCalories *int         `json:"daily_calories"`
}

// Analyze computes the report for a profile.
func Analyze(p Profile) Report {
	r := Report{Profile: p}
	if v, ok := CalculateBMI(p.HeightCM, p.WeightKG); ok {
		info := Classify(v)
		r.BMI = &v
		r.Info = &info
	}
	if p.HeightCM != nil && *p.HeightCM > 0 {
		wr := IdealWeightRange(*p.HeightCM)
		r.IdealWeight = &wr
	}
	if kcal, ok := DailyCalories(p); ok {
		r.DailyCalories = &kcal
	}
	return r
}
