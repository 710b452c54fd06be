package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/canteen-go-api/internal/bmi"
)

// validGenders is the set of allowed values for body_profiles.gender.
var validGenders = map[string]bool{
	bmi.GenderMale:   true,
	bmi.GenderFemale: true,
	bmi.GenderOther:  true,
}

// getBodyProfile returns the caller's body profile with BMI, classification,
// ideal weight and daily calorie needs. A user without a saved profile gets
// an empty one rather than 404.
// GET /api/profile.
func (h *Handler) getBodyProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	p, err := queryOne[bmi.Profile](h.db, c,
		`SELECT height_cm, weight_kg, age, gender, activity_level, updated_at
		 FROM body_profiles WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, bmi.Analyze(p))
}

// validateBodyProfile runs the enum checks and the range validation. It
// returns a nil map when the profile is acceptable.
func validateBodyProfile(p bmi.Profile) gin.H {
	// Unknown enum values would silently disable the calorie estimate.
	if p.Gender != nil && !validGenders[*p.Gender] {
		return gin.H{"error": "gender must be one of: male, female, other"}
	}
	if p.ActivityLevel != nil {
		if _, ok := bmi.ActivityMultipliers[*p.ActivityLevel]; !ok {
			return gin.H{"error": "activity_level must be one of: sedentary, light, moderate, active, very_active"}
		}
	}
	if res := bmi.Validate(p); !res.IsValid {
		return gin.H{"error": "invalid profile", "errors": res.Errors}
	}
	return nil
}

// putBodyProfile replaces the caller's body profile after validation.
// PUT /api/profile. Omitted fields are stored as NULL.
func (h *Handler) putBodyProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body bmi.Profile
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errResp := validateBodyProfile(body); errResp != nil {
		c.JSON(http.StatusBadRequest, errResp)
		return
	}

	p, err := queryOne[bmi.Profile](h.db, c,
		`INSERT INTO body_profiles (user_id, height_cm, weight_kg, age, gender, activity_level, updated_at)
		 VALUES (@userID, @heightCM, @weightKG, @age, @gender, @activityLevel, now())
		 ON CONFLICT (user_id) DO UPDATE SET
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			activity_level = EXCLUDED.activity_level,
			updated_at = now()
		 RETURNING height_cm, weight_kg, age, gender, activity_level, updated_at`,
		pgx.NamedArgs{
			"userID": userID, "heightCM": body.HeightCM, "weightKG": body.WeightKG,
			"age": body.Age, "gender": body.Gender, "activityLevel": body.ActivityLevel,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save profile")
		return
	}

	c.JSON(http.StatusOK, bmi.Analyze(p))
}
