package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/onthegorentals/onthego/internal/api/validation"
)

func TestValidateCreateCarRequest(t *testing.T) {
	valid := validation.CreateCarRequest{
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2022,
		Category:     "COMPACT",
		PriceGroup:   "B",
		LicensePlate: "OTG-001",
		PricePerDay:  49.90,
	}

	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, validation.ValidateCreateCarRequest(valid))
	})

	t.Run("next model year is allowed", func(t *testing.T) {
		req := valid
		req.Year = time.Now().Year() + 1
		assert.Empty(t, validation.ValidateCreateCarRequest(req))
	})

	t.Run("year out of range", func(t *testing.T) {
		for _, year := range []int{1949, 0, time.Now().Year() + 2} {
			req := valid
			req.Year = year
			errs := validation.ValidateCreateCarRequest(req)
			assert.Equal(t, []string{"year"}, fields(errs), "year %d", year)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		req := valid
		req.Category = "SPACESHIP"
		errs := validation.ValidateCreateCarRequest(req)
		assert.Equal(t, []string{"category"}, fields(errs))
	})

	t.Run("non-positive price", func(t *testing.T) {
		req := valid
		req.PricePerDay = 0
		errs := validation.ValidateCreateCarRequest(req)
		assert.Equal(t, []string{"pricePerDay"}, fields(errs))
	})

	t.Run("missing everything", func(t *testing.T) {
		errs := validation.ValidateCreateCarRequest(validation.CreateCarRequest{})
		assert.Equal(t, []string{"make", "model", "year", "category", "licensePlate", "pricePerDay"}, fields(errs))
	})
}

func TestValidateFAQRequest(t *testing.T) {
	assert.Empty(t, validation.ValidateFAQRequest(validation.FAQRequest{
		Question: "Can I return the car late?",
		Answer:   "Yes, within a two hour grace period.",
	}))

	errs := validation.ValidateFAQRequest(validation.FAQRequest{Question: "  "})
	assert.Equal(t, []string{"question", "answer"}, fields(errs))
}

func TestValidateCreatePlanRequest(t *testing.T) {
	valid := validation.CreatePlanRequest{
		Name:           "Full Coverage",
		DailyRate:      9.50,
		CoverageAmount: 25000,
	}
	assert.Empty(t, validation.ValidateCreatePlanRequest(valid))

	t.Run("free plan is allowed", func(t *testing.T) {
		req := valid
		req.DailyRate = 0
		assert.Empty(t, validation.ValidateCreatePlanRequest(req))
	})

	t.Run("negative rate", func(t *testing.T) {
		req := valid
		req.DailyRate = -1
		errs := validation.ValidateCreatePlanRequest(req)
		assert.Equal(t, []string{"dailyRate"}, fields(errs))
	})

	t.Run("no coverage", func(t *testing.T) {
		req := valid
		req.CoverageAmount = 0
		errs := validation.ValidateCreatePlanRequest(req)
		assert.Equal(t, []string{"coverageAmount"}, fields(errs))
	})
}

func TestValidateUpdateUserRolesRequest(t *testing.T) {
	assert.Empty(t, validation.ValidateUpdateUserRolesRequest(validation.UpdateUserRolesRequest{
		Roles: []string{"USER", "ADMIN"},
	}))

	errs := validation.ValidateUpdateUserRolesRequest(validation.UpdateUserRolesRequest{})
	assert.Equal(t, []string{"roles"}, fields(errs))

	errs = validation.ValidateUpdateUserRolesRequest(validation.UpdateUserRolesRequest{
		Roles: []string{"USER", "ROOT"},
	})
	assert.Equal(t, []string{"roles"}, fields(errs))
}
