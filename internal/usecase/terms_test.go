package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/errors"
)

func TestResolveCompensation(t *testing.T) {
	freeStay := entity.Compensation{FreeStay: &entity.FreeStayTerms{MinNights: 2, MaxNights: 4}}

	t.Run("sparse input keeps untouched fields", func(t *testing.T) {
		comp, err := resolveCompensation(freeStay, TermsInput{FreeStayMaxNights: ptr(6)})
		require.NoError(t, err)
		require.NotNil(t, comp.FreeStay)
		assert.Equal(t, 2, comp.FreeStay.MinNights)
		assert.Equal(t, 6, comp.FreeStay.MaxNights)
	})

	t.Run("stay_nights shorthand sets both bounds", func(t *testing.T) {
		comp, err := resolveCompensation(freeStay, TermsInput{StayNights: ptr(3)})
		require.NoError(t, err)
		assert.Equal(t, 3, comp.FreeStay.MinNights)
		assert.Equal(t, 3, comp.FreeStay.MaxNights)
	})

	t.Run("explicit bounds win over the shorthand", func(t *testing.T) {
		comp, err := resolveCompensation(freeStay, TermsInput{StayNights: ptr(3), FreeStayMaxNights: ptr(5)})
		require.NoError(t, err)
		assert.Equal(t, 3, comp.FreeStay.MinNights)
		assert.Equal(t, 5, comp.FreeStay.MaxNights)
	})

	t.Run("switching type drops the old variant", func(t *testing.T) {
		comp, err := resolveCompensation(freeStay, TermsInput{
			CollaborationType:  ptr(entity.TypeDiscount),
			DiscountPercentage: ptr(25),
		})
		require.NoError(t, err)
		assert.Nil(t, comp.FreeStay)
		require.NotNil(t, comp.Discount)
		assert.Equal(t, 25, comp.Discount.Percentage)
		assert.True(t, comp.Valid())
	})

	t.Run("switching type requires the new variant's fields", func(t *testing.T) {
		_, err := resolveCompensation(freeStay, TermsInput{CollaborationType: ptr(entity.TypePaid)})
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	})

	t.Run("fields of another variant are rejected", func(t *testing.T) {
		_, err := resolveCompensation(freeStay, TermsInput{DiscountPercentage: ptr(10)})
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	})

	t.Run("max below min", func(t *testing.T) {
		_, err := resolveCompensation(freeStay, TermsInput{FreeStayMaxNights: ptr(1)})
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	})

	t.Run("paid amount must be positive", func(t *testing.T) {
		_, err := resolveCompensation(entity.Compensation{}, TermsInput{
			CollaborationType: ptr(entity.TypePaid),
			PaidAmount:        ptr(0.0),
		})
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	})

	t.Run("discount percentage bounds", func(t *testing.T) {
		for _, pct := range []int{0, 101} {
			_, err := resolveCompensation(entity.Compensation{}, TermsInput{
				CollaborationType:  ptr(entity.TypeDiscount),
				DiscountPercentage: ptr(pct),
			})
			assert.True(t, errors.Is(err, "BAD_REQUEST"), "percentage %d", pct)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := resolveCompensation(entity.Compensation{}, TermsInput{
			CollaborationType: ptr(entity.CollaborationType("Barter")),
		})
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	})
}

func TestApplyTermsDates(t *testing.T) {
	newCollab := func() *entity.Collaboration {
		return &entity.Collaboration{
			Compensation: entity.Compensation{Paid: &entity.PaidTerms{Amount: 100}},
		}
	}

	t.Run("valid range", func(t *testing.T) {
		c := newCollab()
		err := applyTerms(c, TermsInput{TravelDateFrom: ptr("2026-10-01"), TravelDateTo: ptr("2026-10-05")})
		require.NoError(t, err)
		require.NotNil(t, c.TravelDateFrom)
		assert.Equal(t, "2026-10-01", c.TravelDateFrom.Format("2006-01-02"))
	})

	t.Run("same-day range is allowed", func(t *testing.T) {
		c := newCollab()
		err := applyTerms(c, TermsInput{TravelDateFrom: ptr("2026-10-01"), TravelDateTo: ptr("2026-10-01")})
		assert.NoError(t, err)
	})

	t.Run("malformed date", func(t *testing.T) {
		c := newCollab()
		err := applyTerms(c, TermsInput{TravelDateFrom: ptr("01.10.2026")})
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	})

	t.Run("reversed range", func(t *testing.T) {
		c := newCollab()
		err := applyTerms(c, TermsInput{TravelDateFrom: ptr("2026-10-05"), TravelDateTo: ptr("2026-10-01")})
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	})

	t.Run("moving only one end is checked against the stored other end", func(t *testing.T) {
		c := newCollab()
		require.NoError(t, applyTerms(c, TermsInput{TravelDateFrom: ptr("2026-10-01"), TravelDateTo: ptr("2026-10-05")}))
		err := applyTerms(c, TermsInput{TravelDateTo: ptr("2026-09-30")})
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	})
}

func TestBuildDeliverables(t *testing.T) {
	t.Run("flattens groups and assigns ids", func(t *testing.T) {
		out, err := buildDeliverables("collab-1", []PlatformDeliverablesInput{
			{Platform: "Instagram", Deliverables: []DeliverableInput{
				{ContentType: "Reel", Quantity: 2},
			}},
			{Platform: "TikTok", Deliverables: []DeliverableInput{
				{ContentType: "Video", Quantity: 1},
			}},
		})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.NotEmpty(t, out[0].ID)
		assert.NotEqual(t, out[0].ID, out[1].ID)
		assert.Equal(t, "collab-1", out[0].CollaborationID)
		assert.Equal(t, entity.DeliverablePending, out[0].Status)

		grouped := entity.GroupDeliverables(out)
		require.Len(t, grouped, 2)
		assert.Equal(t, "Instagram", grouped[0].Platform)
		assert.Equal(t, "TikTok", grouped[1].Platform)
	})

	t.Run("rejects empty sets and bad items", func(t *testing.T) {
		_, err := buildDeliverables("collab-1", nil)
		assert.True(t, errors.Is(err, "BAD_REQUEST"))

		_, err = buildDeliverables("collab-1", []PlatformDeliverablesInput{
			{Platform: "", Deliverables: []DeliverableInput{{ContentType: "Reel", Quantity: 1}}},
		})
		assert.True(t, errors.Is(err, "BAD_REQUEST"))

		_, err = buildDeliverables("collab-1", []PlatformDeliverablesInput{
			{Platform: "Instagram", Deliverables: []DeliverableInput{{ContentType: "", Quantity: 1}}},
		})
		assert.True(t, errors.Is(err, "BAD_REQUEST"))

		_, err = buildDeliverables("collab-1", []PlatformDeliverablesInput{
			{Platform: "Instagram", Deliverables: []DeliverableInput{{ContentType: "Reel", Quantity: 0}}},
		})
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	})
}
