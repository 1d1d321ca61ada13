package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"skiphire/models"
	"skiphire/services/pricing"
	"skiphire/services/schedule"
	"skiphire/services/wizard"
	"skiphire/utils"
)

// WizardService is swapped for a fake in tests.
var WizardService wizard.Service

// StartWizardSession creates a fresh booking session.
func StartWizardSession(c *gin.Context) {
	id, state, err := WizardService.StartSession(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to start session", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session_id": id, "state": state})
}

// GetWizardSession returns the current state of a session.
func GetWizardSession(c *gin.Context) {
	state, err := WizardService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": c.Param("id"), "state": state})
}

// EndWizardSession discards a session.
func EndWizardSession(c *gin.Context) {
	if err := WizardService.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ended": true})
}

// SubmitAddress completes the address step.
func SubmitAddress(c *gin.Context) {
	var input struct {
		Address models.Address `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	applyWizardAction(c, wizard.SubmitAddress{Address: input.Address})
}

// SubmitWasteTypes completes the waste-type step.
func SubmitWasteTypes(c *gin.Context) {
	var input struct {
		WasteTypes []string `json:"waste_types"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	applyWizardAction(c, wizard.SubmitWasteTypes{Categories: input.WasteTypes})
}

// SelectSkip completes the skip-selection step.
func SelectSkip(c *gin.Context) {
	var input struct {
		Skip models.SkipOffering `json:"skip" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	applyWizardAction(c, wizard.SelectSkip{Skip: input.Skip})
}

// SubmitPlacement completes the permit step with the placement choice.
func SubmitPlacement(c *gin.Context) {
	var input struct {
		Placement string `json:"placement" binding:"required"` // "public" or "private"
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.Placement != "public" && input.Placement != "private" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "placement must be public or private")
		return
	}
	applyWizardAction(c, wizard.SubmitPlacement{OnPublicRoad: input.Placement == "public"})
}

// SelectDeliveryDate completes the date step.
func SelectDeliveryDate(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	applyWizardAction(c, wizard.SelectDate{Date: input.Date})
}

// CompleteWizardPayment records the payment outcome on the draft.
func CompleteWizardPayment(c *gin.Context) {
	var input struct {
		Payment models.PaymentDetails `json:"payment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	applyWizardAction(c, wizard.CompletePayment{Details: input.Payment})
}

// WizardBack returns to the previous step.
func WizardBack(c *gin.Context) {
	applyWizardAction(c, wizard.Back{})
}

// WizardJump revisits an earlier, already-completed step.
func WizardJump(c *gin.Context) {
	var input struct {
		Step int `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	applyWizardAction(c, wizard.JumpTo{Step: input.Step})
}

// WizardReset discards the draft and returns to step 1.
func WizardReset(c *gin.Context) {
	applyWizardAction(c, wizard.Reset{})
}

// GetAvailableDates returns the selectable delivery dates for a month,
// honouring the session's permit flag.
func GetAvailableDates(c *gin.Context) {
	state, err := WizardService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWizardError(c, err)
		return
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "year must be a number")
			return
		}
		year = parsed
	}
	if m := c.Query("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "month must be between 1 and 12")
			return
		}
		month = time.Month(parsed)
	}

	dates := schedule.AvailableDates(now, year, month, state.Draft.PermitRequired)
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(schedule.DateLayout))
	}

	resp := gin.H{
		"year":            year,
		"month":           int(month),
		"permit_required": state.Draft.PermitRequired,
		"time_slot":       schedule.DeliveryTimeSlot,
		"available_dates": out,
	}
	if state.Draft.SelectedDate != "" {
		if delivery, err := schedule.ParseDate(state.Draft.SelectedDate); err == nil {
			resp["collection_date"] = schedule.CollectionDate(delivery).Format(schedule.DateLayout)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetQuote prices the session's current selection.
func GetQuote(c *gin.Context) {
	state, err := WizardService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWizardError(c, err)
		return
	}
	if state.Draft.SelectedSkip == nil {
		utils.JSONError(c, http.StatusConflict, "no skip selected", "select a skip before requesting a quote")
		return
	}

	quote := pricing.Quote(*state.Draft.SelectedSkip, state.Draft.PermitRequired)
	c.JSON(http.StatusOK, gin.H{
		"quote":        quote,
		"amount_pence": pricing.PenceAmount(quote),
	})
}

func applyWizardAction(c *gin.Context, action wizard.Action) {
	state, err := WizardService.Apply(c.Request.Context(), c.Param("id"), action)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": c.Param("id"), "state": state})
}

func respondWizardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "session not found", err.Error())
	case errors.Is(err, wizard.ErrWrongStep):
		utils.JSONError(c, http.StatusConflict, "step mismatch", err.Error())
	case errors.Is(err, wizard.ErrNoWasteSelected),
		errors.Is(err, wizard.ErrUnknownWasteCategory),
		errors.Is(err, wizard.ErrDateUnavailable):
		utils.JSONError(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
	case errors.Is(err, wizard.ErrPaymentAlreadyRecorded):
		utils.JSONError(c, http.StatusConflict, "payment already recorded", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "wizard error", err.Error())
	}
}
