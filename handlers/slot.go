package handlers

import (
	"net/http"

	"furcare/models"
	"furcare/services/scheduler"
	"furcare/utils"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	Service scheduler.SlotScheduler
}

func NewSlotHandler(svc scheduler.SlotScheduler) *SlotHandler {
	return &SlotHandler{Service: svc}
}

func (h *SlotHandler) CreateSlotHandler(c *gin.Context) {
	var req models.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	slot, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Slot created", slot)
}

func (h *SlotHandler) GetSlotHandler(c *gin.Context) {
	slot, err := h.Service.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Slot fetched", slot)
}

func (h *SlotHandler) UpdateSlotHandler(c *gin.Context) {
	var patch models.SlotPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}

	slot, err := h.Service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Slot updated", slot)
}

func (h *SlotHandler) CancelSlotHandler(c *gin.Context) {
	slot, err := h.Service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Slot cancelled", slot)
}

func (h *SlotHandler) DeleteSlotHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Slot deleted", nil)
}

// GetShopSlotsHandler lists a shop's slots, restricted to [from, to] when both are given.
func (h *SlotHandler) GetShopSlotsHandler(c *gin.Context) {
	shopID := c.Param("shopId")
	from, to := c.Query("from"), c.Query("to")

	var (
		slots []models.Slot
		err   error
	)
	switch {
	case from == "" && to == "":
		slots, err = h.Service.FindByShop(c.Request.Context(), shopID)
	case from == "" || to == "":
		err = utils.NewValidationError("from", "from and to must be given together")
	default:
		slots, err = h.Service.FindByShopAndDateRange(c.Request.Context(), shopID, from, to)
	}
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Slots fetched", slots)
}

func (h *SlotHandler) GetBookedShopSlotsHandler(c *gin.Context) {
	slots, err := h.Service.FindBookedByShop(c.Request.Context(), c.Param("shopId"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booked slots fetched", slots)
}

func (h *SlotHandler) GetSlotsByDateHandler(c *gin.Context) {
	slots, err := h.Service.FindByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Slots fetched", slots)
}

func (h *SlotHandler) GetAvailableStaffSlotsHandler(c *gin.Context) {
	slots, err := h.Service.FindAvailableByStaffAndDate(c.Request.Context(), c.Param("staffId"), c.Query("date"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Available slots fetched", slots)
}
