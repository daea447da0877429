package handlers

import (
	"net/http"

	"furcare/services/notification"
	"furcare/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Service notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

func (h *NotificationHandler) GetUserNotificationsHandler(c *gin.Context) {
	list, err := h.Service.ListForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Notifications fetched", list)
}

func (h *NotificationHandler) GetShopNotificationsHandler(c *gin.Context) {
	list, err := h.Service.ListForShop(c.Request.Context(), c.Param("shopId"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Notifications fetched", list)
}
