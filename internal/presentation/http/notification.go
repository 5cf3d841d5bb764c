package httppresentation

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) handleListNotifications(c *gin.Context) {
	list, err := h.notifications.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]notificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, fromNotification(n))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) handleMarkNotificationRead(c *gin.Context) {
	n, err := h.notifications.MarkAsRead(c.Request.Context(), c.Param("notificationId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromNotification(n))
}

func (h *Handler) handleDeleteNotification(c *gin.Context) {
	if err := h.notifications.Delete(c.Request.Context(), c.Param("notificationId")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
