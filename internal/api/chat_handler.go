package api

import (
	"alcyxob/coach-platform/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatHandler serves coach-athlete conversations.
type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type OpenConversationRequest struct {
	PeerID string `json:"peerId" binding:"required"`
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// OpenConversation godoc
// @Summary Open (or reuse) a conversation with a coach or athlete
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body OpenConversationRequest true "Peer"
// @Success 200 {object} domain.Conversation
// @Router /conversations [post]
func (h *ChatHandler) OpenConversation(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	var req OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	peerID, err := primitive.ObjectIDFromHex(req.PeerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid peerId format.")
		return
	}
	conv, err := h.chatService.OpenConversation(c.Request.Context(), userID, role, peerID)
	if err != nil {
		respondWithServiceError(c, err, "open conversation")
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	convs, err := h.chatService.ListConversations(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "list conversations")
		return
	}
	c.JSON(http.StatusOK, convs)
}

// ListMessages returns the conversation oldest first and marks the
// peer's messages as read.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	convID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	msgs, err := h.chatService.ListMessages(c.Request.Context(), userID, convID)
	if err != nil {
		respondWithServiceError(c, err, "list messages")
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	convID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	msg, err := h.chatService.SendMessage(c.Request.Context(), userID, convID, req.Text)
	if err != nil {
		respondWithServiceError(c, err, "send message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}
