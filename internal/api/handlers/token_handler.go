package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"collab-relay/internal/domain"
	"collab-relay/pkg/logger"
)

// TokenHandler exposes the room access-token endpoint. Clients trade a
// room name and participant name for a signed token they present to the
// media server; the relay itself never verifies tokens.
type TokenHandler struct {
	minter domain.TokenMinter
	log    logger.Logger
}

func NewTokenHandler(minter domain.TokenMinter, log logger.Logger) *TokenHandler {
	return &TokenHandler{minter: minter, log: log}
}

func (h *TokenHandler) GetToken(c echo.Context) error {
	room := c.QueryParam("roomName")
	identity := c.QueryParam("participantName")

	if room == "" || identity == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "roomName and participantName are required",
		})
	}

	token, err := h.minter.Mint(room, identity)
	if err != nil {
		h.log.Error("Failed to mint access token", "room", room, "identity", identity, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to mint token",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}
