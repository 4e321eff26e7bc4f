package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/eduforum/core/chat"
)

type chatApi struct {
	svc chat.ServiceInterface
}

func registerChatAPI(g *echo.Group, jwtConf middleware.JWTConfig, svc chat.ServiceInterface) {
	api := chatApi{svc: svc}

	cg := g.Group("/chat")

	// anonymous users may chat; a token, when sent, must be valid
	cg.POST("", api.reply, optionalJWT(jwtConf))
	cg.GET("/categories", api.categories)

	// authed endpoints
	cg.GET("/history/:userId", api.history, middleware.JWTWithConfig(jwtConf), ctxUserOrAdminMiddleware())
}

// Handlers

func (api *chatApi) reply(ctx echo.Context) error {
	var data chat.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}
	if claims, err := getContextClaims(ctx); err == nil {
		data.UserID = claims.Subject
	}

	turn, err := api.svc.Reply(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "replying to message")
	}
	return ctx.JSON(http.StatusOK, ReplyResponse{Success: true, Response: turn.Response})
}

func (api *chatApi) history(ctx echo.Context) error {
	var filter chat.HistoryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to HistoryFilter")
	}

	turns, err := api.svc.History(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying chat history")
	}
	return ctx.JSON(http.StatusOK, HistoryResponse{Success: true, History: turns})
}

func (api *chatApi) categories(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, CategoriesResponse{Success: true, Categories: api.svc.Categories()})
}

type (
	ReplyResponse struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
	}

	HistoryResponse struct {
		Success bool        `json:"success"`
		History []chat.Turn `json:"history"`
	}

	CategoriesResponse struct {
		Success    bool     `json:"success"`
		Categories []string `json:"categories"`
	}
)
