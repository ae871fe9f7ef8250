package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/internal/models"
	"github.com/mmynk/cardplanner/internal/storage"
	"github.com/mmynk/cardplanner/pkg/api"
	"github.com/mmynk/cardplanner/pkg/api/apiconnect"
)

const defaultSearchLimit = 20

// CardService implements the Connect CardService: catalog search and
// user-defined cards.
type CardService struct {
	store  storage.Store
	logger *slog.Logger
}

var _ apiconnect.CardServiceHandler = (*CardService)(nil)

func NewCardService(store storage.Store, logger *slog.Logger) *CardService {
	return &CardService{store: store, logger: logger}
}

func (s *CardService) SearchCards(ctx context.Context, req *connect.Request[api.SearchCardsRequest]) (*connect.Response[api.SearchCardsResponse], error) {
	if _, err := currentUser(ctx); err != nil {
		return nil, err
	}
	req.Msg.Query = strings.TrimSpace(req.Msg.Query)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	limit := req.Msg.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}

	cards, err := s.store.SearchCards(ctx, req.Msg.Query, limit)
	if err != nil {
		return nil, toConnectError(s.logger, "SearchCards", err)
	}

	out := make([]*api.Card, len(cards))
	for i, c := range cards {
		out[i] = toAPICard(c)
	}
	return connect.NewResponse(&api.SearchCardsResponse{Cards: out}), nil
}

func (s *CardService) CreateCustomCard(ctx context.Context, req *connect.Request[api.CreateCustomCardRequest]) (*connect.Response[api.CreateCustomCardResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	req.Msg.Name = strings.TrimSpace(req.Msg.Name)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.logger.Info("CreateCustomCard request received", "user_id", userID, "name", req.Msg.Name)

	card := &models.CustomCard{
		UserID: userID,
		Name:   req.Msg.Name,
		Color:  req.Msg.Color,
	}
	if err := s.store.CreateCustomCard(ctx, card); err != nil {
		return nil, toConnectError(s.logger, "CreateCustomCard", err)
	}

	return connect.NewResponse(&api.CreateCustomCardResponse{Card: toAPICustomCard(card)}), nil
}

func (s *CardService) ListCustomCards(ctx context.Context, req *connect.Request[api.ListCustomCardsRequest]) (*connect.Response[api.ListCustomCardsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	cards, err := s.store.ListCustomCards(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListCustomCards", err)
	}

	out := make([]*api.CustomCard, len(cards))
	for i, c := range cards {
		out[i] = toAPICustomCard(c)
	}
	return connect.NewResponse(&api.ListCustomCardsResponse{Cards: out}), nil
}
