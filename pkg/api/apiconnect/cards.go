package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/pkg/api"
)

// CardServiceName is the fully-qualified name of the CardService.
const CardServiceName = "cardplanner.v1.CardService"

const (
	CardServiceSearchCardsProcedure      = "/" + CardServiceName + "/SearchCards"
	CardServiceCreateCustomCardProcedure = "/" + CardServiceName + "/CreateCustomCard"
	CardServiceListCustomCardsProcedure  = "/" + CardServiceName + "/ListCustomCards"
)

// CardServiceHandler is implemented by the server side of the CardService.
type CardServiceHandler interface {
	SearchCards(context.Context, *connect.Request[api.SearchCardsRequest]) (*connect.Response[api.SearchCardsResponse], error)
	CreateCustomCard(context.Context, *connect.Request[api.CreateCustomCardRequest]) (*connect.Response[api.CreateCustomCardResponse], error)
	ListCustomCards(context.Context, *connect.Request[api.ListCustomCardsRequest]) (*connect.Response[api.ListCustomCardsResponse], error)
}

// NewCardServiceHandler builds an HTTP handler for every CardService procedure.
// It returns the path prefix to mount the handler on.
func NewCardServiceHandler(svc CardServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(CardServiceSearchCardsProcedure, connect.NewUnaryHandler(CardServiceSearchCardsProcedure, svc.SearchCards, opts...))
	mux.Handle(CardServiceCreateCustomCardProcedure, connect.NewUnaryHandler(CardServiceCreateCustomCardProcedure, svc.CreateCustomCard, opts...))
	mux.Handle(CardServiceListCustomCardsProcedure, connect.NewUnaryHandler(CardServiceListCustomCardsProcedure, svc.ListCustomCards, opts...))
	return "/" + CardServiceName + "/", mux
}

// CardServiceClient calls the CardService over Connect.
type CardServiceClient interface {
	SearchCards(context.Context, *connect.Request[api.SearchCardsRequest]) (*connect.Response[api.SearchCardsResponse], error)
	CreateCustomCard(context.Context, *connect.Request[api.CreateCustomCardRequest]) (*connect.Response[api.CreateCustomCardResponse], error)
	ListCustomCards(context.Context, *connect.Request[api.ListCustomCardsRequest]) (*connect.Response[api.ListCustomCardsResponse], error)
}

func NewCardServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CardServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &cardServiceClient{
		searchCards: connect.NewClient[api.SearchCardsRequest, api.SearchCardsResponse](httpClient, baseURL+CardServiceSearchCardsProcedure, opts...),
		createCustomCard: connect.NewClient[api.CreateCustomCardRequest, api.CreateCustomCardResponse](httpClient, baseURL+CardServiceCreateCustomCardProcedure, opts...),
		listCustomCards: connect.NewClient[api.ListCustomCardsRequest, api.ListCustomCardsResponse](httpClient, baseURL+CardServiceListCustomCardsProcedure, opts...),
	}
}

type cardServiceClient struct {
	searchCards      *connect.Client[api.SearchCardsRequest, api.SearchCardsResponse]
	createCustomCard *connect.Client[api.CreateCustomCardRequest, api.CreateCustomCardResponse]
	listCustomCards  *connect.Client[api.ListCustomCardsRequest, api.ListCustomCardsResponse]
}

func (c *cardServiceClient) SearchCards(ctx context.Context, req *connect.Request[api.SearchCardsRequest]) (*connect.Response[api.SearchCardsResponse], error) {
	return c.searchCards.CallUnary(ctx, req)
}

func (c *cardServiceClient) CreateCustomCard(ctx context.Context, req *connect.Request[api.CreateCustomCardRequest]) (*connect.Response[api.CreateCustomCardResponse], error) {
	return c.createCustomCard.CallUnary(ctx, req)
}

func (c *cardServiceClient) ListCustomCards(ctx context.Context, req *connect.Request[api.ListCustomCardsRequest]) (*connect.Response[api.ListCustomCardsResponse], error) {
	return c.listCustomCards.CallUnary(ctx, req)
}
