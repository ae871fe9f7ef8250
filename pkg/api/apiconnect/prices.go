package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/pkg/api"
)

// PriceServiceName is the fully-qualified name of the PriceService.
const PriceServiceName = "cardplanner.v1.PriceService"

const (
	PriceServiceListPricesProcedure  = "/" + PriceServiceName + "/ListPrices"
	PriceServiceSetPriceProcedure    = "/" + PriceServiceName + "/SetPrice"
	PriceServiceDeletePriceProcedure = "/" + PriceServiceName + "/DeletePrice"
)

// PriceServiceHandler is implemented by the server side of the PriceService.
type PriceServiceHandler interface {
	ListPrices(context.Context, *connect.Request[api.ListPricesRequest]) (*connect.Response[api.ListPricesResponse], error)
	SetPrice(context.Context, *connect.Request[api.SetPriceRequest]) (*connect.Response[api.SetPriceResponse], error)
	DeletePrice(context.Context, *connect.Request[api.DeletePriceRequest]) (*connect.Response[api.DeletePriceResponse], error)
}

// NewPriceServiceHandler builds an HTTP handler for every PriceService procedure.
// It returns the path prefix to mount the handler on.
func NewPriceServiceHandler(svc PriceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(PriceServiceListPricesProcedure, connect.NewUnaryHandler(PriceServiceListPricesProcedure, svc.ListPrices, opts...))
	mux.Handle(PriceServiceSetPriceProcedure, connect.NewUnaryHandler(PriceServiceSetPriceProcedure, svc.SetPrice, opts...))
	mux.Handle(PriceServiceDeletePriceProcedure, connect.NewUnaryHandler(PriceServiceDeletePriceProcedure, svc.DeletePrice, opts...))
	return "/" + PriceServiceName + "/", mux
}

// PriceServiceClient calls the PriceService over Connect.
type PriceServiceClient interface {
	ListPrices(context.Context, *connect.Request[api.ListPricesRequest]) (*connect.Response[api.ListPricesResponse], error)
	SetPrice(context.Context, *connect.Request[api.SetPriceRequest]) (*connect.Response[api.SetPriceResponse], error)
	DeletePrice(context.Context, *connect.Request[api.DeletePriceRequest]) (*connect.Response[api.DeletePriceResponse], error)
}

func NewPriceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PriceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &priceServiceClient{
		listPrices: connect.NewClient[api.ListPricesRequest, api.ListPricesResponse](httpClient, baseURL+PriceServiceListPricesProcedure, opts...),
		setPrice: connect.NewClient[api.SetPriceRequest, api.SetPriceResponse](httpClient, baseURL+PriceServiceSetPriceProcedure, opts...),
		deletePrice: connect.NewClient[api.DeletePriceRequest, api.DeletePriceResponse](httpClient, baseURL+PriceServiceDeletePriceProcedure, opts...),
	}
}

type priceServiceClient struct {
	listPrices  *connect.Client[api.ListPricesRequest, api.ListPricesResponse]
	setPrice    *connect.Client[api.SetPriceRequest, api.SetPriceResponse]
	deletePrice *connect.Client[api.DeletePriceRequest, api.DeletePriceResponse]
}

func (c *priceServiceClient) ListPrices(ctx context.Context, req *connect.Request[api.ListPricesRequest]) (*connect.Response[api.ListPricesResponse], error) {
	return c.listPrices.CallUnary(ctx, req)
}

func (c *priceServiceClient) SetPrice(ctx context.Context, req *connect.Request[api.SetPriceRequest]) (*connect.Response[api.SetPriceResponse], error) {
	return c.setPrice.CallUnary(ctx, req)
}

func (c *priceServiceClient) DeletePrice(ctx context.Context, req *connect.Request[api.DeletePriceRequest]) (*connect.Response[api.DeletePriceResponse], error) {
	return c.deletePrice.CallUnary(ctx, req)
}
