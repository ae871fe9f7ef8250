package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/pkg/api"
)

// StoreServiceName is the fully-qualified name of the StoreService.
const StoreServiceName = "cardplanner.v1.StoreService"

const (
	StoreServiceCreateStoreProcedure = "/" + StoreServiceName + "/CreateStore"
	StoreServiceListStoresProcedure  = "/" + StoreServiceName + "/ListStores"
	StoreServiceUpdateStoreProcedure = "/" + StoreServiceName + "/UpdateStore"
	StoreServiceDeleteStoreProcedure = "/" + StoreServiceName + "/DeleteStore"
)

// StoreServiceHandler is implemented by the server side of the StoreService.
type StoreServiceHandler interface {
	CreateStore(context.Context, *connect.Request[api.CreateStoreRequest]) (*connect.Response[api.CreateStoreResponse], error)
	ListStores(context.Context, *connect.Request[api.ListStoresRequest]) (*connect.Response[api.ListStoresResponse], error)
	UpdateStore(context.Context, *connect.Request[api.UpdateStoreRequest]) (*connect.Response[api.UpdateStoreResponse], error)
	DeleteStore(context.Context, *connect.Request[api.DeleteStoreRequest]) (*connect.Response[api.DeleteStoreResponse], error)
}

// NewStoreServiceHandler builds an HTTP handler for every StoreService procedure.
// It returns the path prefix to mount the handler on.
func NewStoreServiceHandler(svc StoreServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(StoreServiceCreateStoreProcedure, connect.NewUnaryHandler(StoreServiceCreateStoreProcedure, svc.CreateStore, opts...))
	mux.Handle(StoreServiceListStoresProcedure, connect.NewUnaryHandler(StoreServiceListStoresProcedure, svc.ListStores, opts...))
	mux.Handle(StoreServiceUpdateStoreProcedure, connect.NewUnaryHandler(StoreServiceUpdateStoreProcedure, svc.UpdateStore, opts...))
	mux.Handle(StoreServiceDeleteStoreProcedure, connect.NewUnaryHandler(StoreServiceDeleteStoreProcedure, svc.DeleteStore, opts...))
	return "/" + StoreServiceName + "/", mux
}

// StoreServiceClient calls the StoreService over Connect.
type StoreServiceClient interface {
	CreateStore(context.Context, *connect.Request[api.CreateStoreRequest]) (*connect.Response[api.CreateStoreResponse], error)
	ListStores(context.Context, *connect.Request[api.ListStoresRequest]) (*connect.Response[api.ListStoresResponse], error)
	UpdateStore(context.Context, *connect.Request[api.UpdateStoreRequest]) (*connect.Response[api.UpdateStoreResponse], error)
	DeleteStore(context.Context, *connect.Request[api.DeleteStoreRequest]) (*connect.Response[api.DeleteStoreResponse], error)
}

func NewStoreServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) StoreServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &storeServiceClient{
		createStore: connect.NewClient[api.CreateStoreRequest, api.CreateStoreResponse](httpClient, baseURL+StoreServiceCreateStoreProcedure, opts...),
		listStores: connect.NewClient[api.ListStoresRequest, api.ListStoresResponse](httpClient, baseURL+StoreServiceListStoresProcedure, opts...),
		updateStore: connect.NewClient[api.UpdateStoreRequest, api.UpdateStoreResponse](httpClient, baseURL+StoreServiceUpdateStoreProcedure, opts...),
		deleteStore: connect.NewClient[api.DeleteStoreRequest, api.DeleteStoreResponse](httpClient, baseURL+StoreServiceDeleteStoreProcedure, opts...),
	}
}

type storeServiceClient struct {
	createStore *connect.Client[api.CreateStoreRequest, api.CreateStoreResponse]
	listStores  *connect.Client[api.ListStoresRequest, api.ListStoresResponse]
	updateStore *connect.Client[api.UpdateStoreRequest, api.UpdateStoreResponse]
	deleteStore *connect.Client[api.DeleteStoreRequest, api.DeleteStoreResponse]
}

func (c *storeServiceClient) CreateStore(ctx context.Context, req *connect.Request[api.CreateStoreRequest]) (*connect.Response[api.CreateStoreResponse], error) {
	return c.createStore.CallUnary(ctx, req)
}

func (c *storeServiceClient) ListStores(ctx context.Context, req *connect.Request[api.ListStoresRequest]) (*connect.Response[api.ListStoresResponse], error) {
	return c.listStores.CallUnary(ctx, req)
}

func (c *storeServiceClient) UpdateStore(ctx context.Context, req *connect.Request[api.UpdateStoreRequest]) (*connect.Response[api.UpdateStoreResponse], error) {
	return c.updateStore.CallUnary(ctx, req)
}

func (c *storeServiceClient) DeleteStore(ctx context.Context, req *connect.Request[api.DeleteStoreRequest]) (*connect.Response[api.DeleteStoreResponse], error) {
	return c.deleteStore.CallUnary(ctx, req)
}
