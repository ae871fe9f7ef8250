package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/pkg/api"
)

// PurchaseServiceName is the fully-qualified name of the PurchaseService.
const PurchaseServiceName = "cardplanner.v1.PurchaseService"

const (
	PurchaseServiceCreatePurchaseListProcedure = "/" + PurchaseServiceName + "/CreatePurchaseList"
	PurchaseServiceListPurchaseListsProcedure  = "/" + PurchaseServiceName + "/ListPurchaseLists"
	PurchaseServiceGetPurchaseListProcedure    = "/" + PurchaseServiceName + "/GetPurchaseList"
	PurchaseServiceUpdatePurchaseListProcedure = "/" + PurchaseServiceName + "/UpdatePurchaseList"
	PurchaseServiceDeletePurchaseListProcedure = "/" + PurchaseServiceName + "/DeletePurchaseList"
	PurchaseServiceAddItemProcedure            = "/" + PurchaseServiceName + "/AddItem"
	PurchaseServiceListItemsProcedure          = "/" + PurchaseServiceName + "/ListItems"
	PurchaseServiceUpdateItemProcedure         = "/" + PurchaseServiceName + "/UpdateItem"
	PurchaseServiceDeleteItemProcedure         = "/" + PurchaseServiceName + "/DeleteItem"
)

// PurchaseServiceHandler is implemented by the server side of the PurchaseService.
type PurchaseServiceHandler interface {
	CreatePurchaseList(context.Context, *connect.Request[api.CreatePurchaseListRequest]) (*connect.Response[api.CreatePurchaseListResponse], error)
	ListPurchaseLists(context.Context, *connect.Request[api.ListPurchaseListsRequest]) (*connect.Response[api.ListPurchaseListsResponse], error)
	GetPurchaseList(context.Context, *connect.Request[api.GetPurchaseListRequest]) (*connect.Response[api.GetPurchaseListResponse], error)
	UpdatePurchaseList(context.Context, *connect.Request[api.UpdatePurchaseListRequest]) (*connect.Response[api.UpdatePurchaseListResponse], error)
	DeletePurchaseList(context.Context, *connect.Request[api.DeletePurchaseListRequest]) (*connect.Response[api.DeletePurchaseListResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
}

// NewPurchaseServiceHandler builds an HTTP handler for every PurchaseService procedure.
// It returns the path prefix to mount the handler on.
func NewPurchaseServiceHandler(svc PurchaseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(PurchaseServiceCreatePurchaseListProcedure, connect.NewUnaryHandler(PurchaseServiceCreatePurchaseListProcedure, svc.CreatePurchaseList, opts...))
	mux.Handle(PurchaseServiceListPurchaseListsProcedure, connect.NewUnaryHandler(PurchaseServiceListPurchaseListsProcedure, svc.ListPurchaseLists, opts...))
	mux.Handle(PurchaseServiceGetPurchaseListProcedure, connect.NewUnaryHandler(PurchaseServiceGetPurchaseListProcedure, svc.GetPurchaseList, opts...))
	mux.Handle(PurchaseServiceUpdatePurchaseListProcedure, connect.NewUnaryHandler(PurchaseServiceUpdatePurchaseListProcedure, svc.UpdatePurchaseList, opts...))
	mux.Handle(PurchaseServiceDeletePurchaseListProcedure, connect.NewUnaryHandler(PurchaseServiceDeletePurchaseListProcedure, svc.DeletePurchaseList, opts...))
	mux.Handle(PurchaseServiceAddItemProcedure, connect.NewUnaryHandler(PurchaseServiceAddItemProcedure, svc.AddItem, opts...))
	mux.Handle(PurchaseServiceListItemsProcedure, connect.NewUnaryHandler(PurchaseServiceListItemsProcedure, svc.ListItems, opts...))
	mux.Handle(PurchaseServiceUpdateItemProcedure, connect.NewUnaryHandler(PurchaseServiceUpdateItemProcedure, svc.UpdateItem, opts...))
	mux.Handle(PurchaseServiceDeleteItemProcedure, connect.NewUnaryHandler(PurchaseServiceDeleteItemProcedure, svc.DeleteItem, opts...))
	return "/" + PurchaseServiceName + "/", mux
}

// PurchaseServiceClient calls the PurchaseService over Connect.
type PurchaseServiceClient interface {
	CreatePurchaseList(context.Context, *connect.Request[api.CreatePurchaseListRequest]) (*connect.Response[api.CreatePurchaseListResponse], error)
	ListPurchaseLists(context.Context, *connect.Request[api.ListPurchaseListsRequest]) (*connect.Response[api.ListPurchaseListsResponse], error)
	GetPurchaseList(context.Context, *connect.Request[api.GetPurchaseListRequest]) (*connect.Response[api.GetPurchaseListResponse], error)
	UpdatePurchaseList(context.Context, *connect.Request[api.UpdatePurchaseListRequest]) (*connect.Response[api.UpdatePurchaseListResponse], error)
	DeletePurchaseList(context.Context, *connect.Request[api.DeletePurchaseListRequest]) (*connect.Response[api.DeletePurchaseListResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
}

func NewPurchaseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PurchaseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &purchaseServiceClient{
		createPurchaseList: connect.NewClient[api.CreatePurchaseListRequest, api.CreatePurchaseListResponse](httpClient, baseURL+PurchaseServiceCreatePurchaseListProcedure, opts...),
		listPurchaseLists: connect.NewClient[api.ListPurchaseListsRequest, api.ListPurchaseListsResponse](httpClient, baseURL+PurchaseServiceListPurchaseListsProcedure, opts...),
		getPurchaseList: connect.NewClient[api.GetPurchaseListRequest, api.GetPurchaseListResponse](httpClient, baseURL+PurchaseServiceGetPurchaseListProcedure, opts...),
		updatePurchaseList: connect.NewClient[api.UpdatePurchaseListRequest, api.UpdatePurchaseListResponse](httpClient, baseURL+PurchaseServiceUpdatePurchaseListProcedure, opts...),
		deletePurchaseList: connect.NewClient[api.DeletePurchaseListRequest, api.DeletePurchaseListResponse](httpClient, baseURL+PurchaseServiceDeletePurchaseListProcedure, opts...),
		addItem: connect.NewClient[api.AddItemRequest, api.AddItemResponse](httpClient, baseURL+PurchaseServiceAddItemProcedure, opts...),
		listItems: connect.NewClient[api.ListItemsRequest, api.ListItemsResponse](httpClient, baseURL+PurchaseServiceListItemsProcedure, opts...),
		updateItem: connect.NewClient[api.UpdateItemRequest, api.UpdateItemResponse](httpClient, baseURL+PurchaseServiceUpdateItemProcedure, opts...),
		deleteItem: connect.NewClient[api.DeleteItemRequest, api.DeleteItemResponse](httpClient, baseURL+PurchaseServiceDeleteItemProcedure, opts...),
	}
}

type purchaseServiceClient struct {
	createPurchaseList *connect.Client[api.CreatePurchaseListRequest, api.CreatePurchaseListResponse]
	listPurchaseLists  *connect.Client[api.ListPurchaseListsRequest, api.ListPurchaseListsResponse]
	getPurchaseList    *connect.Client[api.GetPurchaseListRequest, api.GetPurchaseListResponse]
	updatePurchaseList *connect.Client[api.UpdatePurchaseListRequest, api.UpdatePurchaseListResponse]
	deletePurchaseList *connect.Client[api.DeletePurchaseListRequest, api.DeletePurchaseListResponse]
	addItem            *connect.Client[api.AddItemRequest, api.AddItemResponse]
	listItems          *connect.Client[api.ListItemsRequest, api.ListItemsResponse]
	updateItem         *connect.Client[api.UpdateItemRequest, api.UpdateItemResponse]
	deleteItem         *connect.Client[api.DeleteItemRequest, api.DeleteItemResponse]
}

func (c *purchaseServiceClient) CreatePurchaseList(ctx context.Context, req *connect.Request[api.CreatePurchaseListRequest]) (*connect.Response[api.CreatePurchaseListResponse], error) {
	return c.createPurchaseList.CallUnary(ctx, req)
}

func (c *purchaseServiceClient) ListPurchaseLists(ctx context.Context, req *connect.Request[api.ListPurchaseListsRequest]) (*connect.Response[api.ListPurchaseListsResponse], error) {
	return c.listPurchaseLists.CallUnary(ctx, req)
}

func (c *purchaseServiceClient) GetPurchaseList(ctx context.Context, req *connect.Request[api.GetPurchaseListRequest]) (*connect.Response[api.GetPurchaseListResponse], error) {
	return c.getPurchaseList.CallUnary(ctx, req)
}

func (c *purchaseServiceClient) UpdatePurchaseList(ctx context.Context, req *connect.Request[api.UpdatePurchaseListRequest]) (*connect.Response[api.UpdatePurchaseListResponse], error) {
	return c.updatePurchaseList.CallUnary(ctx, req)
}

func (c *purchaseServiceClient) DeletePurchaseList(ctx context.Context, req *connect.Request[api.DeletePurchaseListRequest]) (*connect.Response[api.DeletePurchaseListResponse], error) {
	return c.deletePurchaseList.CallUnary(ctx, req)
}

func (c *purchaseServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *purchaseServiceClient) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	return c.listItems.CallUnary(ctx, req)
}

func (c *purchaseServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *purchaseServiceClient) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}
