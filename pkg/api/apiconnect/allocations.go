package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/pkg/api"
)

// AllocationServiceName is the fully-qualified name of the AllocationService.
const AllocationServiceName = "cardplanner.v1.AllocationService"

const (
	AllocationServiceListAllocationsProcedure  = "/" + AllocationServiceName + "/ListAllocations"
	AllocationServiceCreateAllocationProcedure = "/" + AllocationServiceName + "/CreateAllocation"
	AllocationServiceUpdateAllocationProcedure = "/" + AllocationServiceName + "/UpdateAllocation"
	AllocationServiceDeleteAllocationProcedure = "/" + AllocationServiceName + "/DeleteAllocation"
)

// AllocationServiceHandler is implemented by the server side of the AllocationService.
type AllocationServiceHandler interface {
	ListAllocations(context.Context, *connect.Request[api.ListAllocationsRequest]) (*connect.Response[api.ListAllocationsResponse], error)
	CreateAllocation(context.Context, *connect.Request[api.CreateAllocationRequest]) (*connect.Response[api.CreateAllocationResponse], error)
	UpdateAllocation(context.Context, *connect.Request[api.UpdateAllocationRequest]) (*connect.Response[api.UpdateAllocationResponse], error)
	DeleteAllocation(context.Context, *connect.Request[api.DeleteAllocationRequest]) (*connect.Response[api.DeleteAllocationResponse], error)
}

// NewAllocationServiceHandler builds an HTTP handler for every AllocationService procedure.
// It returns the path prefix to mount the handler on.
func NewAllocationServiceHandler(svc AllocationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AllocationServiceListAllocationsProcedure, connect.NewUnaryHandler(AllocationServiceListAllocationsProcedure, svc.ListAllocations, opts...))
	mux.Handle(AllocationServiceCreateAllocationProcedure, connect.NewUnaryHandler(AllocationServiceCreateAllocationProcedure, svc.CreateAllocation, opts...))
	mux.Handle(AllocationServiceUpdateAllocationProcedure, connect.NewUnaryHandler(AllocationServiceUpdateAllocationProcedure, svc.UpdateAllocation, opts...))
	mux.Handle(AllocationServiceDeleteAllocationProcedure, connect.NewUnaryHandler(AllocationServiceDeleteAllocationProcedure, svc.DeleteAllocation, opts...))
	return "/" + AllocationServiceName + "/", mux
}

// AllocationServiceClient calls the AllocationService over Connect.
type AllocationServiceClient interface {
	ListAllocations(context.Context, *connect.Request[api.ListAllocationsRequest]) (*connect.Response[api.ListAllocationsResponse], error)
	CreateAllocation(context.Context, *connect.Request[api.CreateAllocationRequest]) (*connect.Response[api.CreateAllocationResponse], error)
	UpdateAllocation(context.Context, *connect.Request[api.UpdateAllocationRequest]) (*connect.Response[api.UpdateAllocationResponse], error)
	DeleteAllocation(context.Context, *connect.Request[api.DeleteAllocationRequest]) (*connect.Response[api.DeleteAllocationResponse], error)
}

func NewAllocationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AllocationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &allocationServiceClient{
		listAllocations: connect.NewClient[api.ListAllocationsRequest, api.ListAllocationsResponse](httpClient, baseURL+AllocationServiceListAllocationsProcedure, opts...),
		createAllocation: connect.NewClient[api.CreateAllocationRequest, api.CreateAllocationResponse](httpClient, baseURL+AllocationServiceCreateAllocationProcedure, opts...),
		updateAllocation: connect.NewClient[api.UpdateAllocationRequest, api.UpdateAllocationResponse](httpClient, baseURL+AllocationServiceUpdateAllocationProcedure, opts...),
		deleteAllocation: connect.NewClient[api.DeleteAllocationRequest, api.DeleteAllocationResponse](httpClient, baseURL+AllocationServiceDeleteAllocationProcedure, opts...),
	}
}

type allocationServiceClient struct {
	listAllocations  *connect.Client[api.ListAllocationsRequest, api.ListAllocationsResponse]
	createAllocation *connect.Client[api.CreateAllocationRequest, api.CreateAllocationResponse]
	updateAllocation *connect.Client[api.UpdateAllocationRequest, api.UpdateAllocationResponse]
	deleteAllocation *connect.Client[api.DeleteAllocationRequest, api.DeleteAllocationResponse]
}

func (c *allocationServiceClient) ListAllocations(ctx context.Context, req *connect.Request[api.ListAllocationsRequest]) (*connect.Response[api.ListAllocationsResponse], error) {
	return c.listAllocations.CallUnary(ctx, req)
}

func (c *allocationServiceClient) CreateAllocation(ctx context.Context, req *connect.Request[api.CreateAllocationRequest]) (*connect.Response[api.CreateAllocationResponse], error) {
	return c.createAllocation.CallUnary(ctx, req)
}

func (c *allocationServiceClient) UpdateAllocation(ctx context.Context, req *connect.Request[api.UpdateAllocationRequest]) (*connect.Response[api.UpdateAllocationResponse], error) {
	return c.updateAllocation.CallUnary(ctx, req)
}

func (c *allocationServiceClient) DeleteAllocation(ctx context.Context, req *connect.Request[api.DeleteAllocationRequest]) (*connect.Response[api.DeleteAllocationResponse], error) {
	return c.deleteAllocation.CallUnary(ctx, req)
}
