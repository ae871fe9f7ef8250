package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/pkg/api"
)

// PlanServiceName is the fully-qualified name of the PlanService.
const PlanServiceName = "cardplanner.v1.PlanService"

const (
	PlanServiceGetOptimalPlanProcedure = "/" + PlanServiceName + "/GetOptimalPlan"
)

// PlanServiceHandler is implemented by the server side of the PlanService.
type PlanServiceHandler interface {
	GetOptimalPlan(context.Context, *connect.Request[api.GetOptimalPlanRequest]) (*connect.Response[api.OptimalPlan], error)
}

// NewPlanServiceHandler builds an HTTP handler for every PlanService procedure.
// It returns the path prefix to mount the handler on.
func NewPlanServiceHandler(svc PlanServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(PlanServiceGetOptimalPlanProcedure, connect.NewUnaryHandler(PlanServiceGetOptimalPlanProcedure, svc.GetOptimalPlan, opts...))
	return "/" + PlanServiceName + "/", mux
}

// PlanServiceClient calls the PlanService over Connect.
type PlanServiceClient interface {
	GetOptimalPlan(context.Context, *connect.Request[api.GetOptimalPlanRequest]) (*connect.Response[api.OptimalPlan], error)
}

func NewPlanServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PlanServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &planServiceClient{
		getOptimalPlan: connect.NewClient[api.GetOptimalPlanRequest, api.OptimalPlan](httpClient, baseURL+PlanServiceGetOptimalPlanProcedure, opts...),
	}
}

type planServiceClient struct {
	getOptimalPlan *connect.Client[api.GetOptimalPlanRequest, api.OptimalPlan]
}

func (c *planServiceClient) GetOptimalPlan(ctx context.Context, req *connect.Request[api.GetOptimalPlanRequest]) (*connect.Response[api.OptimalPlan], error) {
	return c.getOptimalPlan.CallUnary(ctx, req)
}
