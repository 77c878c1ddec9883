// Package adaptmcp exposes the reporting queries as MCP tools.
package adaptmcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"kuritterweight/internal/app"
	"kuritterweight/internal/domain"
)

// Server identity reported to MCP clients.
const (
	ServerName    = "kuritterweight-mcp"
	ServerVersion = "0.0.1"
)

// Tool names.
const (
	ToolRecentWeight     = "getRecentWeight"
	ToolMonthlyAverage   = "getMonthlyAverageWeight"
	ToolWeightDateRange  = "getWeightByDateRange"
	AppResourceURI       = "ui://kuritterweight/mcp-app.html"
	AppResourceMIMEType  = "text/html;profile=mcp-app"
	appResourceName      = "kuritterweight-app"
	internalErrorMessage = "Internal server error"
)

// ErrInternal is what callers see when a query fails; the cause is only
// logged.
var ErrInternal = errors.New(internalErrorMessage)

// Reports is the subset of app.ReportService the tools call.
type Reports interface {
	RecentWeights(ctx context.Context) ([]domain.WeightRecord, error)
	MonthlyAverages(ctx context.Context, months int) ([]domain.MonthlyAverage, error)
	WeightsBetween(ctx context.Context, startDate, endDate string) ([]domain.DatePoint, error)
}

var _ Reports = (*app.ReportService)(nil)

// MonthlyArgs are the arguments of getMonthlyAverageWeight. A nil Months
// means every month; a present value must be within 1..60.
type MonthlyArgs struct {
	Months *int `json:"months,omitempty"`
}

// DateRangeArgs are the arguments of getWeightByDateRange.
type DateRangeArgs struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Tools holds the tool handlers.
type Tools struct {
	reports Reports
	appHTML []byte
	logger  *log.Logger
}

// NewTools creates tool handlers backed by reports. appHTML is served as the
// tool UI resource; logger may be nil.
func NewTools(reports Reports, appHTML []byte, logger *log.Logger) *Tools {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Tools{reports: reports, appHTML: appHTML, logger: logger}
}

// NewServer builds an MCP server with every tool and the UI resource
// registered.
func (t *Tools) NewServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolRecentWeight,
		Description: "Get kuri_tter recent weight",
	}, t.RecentWeight)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolMonthlyAverage,
		Description: "Get average weight for each month (months: 1-60, omit for all)",
	}, t.MonthlyAverage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolWeightDateRange,
		Description: "Get weights between startDate and endDate (YYYY-MM-DD, inclusive)",
	}, t.WeightDateRange)

	server.AddResource(&mcp.Resource{
		URI:      AppResourceURI,
		Name:     appResourceName,
		MIMEType: AppResourceMIMEType,
	}, t.readApp)
	return server
}

// Handler serves server over streamable HTTP.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

// RecentWeight returns the seven newest readings.
func (t *Tools) RecentWeight(ctx context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[struct{}]) (*mcp.CallToolResultFor[any], error) {
	rows, err := t.reports.RecentWeights(ctx)
	return t.result(ToolRecentWeight, rows, err)
}

// MonthlyAverage returns per-month averages, newest month first.
func (t *Tools) MonthlyAverage(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[MonthlyArgs]) (*mcp.CallToolResultFor[any], error) {
	months := 0
	if m := params.Arguments.Months; m != nil {
		if *m < 1 {
			return t.result(ToolMonthlyAverage, nil, app.ErrMonthsOutOfRange)
		}
		months = *m
	}
	rows, err := t.reports.MonthlyAverages(ctx, months)
	return t.result(ToolMonthlyAverage, rows, err)
}

// WeightDateRange returns the readings of a date range, oldest first.
func (t *Tools) WeightDateRange(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[DateRangeArgs]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	rows, err := t.reports.WeightsBetween(ctx, args.StartDate, args.EndDate)
	return t.result(ToolWeightDateRange, rows, err)
}

func (t *Tools) result(tool string, rows any, err error) (*mcp.CallToolResultFor[any], error) {
	switch {
	case errors.Is(err, app.ErrMonthsOutOfRange), errors.Is(err, app.ErrInvalidDate):
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		}, nil
	case err != nil:
		t.logger.Printf("mcp: %s: %v", tool, err)
		return nil, ErrInternal
	}

	b, err := json.Marshal(rows)
	if err != nil {
		t.logger.Printf("mcp: %s: encode: %v", tool, err)
		return nil, ErrInternal
	}
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, nil
}

func (t *Tools) readApp(_ context.Context, _ *mcp.ServerSession, _ *mcp.ReadResourceParams) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      AppResourceURI,
			MIMEType: AppResourceMIMEType,
			Text:     string(t.appHTML),
		}},
	}, nil
}
