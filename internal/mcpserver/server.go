// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Skyroute routing and booking tools via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/skyroute/internal/booking"
	"github.com/starford/skyroute/internal/graphstore"
	"github.com/starford/skyroute/internal/routing"
)

// Server wraps the MCP server with Skyroute tools.
type Server struct {
	mcp      *server.MCPServer
	routes   *routing.Resolver
	bookings *booking.Service
}

// New creates a new MCP server with all Skyroute tools registered.
func New(routes *routing.Resolver, bookings *booking.Service) *Server {
	s := &Server{routes: routes, bookings: bookings}

	s.mcp = server.NewMCPServer(
		"Skyroute",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("best_routes",
		mcp.WithDescription("Compute the best itinerary between two locations under each "+
			"criterion (cost, distance, time), with cross-metric totals per winning path."),
		mcp.WithString("origin", mcp.Required(), mcp.Description("Origin location name")),
		mcp.WithString("destination", mcp.Required(), mcp.Description("Destination location name")),
	), s.bestRoutes)

	s.mcp.AddTool(mcp.NewTool("book_itinerary",
		mcp.WithDescription("Book an itinerary for a holder and optional companions. "+
			"The booking argument MUST follow the canonical booking request format; read the "+
			"contract first via the get_booking_contract tool or the skyroute://booking-request "+
			"resource. The whole booking commits atomically."),
		mcp.WithString("booking", mcp.Required(), mcp.Description("JSON booking request following the Skyroute booking contract")),
	), s.bookItinerary)

	s.mcp.AddTool(mcp.NewTool("get_booking",
		mcp.WithDescription("Read the full ticketing payload of a reservation: passengers, "+
			"legs in travel order, and aggregate totals."),
		mcp.WithString("code", mcp.Required(), mcp.Description("6-character reservation code")),
	), s.getBooking)

	s.mcp.AddTool(mcp.NewTool("get_booking_contract",
		mcp.WithDescription("Returns the canonical Skyroute booking request contract. "+
			"Call this before booking to ensure correct structure."),
	), s.getBookingContract)

	s.mcp.AddTool(mcp.NewTool("ensure_category",
		mcp.WithDescription("Get-or-create a traveler category by name. Names are normalized "+
			"(diacritics stripped, lower-cased) before matching."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Category name, free text")),
	), s.ensureCategory)

	s.mcp.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the traveler category catalog in case-insensitive order."),
	), s.listCategories)

	// Resource: booking request contract.
	s.mcp.AddResource(
		mcp.NewResource("skyroute://booking-request", "Booking Request Contract",
			mcp.WithResourceDescription("Canonical JSON booking request format that book_itinerary expects."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readBookingContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) bestRoutes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	origin, err := req.RequireString("origin")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	destination, err := req.RequireString("destination")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rs, err := s.routes.BestRoutes(origin, destination)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	for _, c := range graphstore.Criteria {
		it := rs.ByCriterion(c)
		if !it.Reachable() {
			fmt.Fprintf(&b, "%s: unreachable\n", it.Criterion)
			continue
		}
		fmt.Fprintf(&b, "%s: %s (cost=%.2f distance=%.2f time=%.2f)\n",
			it.Criterion, strings.Join(it.Path, " -> "),
			it.Totals.Cost, it.Totals.Distance, it.Totals.Time)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) bookItinerary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload, err := req.RequireString("booking")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var br booking.BookRequest
	if err := json.Unmarshal([]byte(payload), &br); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid booking JSON: %v", err)), nil
	}

	res, err := s.bookings.Book(ctx, br)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getBooking(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := s.bookings.Reservation(ctx, code)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(d, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) ensureCategory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cat, created, err := s.bookings.EnsureCategory(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if created {
		return mcp.NewToolResultText(fmt.Sprintf("created: %s (id %d)", cat.Name, cat.ID)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("exists: %s (id %d)", cat.Name, cat.ID)), nil
}

func (s *Server) listCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cats, err := s.bookings.ListCategories(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(cats) == 0 {
		return mcp.NewToolResultText("no categories registered"), nil
	}
	var names []string
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) getBookingContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(BookingRequestContract), nil
}

func (s *Server) readBookingContractResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "skyroute://booking-request",
			MIMEType: "text/markdown",
			Text:     BookingRequestContract,
		},
	}, nil
}
