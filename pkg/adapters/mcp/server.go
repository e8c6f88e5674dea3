package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/dfsm"
	"github.com/aretw0/dfsm/internal/dto"
	"github.com/aretw0/dfsm/internal/logging"
	"github.com/aretw0/dfsm/internal/presentation/graph"
	"github.com/aretw0/dfsm/pkg/catalog"
	"github.com/aretw0/dfsm/pkg/codec"
	"github.com/aretw0/dfsm/pkg/observability"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MachinesURI is the resource listing the catalog.
const MachinesURI = "dfsm://machines"

// DescribeResponse is the structured answer of describe_machine.
type DescribeResponse struct {
	Document *codec.Document `json:"document" jsonschema_description:"The machine document"`
	Mermaid  string          `json:"mermaid" jsonschema_description:"Mermaid flowchart of the machine"`
}

// ListResponse is the structured answer of list_machines.
type ListResponse struct {
	Machines []catalog.Entry `json:"machines"`
}

// Server exposes a machine catalog as an MCP Server.
type Server struct {
	catalog   *catalog.Catalog
	engine    *dfsm.Engine[string, string]
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(c *catalog.Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		catalog: c,
		engine: dfsm.New[string, string](
			dfsm.WithLogger(logger),
			dfsm.WithLifecycleHooks(observability.LogHooks(logger)),
		),
		logger:    logger,
		mcpServer: server.NewMCPServer("dfsm-mcp", strings.TrimSpace(dfsm.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the machines of the catalog, including the ones that fail validation."),
		mcp.WithOutputSchema[ListResponse](),
	), mcp.NewStructuredToolHandler(s.handleList))

	s.mcpServer.AddTool(mcp.NewTool("describe_machine",
		mcp.WithDescription("Return the document and a Mermaid diagram of a machine."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithOutputSchema[DescribeResponse](),
	), mcp.NewStructuredToolHandler(s.handleDescribe))

	s.mcpServer.AddTool(mcp.NewTool("run_machine",
		mcp.WithDescription("Run a machine on an input sequence and return the trace, terminal state and acceptance."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithArray("input", mcp.Required(), mcp.Description("Input symbols"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithBoolean("outputs", mcp.Description("Collect Moore/Mealy outputs")),
		mcp.WithOutputSchema[dto.RunResponse](),
	), mcp.NewStructuredToolHandler(s.handleRun))

	s.mcpServer.AddTool(mcp.NewTool("accepts",
		mcp.WithDescription("Report whether a machine accepts an input sequence."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithArray("input", mcp.Required(), mcp.Description("Input symbols"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithOutputSchema[dto.AcceptsResponse](),
	), mcp.NewStructuredToolHandler(s.handleAccepts))
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	entries, err := s.catalog.List(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	return ListResponse{Machines: entries}, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DescribeResponse, error) {
	name, _ := args["name"].(string)
	def, doc, err := s.catalog.Get(ctx, name)
	if err != nil {
		return DescribeResponse{}, err
	}
	return DescribeResponse{Document: doc, Mermaid: graph.GenerateMermaid(def, nil)}, nil
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.RunResponse, error) {
	name, _ := args["name"].(string)
	input, err := symbols(args["input"])
	if err != nil {
		return dto.RunResponse{}, err
	}
	def, err := s.catalog.Machine(ctx, name)
	if err != nil {
		return dto.RunResponse{}, err
	}

	run := s.engine.Run
	if outputs, _ := args["outputs"].(bool); outputs {
		run = s.engine.Trace
	}
	res, err := run(def, input)
	if err != nil {
		return dto.RunResponse{}, describeError(err)
	}
	return dto.NewRunResponse(name, res), nil
}

func (s *Server) handleAccepts(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.AcceptsResponse, error) {
	name, _ := args["name"].(string)
	input, err := symbols(args["input"])
	if err != nil {
		return dto.AcceptsResponse{}, err
	}
	def, err := s.catalog.Machine(ctx, name)
	if err != nil {
		return dto.AcceptsResponse{}, err
	}

	accepted, err := s.engine.Accepts(def, input)
	if err != nil {
		return dto.AcceptsResponse{}, describeError(err)
	}
	return dto.AcceptsResponse{Machine: name, Accepted: accepted}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MachinesURI, "Machine Catalog",
		mcp.WithMIMEType("application/json"),
	), s.readMachines)
}

func (s *Server) readMachines(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	entries, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	jsonBytes, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode machine catalog: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      MachinesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

// symbols converts a JSON array argument into normalized input symbols.
func symbols(raw any) ([]string, error) {
	items, ok := raw.([]any)
	if !ok && raw != nil {
		return nil, fmt.Errorf("input must be an array of strings, got %T", raw)
	}
	out := make([]string, len(items))
	for i, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("input[%d] must be a string, got %T", i, item)
		}
		out[i] = str
	}
	if err := dto.CheckInput(out); err != nil {
		return nil, err
	}
	return codec.NormalizeSymbols(out), nil
}

// describeError keeps the failure position of execution errors in the message
// returned to the client.
func describeError(err error) error {
	e := dto.NewError(err)
	if e.Index == nil {
		return err
	}
	return fmt.Errorf("%s (kind %s, trace %v): %w", e.Message, e.Kind, e.Trace, err)
}
