package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// toolFunc runs one tool call and returns the value to serialize as the result.
type toolFunc func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error)

// Registry registers tools on an MCP server and keeps them callable in process.
type Registry struct {
	mcp      *server.MCPServer
	log      logrus.FieldLogger
	tools    map[string]mcp.Tool
	handlers map[string]server.ToolHandlerFunc
}

// NewRegistry creates a Registry adding its tools to s.
func NewRegistry(s *server.MCPServer, log logrus.FieldLogger) *Registry {
	return &Registry{
		mcp:      s,
		log:      log,
		tools:    map[string]mcp.Tool{},
		handlers: map[string]server.ToolHandlerFunc{},
	}
}

// add registers tool with fn wrapped in the dispatcher boundary.
func (r *Registry) add(tool mcp.Tool, fn toolFunc) {
	handler := r.wrap(tool.Name, fn)
	r.tools[tool.Name] = tool
	r.handlers[tool.Name] = handler
	r.mcp.AddTool(tool, handler)
}

// Tools returns the registered tools sorted by name.
func (r *Registry) Tools() []mcp.Tool {
	out := make([]mcp.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call invokes a registered tool directly with args.
func (r *Registry) Call(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	return handler(ctx, request)
}

// wrap turns fn into an MCP handler. Errors and panics become {"error": ...} results
// flagged with isError; the transport never sees a failed call.
func (r *Registry) wrap(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		log := r.log.WithFields(logrus.Fields{
			"tool":       name,
			"request_id": uuid.NewString(),
		})
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				log.WithField("panic", p).Errorf("tool panicked\n%s", debug.Stack())
				result, err = errorResult(fmt.Sprintf("internal error: %v", p)), nil
			}
		}()

		if _, ok := request.GetRawArguments().(map[string]interface{}); !ok && request.GetRawArguments() != nil {
			return errorResult("invalid arguments format"), nil
		}

		log.Debug("tool call")
		value, callErr := fn(ctx, request)
		if callErr != nil {
			log.WithError(callErr).WithField("duration", time.Since(start)).Warn("tool call failed")
			return errorResult(callErr.Error()), nil
		}

		data, marshalErr := json.Marshal(value)
		if marshalErr != nil {
			log.WithError(marshalErr).Error("failed to marshal response")
			return errorResult(fmt.Sprintf("failed to marshal response: %v", marshalErr)), nil
		}
		log.WithField("duration", time.Since(start)).Debug("tool call done")
		return mcp.NewToolResultText(string(data)), nil
	}
}

// ErrorPayload is the body of a failed tool call.
type ErrorPayload struct {
	Error string `json:"error"`
}

func errorResult(message string) *mcp.CallToolResult {
	data, _ := json.Marshal(ErrorPayload{Error: message})
	return mcp.NewToolResultError(string(data))
}
