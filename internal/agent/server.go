// Package agent exposes the store's operations to an external
// conversational runtime. The runtime discovers the operations by name,
// extracts typed arguments from user speech, invokes them, and speaks the
// returned text; this package only registers and dispatches tools and
// performs no language understanding of its own.
package agent

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Version is reported to the runtime during the initialize handshake.
const Version = "1.0.0"

const protocolVersion = "2024-11-05"

// Server speaks line-delimited JSON-RPC in the MCP shape over the given
// reader and writer (stdio in production).
type Server struct {
	handler      *Handler
	name         string
	instructions string
	in           io.Reader
	out          io.Writer

	// OnInitialize, if set, runs after a successful initialize handshake.
	OnInitialize func()
}

// NewServer creates a Server dispatching to handler.
func NewServer(handler *Handler, name, instructions string, in io.Reader, out io.Writer) *Server {
	return &Server{
		handler:      handler,
		name:         name,
		instructions: instructions,
		in:           in,
		out:          out,
	}
}

// Protocol types.

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type initializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      serverInfo   `json:"serverInfo"`
	Capabilities    capabilities `json:"capabilities"`
	Instructions    string       `json:"instructions,omitempty"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type capabilities struct {
	Tools *toolsCapability `json:"tools,omitempty"`
}

type toolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type listToolsResult struct {
	Tools []Tool `json:"tools"`
}

type callToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type callToolResult struct {
	Content []toolContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

type toolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Run serves requests until EOF or context cancellation.
func (s *Server) Run(ctx context.Context) error {
	reader := bufio.NewReader(s.in)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := reader.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			if err := s.send(&response{
				JSONRPC: "2.0",
				Error:   &rpcError{Code: -32700, Message: "Parse error"},
			}); err != nil {
				return err
			}
			continue
		}

		resp := s.handle(&req)
		if resp == nil {
			continue // Notification, no response
		}
		if err := s.send(resp); err != nil {
			return err
		}
	}
}

func (s *Server) handle(req *request) *response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return &response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  listToolsResult{Tools: Definitions()},
		}
	case "tools/call":
		return s.handleCallTool(req)
	case "notifications/initialized":
		return nil
	default:
		return &response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: -32601, Message: "Method not found"},
		}
	}
}

func (s *Server) handleInitialize(req *request) *response {
	if s.OnInitialize != nil {
		s.OnInitialize()
	}
	return &response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: initializeResult{
			ProtocolVersion: protocolVersion,
			ServerInfo:      serverInfo{Name: s.name, Version: Version},
			Capabilities:    capabilities{Tools: &toolsCapability{}},
			Instructions:    s.instructions,
		},
	}
}

func (s *Server) handleCallTool(req *request) *response {
	var params callToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: -32602, Message: "Invalid params"},
		}
	}

	text, err := s.handler.Call(params.Name, params.Arguments)
	if err != nil {
		return &response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: callToolResult{
				Content: []toolContent{{Type: "text", Text: fmt.Sprintf("Error: %v", err)}},
				IsError: true,
			},
		}
	}

	// Store responses are already display text; they go to the runtime
	// verbatim for speech synthesis.
	return &response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: callToolResult{
			Content: []toolContent{{Type: "text", Text: text}},
		},
	}
}

func (s *Server) send(resp *response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.out, "%s\n", data)
	return err
}
